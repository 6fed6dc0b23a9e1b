// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/voting"
)

type ResultsHandler struct {
	engine *voting.Engine
	cfg    cliparse.Config
}

func NewResultsHandler(engine *voting.Engine, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{engine: engine, cfg: cfg}
}

// GetElectionResults handles GET /results/{electionId}
func (h *ResultsHandler) GetElectionResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId is required")
		return
	}

	res, err := h.engine.Results(r.Context(), electionID)
	if err != nil {
		writeError(w, err, "compute election results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}

// GetBallotResults handles GET /results/{electionId}/{ballotId}
// Options nobody voted for are included with zero votes
func (h *ResultsHandler) GetBallotResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	ballotID := r.PathValue("ballotId")
	if electionID == "" || ballotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId and ballotId are required")
		return
	}

	res, err := h.engine.BallotResult(r.Context(), electionID, ballotID)
	if err != nil {
		writeError(w, err, "compute ballot results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, res)
}

// GetBallotCount handles GET /results/{electionId}/{ballotId}/count
func (h *ResultsHandler) GetBallotCount(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	ballotID := r.PathValue("ballotId")
	if electionID == "" || ballotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId and ballotId are required")
		return
	}

	n, err := h.engine.VoteCount(r.Context(), electionID, ballotID)
	if err != nil {
		writeError(w, err, "count votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BallotCountResponse{
		BallotID:  ballotID,
		VoteCount: n,
	})
}
