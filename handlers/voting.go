// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/voting"
)

type VotingHandler struct {
	engine *voting.Engine
	cfg    cliparse.Config
}

func NewVotingHandler(engine *voting.Engine, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{engine: engine, cfg: cfg}
}

// ValidateToken handles POST /votes/validate
// Checks the token without consuming it
func (h *VotingHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	token := middleware.VoterToken(r)
	if token == "" {
		middleware.TokenErrorResponse(w, models.ReasonInvalid, "X-Voter-Token header required")
		return
	}

	var req models.ValidateTokenRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ElectionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	if err := h.engine.Validate(r.Context(), token, req.ElectionID); err != nil {
		writeError(w, err, "validate token")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ValidateTokenResponse{Valid: true})
}

// Cast handles POST /votes/cast
func (h *VotingHandler) Cast(w http.ResponseWriter, r *http.Request) {
	token := middleware.VoterToken(r)
	if token == "" {
		middleware.TokenErrorResponse(w, models.ReasonInvalid, "X-Voter-Token header required")
		return
	}

	var req models.CastRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ElectionID == "" || req.BallotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id and ballot_id are required")
		return
	}

	sel := models.Selection{BallotID: req.BallotID, OptionIDs: req.OptionIDs}
	normalized, err := h.engine.Cast(r.Context(), token, req.ElectionID, sel, h.meta(r))
	if err != nil {
		writeError(w, err, "cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastResponse{
		Message:    "Vote recorded",
		Selections: []models.Selection{normalized},
	})
}

// CastAll handles POST /votes/cast-all
// One token covers every ballot in the request; nothing is recorded unless
// all of them are valid
func (h *VotingHandler) CastAll(w http.ResponseWriter, r *http.Request) {
	token := middleware.VoterToken(r)
	if token == "" {
		middleware.TokenErrorResponse(w, models.ReasonInvalid, "X-Voter-Token header required")
		return
	}

	var req models.CastAllRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ElectionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	normalized, err := h.engine.CastAll(r.Context(), token, req.ElectionID, req.Ballots, h.meta(r))
	if err != nil {
		writeError(w, err, "cast votes")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastResponse{
		Message:    "Votes recorded",
		Selections: normalized,
	})
}

// meta builds non-identifying submission context. The engine drops it when
// metadata retention is off.
func (h *VotingHandler) meta(r *http.Request) models.VoteMeta {
	if !h.cfg.RetainVoteMeta {
		return models.VoteMeta{}
	}
	return models.VoteMeta{
		IPHash:    auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
		UserAgent: r.UserAgent(),
	}
}
