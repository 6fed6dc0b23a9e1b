// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/issuance"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/storage"
)

type VoterHandler struct {
	issuer *issuance.Issuer
	store  *storage.Store
	cfg    cliparse.Config
}

func NewVoterHandler(issuer *issuance.Issuer, store *storage.Store, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{issuer: issuer, store: store, cfg: cfg}
}

// AddVoter handles POST /elections/{electionId}/voters
// The token in the response is the only copy; it cannot be fetched again
func (h *VoterHandler) AddVoter(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId is required")
		return
	}

	var req models.AddVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	cred, token, err := h.issuer.Issue(r.Context(), electionID, req.Email, req.ExpiryHours)
	if err != nil {
		writeError(w, err, "issue credential")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.AddVoterResponse{
		Voter: cred,
		Token: token,
	})
}

// ImportVoters handles POST /elections/{electionId}/voters/import
// Row failures are reported in the response body; the batch itself succeeds
func (h *VoterHandler) ImportVoters(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId is required")
		return
	}

	var req models.ImportVotersRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Rows) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "rows cannot be empty")
		return
	}

	res, err := h.issuer.ImportBatch(r.Context(), electionID, req.Rows, req.ExpiryHours)
	if err != nil {
		writeError(w, err, "import voters")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ImportVotersResponse{
		Success: res.SuccessCount,
		Errors:  res.Errors,
		Voters:  res.Issued,
	})
}

// ListVoters handles GET /elections/{electionId}/voters
func (h *VoterHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId is required")
		return
	}

	creds, err := h.store.ListCredentials(r.Context(), electionID)
	if err != nil {
		slog.Error("failed to list voters", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListVotersResponse{
		Results: len(creds),
		Voters:  creds,
	})
}

// GetStats handles GET /elections/{electionId}/voters/stats
func (h *VoterHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("electionId")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "electionId is required")
		return
	}

	stats, err := h.store.CredentialStats(r.Context(), electionID)
	if err != nil {
		slog.Error("failed to count voters", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats)
}
