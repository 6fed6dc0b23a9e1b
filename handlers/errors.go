// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/issuance"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/rules"
	"github.com/danielhkuo/ballotbox/voting"
)

var tokenMessages = map[string]string{
	models.ReasonInvalid: "Invalid voter token",
	models.ReasonUsed:    "This voter token has already been used",
	models.ReasonExpired: "This voter token has expired",
}

// writeError maps engine and issuance errors onto HTTP responses. Anything
// unrecognized is logged and reported as a 500.
func writeError(w http.ResponseWriter, err error, op string) {
	if reason := voting.Reason(err); reason != "" {
		middleware.TokenErrorResponse(w, reason, tokenMessages[reason])
		return
	}

	switch {
	case errors.Is(err, rules.ErrInvalidSelectionCount),
		errors.Is(err, rules.ErrUnknownOption),
		errors.Is(err, voting.ErrNoBallots),
		errors.Is(err, voting.ErrDuplicateBallot),
		errors.Is(err, issuance.ErrInvalidIdentity),
		errors.Is(err, issuance.ErrInvalidExpiry):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, voting.ErrBallotNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, issuance.ErrDuplicateIdentity):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, voting.ErrVoteNotRecorded):
		slog.Error(op+" failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError,
			"Vote could not be confirmed; the voter token may have been consumed")
	default:
		slog.Error(op+" failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
