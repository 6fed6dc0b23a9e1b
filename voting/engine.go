// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/rules"
	"github.com/danielhkuo/ballotbox/storage"
)

var (
	ErrInvalidOrUsedToken = errors.New("invalid or already used voter token")
	ErrTokenExpired       = errors.New("voter token has expired")
	ErrBallotNotFound     = errors.New("ballot not found for this election")
	ErrNoBallots          = errors.New("no ballots submitted")
	ErrDuplicateBallot    = errors.New("ballot submitted more than once")

	// ErrVoteNotRecorded means the outcome is unknown: the credential may
	// have been consumed without the votes being visible to the caller.
	ErrVoteNotRecorded = errors.New("vote could not be recorded")
)

// TokenError carries the reason a token was rejected.
type TokenError struct {
	Reason string
	Err    error
}

func (e *TokenError) Error() string { return e.Err.Error() }

func (e *TokenError) Unwrap() error { return e.Err }

func tokenError(reason string) error {
	if reason == models.ReasonExpired {
		return &TokenError{Reason: reason, Err: ErrTokenExpired}
	}
	return &TokenError{Reason: reason, Err: ErrInvalidOrUsedToken}
}

// Reason returns invalid, used or expired for token errors and "" otherwise.
func Reason(err error) string {
	var te *TokenError
	if errors.As(err, &te) {
		return te.Reason
	}
	return ""
}

// Store is what the engine needs from persistence.
type Store interface {
	Ballot(ctx context.Context, electionID, ballotID string) (models.Ballot, error)
	Ballots(ctx context.Context, electionID string) ([]models.Ballot, error)
	CredentialByDigest(ctx context.Context, electionID, digest string) (models.Credential, error)
	RedeemAndRecord(ctx context.Context, r storage.Redemption) error
	Votes(ctx context.Context, electionID, ballotID string) ([]models.Vote, error)
	CountVotes(ctx context.Context, electionID, ballotID string) (int, error)
}

// Engine redeems credentials and records anonymous votes.
type Engine struct {
	store      Store
	now        func() time.Time
	retainMeta bool
}

func NewEngine(store Store, retainMeta bool) *Engine {
	return &Engine{store: store, now: time.Now, retainMeta: retainMeta}
}

// Validate checks a token without redeeming it.
func (e *Engine) Validate(ctx context.Context, token, electionID string) error {
	digest, err := auth.DigestToken(token)
	if err != nil {
		return tokenError(models.ReasonInvalid)
	}
	return e.checkCredential(ctx, electionID, digest)
}

func (e *Engine) checkCredential(ctx context.Context, electionID, digest string) error {
	cred, err := e.store.CredentialByDigest(ctx, electionID, digest)
	if errors.Is(err, storage.ErrNotFound) {
		return tokenError(models.ReasonInvalid)
	}
	if err != nil {
		return err
	}
	if cred.Redeemed {
		return tokenError(models.ReasonUsed)
	}
	if cred.Expired(e.now()) {
		return tokenError(models.ReasonExpired)
	}
	return nil
}

// Cast redeems token and records one ballot. The selection is validated
// before the credential is touched.
func (e *Engine) Cast(ctx context.Context, token, electionID string, sel models.Selection, meta models.VoteMeta) (models.Selection, error) {
	digest, err := auth.DigestToken(token)
	if err != nil {
		return models.Selection{}, tokenError(models.ReasonInvalid)
	}

	normalized, err := e.validateSelection(ctx, electionID, sel)
	if err != nil {
		return models.Selection{}, err
	}

	if err := e.redeem(ctx, electionID, digest, []models.Selection{normalized}, meta); err != nil {
		return models.Selection{}, err
	}

	slog.Info("vote recorded", "election_id", electionID, "ballot_id", normalized.BallotID)
	return normalized, nil
}

// CastAll redeems token once for a set of ballots. Nothing is written unless
// every ballot validates.
func (e *Engine) CastAll(ctx context.Context, token, electionID string, sels []models.Selection, meta models.VoteMeta) ([]models.Selection, error) {
	digest, err := auth.DigestToken(token)
	if err != nil {
		return nil, tokenError(models.ReasonInvalid)
	}
	if err := e.checkCredential(ctx, electionID, digest); err != nil {
		return nil, err
	}

	if len(sels) == 0 {
		return nil, ErrNoBallots
	}
	seen := make(map[string]bool, len(sels))
	for _, s := range sels {
		if seen[s.BallotID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateBallot, s.BallotID)
		}
		seen[s.BallotID] = true
	}

	normalized := make([]models.Selection, 0, len(sels))
	for _, s := range sels {
		n, err := e.validateSelection(ctx, electionID, s)
		if err != nil {
			return nil, err
		}
		normalized = append(normalized, n)
	}

	if err := e.redeem(ctx, electionID, digest, normalized, meta); err != nil {
		return nil, err
	}

	slog.Info("votes recorded", "election_id", electionID, "ballots", len(normalized))
	return normalized, nil
}

func (e *Engine) validateSelection(ctx context.Context, electionID string, sel models.Selection) (models.Selection, error) {
	ballot, err := e.store.Ballot(ctx, electionID, sel.BallotID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Selection{}, fmt.Errorf("%w: %s", ErrBallotNotFound, sel.BallotID)
	}
	if err != nil {
		return models.Selection{}, err
	}

	ids, err := rules.Validate(ballot, sel.OptionIDs)
	if err != nil {
		return models.Selection{}, fmt.Errorf("ballot %s: %w", ballot.ID, err)
	}
	return models.Selection{BallotID: ballot.ID, OptionIDs: ids}, nil
}

func (e *Engine) redeem(ctx context.Context, electionID, digest string, sels []models.Selection, meta models.VoteMeta) error {
	if !e.retainMeta {
		meta = models.VoteMeta{}
	}

	votes := make([]models.Vote, len(sels))
	for i, s := range sels {
		votes[i] = models.Vote{
			ElectionID: electionID,
			BallotID:   s.BallotID,
			OptionIDs:  s.OptionIDs,
			Meta:       meta,
		}
	}

	now := e.now()
	err := e.store.RedeemAndRecord(ctx, storage.Redemption{
		ElectionID:  electionID,
		TokenDigest: digest,
		At:          now,
		Votes:       votes,
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotRedeemable):
		return e.rejection(ctx, electionID, digest, now)
	case errors.Is(err, storage.ErrCommitUncertain):
		slog.Error("vote commit outcome unknown", "election_id", electionID, "error", err)
		return fmt.Errorf("%w: %v", ErrVoteNotRecorded, err)
	default:
		return fmt.Errorf("record votes: %w", err)
	}
}

// rejection explains a failed redemption. The read happens after the
// conditional update lost, so it only picks the message.
func (e *Engine) rejection(ctx context.Context, electionID, digest string, at time.Time) error {
	cred, err := e.store.CredentialByDigest(ctx, electionID, digest)
	switch {
	case err != nil:
		return tokenError(models.ReasonInvalid)
	case cred.Redeemed:
		return tokenError(models.ReasonUsed)
	case cred.Expired(at):
		return tokenError(models.ReasonExpired)
	default:
		return tokenError(models.ReasonUsed)
	}
}
