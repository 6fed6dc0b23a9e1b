// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/storage"
	"github.com/danielhkuo/ballotbox/tally"
)

// Tally counts the stored votes of one ballot.
func (e *Engine) Tally(ctx context.Context, electionID, ballotID string) (tally.Result, error) {
	ballot, err := e.store.Ballot(ctx, electionID, ballotID)
	if errors.Is(err, storage.ErrNotFound) {
		return tally.Result{}, fmt.Errorf("%w: %s", ErrBallotNotFound, ballotID)
	}
	if err != nil {
		return tally.Result{}, err
	}
	return e.count(ctx, ballot)
}

// BallotResult is Tally expanded to every option of the ballot.
func (e *Engine) BallotResult(ctx context.Context, electionID, ballotID string) (models.BallotResult, error) {
	ballot, err := e.store.Ballot(ctx, electionID, ballotID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.BallotResult{}, fmt.Errorf("%w: %s", ErrBallotNotFound, ballotID)
	}
	if err != nil {
		return models.BallotResult{}, err
	}
	res, err := e.count(ctx, ballot)
	if err != nil {
		return models.BallotResult{}, err
	}
	return tally.ForBallot(ballot, res), nil
}

// VoteCount returns how many vote records a ballot has.
func (e *Engine) VoteCount(ctx context.Context, electionID, ballotID string) (int, error) {
	if _, err := e.store.Ballot(ctx, electionID, ballotID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrBallotNotFound, ballotID)
		}
		return 0, err
	}
	return e.store.CountVotes(ctx, electionID, ballotID)
}

// Results tallies every ballot of an election, in ballot order.
func (e *Engine) Results(ctx context.Context, electionID string) (models.ElectionResults, error) {
	ballots, err := e.store.Ballots(ctx, electionID)
	if err != nil {
		return models.ElectionResults{}, err
	}

	out := make([]models.BallotResult, len(ballots))
	g, gctx := errgroup.WithContext(ctx)
	for i, ballot := range ballots {
		g.Go(func() error {
			res, err := e.count(gctx, ballot)
			if err != nil {
				return err
			}
			out[i] = tally.ForBallot(ballot, res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.ElectionResults{}, err
	}

	return models.ElectionResults{ElectionID: electionID, Results: out}, nil
}

func (e *Engine) count(ctx context.Context, ballot models.Ballot) (tally.Result, error) {
	votes, err := e.store.Votes(ctx, ballot.ElectionID, ballot.ID)
	if err != nil {
		return tally.Result{}, err
	}
	res, err := tally.Count(ballot, votes)
	if err != nil {
		return tally.Result{}, fmt.Errorf("tally ballot %s: %w", ballot.ID, err)
	}
	return res, nil
}
