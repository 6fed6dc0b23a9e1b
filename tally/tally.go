// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/ballotbox/models"
)

var (
	ErrUnsupportedBallotType = errors.New("unsupported ballot type")
	ErrMalformedVote         = errors.New("malformed vote record")
)

// Result holds per-option counts for one ballot.
// Counts omits options with no votes; TotalVotes counts vote records,
// not option increments.
type Result struct {
	BallotID   string         `json:"ballot_id"`
	Counts     map[string]int `json:"tallies"`
	TotalVotes int            `json:"total_votes"`
}

// Strategy aggregates the stored votes of a single ballot.
type Strategy func(ballotID string, votes []models.Vote) (Result, error)

var strategies = map[models.BallotType]Strategy{
	models.BallotSingle:   countSingle,
	models.BallotMultiple: countMultiple,
}

// ForType returns the aggregation strategy for a ballot type.
func ForType(t models.BallotType) (Strategy, error) {
	s, ok := strategies[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBallotType, t)
	}
	return s, nil
}

// Count tallies votes with the strategy matching the ballot's type.
// It never mutates votes.
func Count(ballot models.Ballot, votes []models.Vote) (Result, error) {
	s, err := ForType(ballot.Type)
	if err != nil {
		return Result{}, err
	}
	return s(ballot.ID, votes)
}

// countSingle adds one increment per vote record.
func countSingle(ballotID string, votes []models.Vote) (Result, error) {
	res := Result{BallotID: ballotID, Counts: make(map[string]int)}
	for _, v := range votes {
		if v.BallotID != ballotID {
			continue
		}
		if len(v.OptionIDs) != 1 {
			return Result{}, fmt.Errorf("%w: vote %s has %d selections on a single choice ballot",
				ErrMalformedVote, v.ID, len(v.OptionIDs))
		}
		res.Counts[v.OptionIDs[0]]++
		res.TotalVotes++
	}
	return res, nil
}

// countMultiple adds one increment per selected option, so the sum of
// counts may exceed TotalVotes.
func countMultiple(ballotID string, votes []models.Vote) (Result, error) {
	res := Result{BallotID: ballotID, Counts: make(map[string]int)}
	for _, v := range votes {
		if v.BallotID != ballotID {
			continue
		}
		if len(v.OptionIDs) == 0 {
			return Result{}, fmt.Errorf("%w: vote %s has no selections", ErrMalformedVote, v.ID)
		}
		for _, id := range v.OptionIDs {
			res.Counts[id]++
		}
		res.TotalVotes++
	}
	return res, nil
}

// ForBallot expands a Result into the ballot's option order, filling zero
// counts for options nobody selected.
func ForBallot(ballot models.Ballot, res Result) models.BallotResult {
	out := models.BallotResult{
		BallotID:   ballot.ID,
		Title:      ballot.Title,
		Type:       ballot.Type,
		Options:    make([]models.OptionResult, 0, len(ballot.Options)),
		TotalVotes: res.TotalVotes,
	}
	for _, opt := range ballot.Options {
		out.Options = append(out.Options, models.OptionResult{
			OptionID: opt.ID,
			Label:    opt.Label,
			Votes:    res.Counts[opt.ID],
		})
	}
	return out
}
