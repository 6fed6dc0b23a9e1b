// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/ballotbox/models"
)

var (
	ErrInvalidSelectionCount = errors.New("invalid number of selections")
	ErrUnknownOption         = errors.New("unknown option")
	ErrUnsupportedBallotType = errors.New("unsupported ballot type")
	ErrMalformedBallot       = errors.New("malformed ballot")
)

// Rule checks a submitted selection against a ballot and returns the
// normalized option ids.
type Rule func(ballot models.Ballot, optionIDs []string) ([]string, error)

var registry = map[models.BallotType]Rule{
	models.BallotSingle:   validateSingle,
	models.BallotMultiple: validateMultiple,
}

// ForType returns the rule for a ballot type.
func ForType(t models.BallotType) (Rule, error) {
	rule, ok := registry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBallotType, t)
	}
	return rule, nil
}

// Validate runs the rule matching the ballot's type. Normalization removes
// duplicates and orders ids by their position on the ballot; it never adds
// an option that was not submitted.
func Validate(ballot models.Ballot, optionIDs []string) ([]string, error) {
	rule, err := ForType(ballot.Type)
	if err != nil {
		return nil, err
	}
	if err := checkBallot(ballot); err != nil {
		return nil, err
	}
	return rule(ballot, optionIDs)
}

func checkBallot(ballot models.Ballot) error {
	if len(ballot.Options) < 2 {
		return fmt.Errorf("%w: ballot %s has %d options", ErrMalformedBallot, ballot.ID, len(ballot.Options))
	}
	if ballot.Type == models.BallotMultiple && ballot.MaxSelections < 1 {
		return fmt.Errorf("%w: ballot %s max selections %d", ErrMalformedBallot, ballot.ID, ballot.MaxSelections)
	}
	return nil
}

// validateSingle accepts exactly one submitted option.
func validateSingle(ballot models.Ballot, optionIDs []string) ([]string, error) {
	if len(optionIDs) != 1 {
		return nil, fmt.Errorf("%w: single choice ballot got %d", ErrInvalidSelectionCount, len(optionIDs))
	}
	return normalize(ballot, optionIDs)
}

// validateMultiple accepts 1..MaxSelections distinct options.
func validateMultiple(ballot models.Ballot, optionIDs []string) ([]string, error) {
	if len(optionIDs) == 0 {
		return nil, fmt.Errorf("%w: no options selected", ErrInvalidSelectionCount)
	}
	selected, err := normalize(ballot, optionIDs)
	if err != nil {
		return nil, err
	}
	if len(selected) > ballot.MaxSelections {
		return nil, fmt.Errorf("%w: %d selected, at most %d allowed",
			ErrInvalidSelectionCount, len(selected), ballot.MaxSelections)
	}
	return selected, nil
}

func normalize(ballot models.Ballot, optionIDs []string) ([]string, error) {
	submitted := make(map[string]bool, len(optionIDs))
	for _, id := range optionIDs {
		id = strings.TrimSpace(id)
		if !ballot.HasOption(id) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOption, id)
		}
		submitted[id] = true
	}

	out := make([]string, 0, len(submitted))
	for _, opt := range ballot.Options {
		if submitted[opt.ID] {
			out = append(out, opt.ID)
		}
	}
	return out, nil
}
