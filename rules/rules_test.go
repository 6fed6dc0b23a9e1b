// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rules

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danielhkuo/ballotbox/models"
)

func ballot(t models.BallotType, max int, ids ...string) models.Ballot {
	b := models.Ballot{ID: "b1", ElectionID: "e1", Type: t, MaxSelections: max}
	for _, id := range ids {
		b.Options = append(b.Options, models.Option{ID: id, Label: "Option " + id})
	}
	return b
}

func TestValidate_Single(t *testing.T) {
	b := ballot(models.BallotSingle, 1, "A", "B", "C")

	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr error
	}{
		{"one option", []string{"A"}, []string{"A"}, nil},
		{"trims whitespace", []string{" C "}, []string{"C"}, nil},
		{"no options", []string{}, nil, ErrInvalidSelectionCount},
		{"nil options", nil, nil, ErrInvalidSelectionCount},
		{"two options", []string{"A", "B"}, nil, ErrInvalidSelectionCount},
		{"same option twice", []string{"A", "A"}, nil, ErrInvalidSelectionCount},
		{"unknown option", []string{"Z"}, nil, ErrUnknownOption},
		{"empty id", []string{""}, nil, ErrUnknownOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(b, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate_Multiple(t *testing.T) {
	b := ballot(models.BallotMultiple, 2, "X", "Y", "Z")

	tests := []struct {
		name    string
		input   []string
		want    []string
		wantErr error
	}{
		{"one option", []string{"Y"}, []string{"Y"}, nil},
		{"two options", []string{"X", "Y"}, []string{"X", "Y"}, nil},
		{"reordered to ballot order", []string{"Z", "X"}, []string{"X", "Z"}, nil},
		{"duplicates collapse", []string{"X", "X"}, []string{"X"}, nil},
		{"duplicates collapse under max", []string{"Y", "X", "Y"}, []string{"X", "Y"}, nil},
		{"zero options", []string{}, nil, ErrInvalidSelectionCount},
		{"three options", []string{"X", "Y", "Z"}, nil, ErrInvalidSelectionCount},
		{"unknown option", []string{"X", "Q"}, nil, ErrUnknownOption},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(b, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate_NeverAddsOptions(t *testing.T) {
	b := ballot(models.BallotMultiple, 3, "A", "B", "C", "D")
	got, err := Validate(b, []string{"D", "B"})
	if err != nil {
		t.Fatal(err)
	}
	submitted := map[string]bool{"D": true, "B": true}
	for _, id := range got {
		if !submitted[id] {
			t.Errorf("normalized set contains %q which was not submitted", id)
		}
	}
	if len(got) != 2 {
		t.Errorf("normalized len = %d, want 2", len(got))
	}
}

func TestValidate_MalformedBallots(t *testing.T) {
	tests := []struct {
		name    string
		ballot  models.Ballot
		wantErr error
	}{
		{"one option", ballot(models.BallotSingle, 1, "A"), ErrMalformedBallot},
		{"no options", ballot(models.BallotMultiple, 2), ErrMalformedBallot},
		{"zero max selections", ballot(models.BallotMultiple, 0, "A", "B"), ErrMalformedBallot},
		{"unknown type", ballot(models.BallotType("ranked"), 1, "A", "B"), ErrUnsupportedBallotType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Validate(tt.ballot, []string{"A"}); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestForType(t *testing.T) {
	for _, bt := range []models.BallotType{models.BallotSingle, models.BallotMultiple} {
		if rule, err := ForType(bt); err != nil || rule == nil {
			t.Errorf("ForType(%q) = %v, %v", bt, rule, err)
		}
	}
	if _, err := ForType("approval"); !errors.Is(err, ErrUnsupportedBallotType) {
		t.Errorf("ForType(approval) error = %v", err)
	}
}
