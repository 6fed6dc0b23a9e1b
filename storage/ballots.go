// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/ballotbox/models"
)

// Ballot loads a ballot and its ordered options. A ballot that exists under
// a different election is reported as ErrNotFound.
func (s *Store) Ballot(ctx context.Context, electionID, ballotID string) (models.Ballot, error) {
	var b models.Ballot
	var ballotType string
	err := s.sqlDB.QueryRowContext(ctx, s.q(`
		SELECT id, election_id, title, type, max_selections
		FROM ballot
		WHERE id = ? AND election_id = ?
	`), ballotID, electionID).Scan(&b.ID, &b.ElectionID, &b.Title, &ballotType, &b.MaxSelections)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Ballot{}, ErrNotFound
	}
	if err != nil {
		return models.Ballot{}, fmt.Errorf("query ballot: %w", err)
	}
	b.Type = models.BallotType(ballotType)

	b.Options, err = s.options(ctx, b.ID)
	if err != nil {
		return models.Ballot{}, err
	}
	return b, nil
}

// Ballots lists an election's ballots in display order.
func (s *Store) Ballots(ctx context.Context, electionID string) ([]models.Ballot, error) {
	rows, err := s.sqlDB.QueryContext(ctx, s.q(`
		SELECT id, election_id, title, type, max_selections
		FROM ballot
		WHERE election_id = ?
		ORDER BY position, id
	`), electionID)
	if err != nil {
		return nil, fmt.Errorf("query ballots: %w", err)
	}

	ballots := []models.Ballot{}
	for rows.Next() {
		var b models.Ballot
		var ballotType string
		if err := rows.Scan(&b.ID, &b.ElectionID, &b.Title, &ballotType, &b.MaxSelections); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan ballot: %w", err)
		}
		b.Type = models.BallotType(ballotType)
		ballots = append(ballots, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate ballots: %w", err)
	}
	// Release the connection before loading options; sqlite runs with a
	// single connection.
	rows.Close()

	for i := range ballots {
		ballots[i].Options, err = s.options(ctx, ballots[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return ballots, nil
}

func (s *Store) options(ctx context.Context, ballotID string) ([]models.Option, error) {
	rows, err := s.sqlDB.QueryContext(ctx, s.q(`
		SELECT id, label
		FROM ballot_option
		WHERE ballot_id = ?
		ORDER BY position, id
	`), ballotID)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.Label); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate options: %w", err)
	}
	return options, nil
}
