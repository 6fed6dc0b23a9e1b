// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/models"
)

// Redemption consumes one credential and records the votes it authorizes.
type Redemption struct {
	ElectionID  string
	TokenDigest string
	At          time.Time
	Votes       []models.Vote
}

// RedeemAndRecord flips the credential from unredeemed to redeemed with a
// single conditional UPDATE and writes every vote in the same transaction.
//
// Concurrent calls for one credential race on the UPDATE; exactly one sees a
// row affected and the rest get ErrNotRedeemable. A failed vote insert rolls
// the redemption back. A failed commit is reported as ErrCommitUncertain
// because the database may have applied it.
func (s *Store) RedeemAndRecord(ctx context.Context, r Redemption) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := toMillis(r.At)
	res, err := tx.ExecContext(ctx, s.q(`
		UPDATE credential
		SET redeemed = ?, redeemed_at = ?
		WHERE election_id = ? AND token_digest = ? AND redeemed = ?
		  AND (expires_at IS NULL OR expires_at > ?)
	`), true, now, r.ElectionID, r.TokenDigest, false, now)
	if err != nil {
		return fmt.Errorf("redeem credential: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("redeem credential: %w", err)
	}
	if affected != 1 {
		return ErrNotRedeemable
	}

	for _, v := range r.Votes {
		if err := s.insertVote(ctx, tx, v); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitUncertain, err)
	}
	return nil
}

func (s *Store) insertVote(ctx context.Context, tx *sql.Tx, v models.Vote) error {
	id := v.ID
	if id == "" {
		id = uuid.NewString()
	}

	_, err := tx.ExecContext(ctx, s.q(`
		INSERT INTO vote (id, election_id, ballot_id, ip_hash, user_agent)
		VALUES (?, ?, ?, ?, ?)
	`), id, v.ElectionID, v.BallotID, nullString(v.Meta.IPHash), nullString(v.Meta.UserAgent))
	if err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}

	for _, optionID := range v.OptionIDs {
		_, err := tx.ExecContext(ctx, s.q(`
			INSERT INTO vote_selection (vote_id, option_id)
			VALUES (?, ?)
		`), id, optionID)
		if err != nil {
			return fmt.Errorf("insert vote selection: %w", err)
		}
	}
	return nil
}

// Votes returns every vote recorded for a ballot, ordered by vote id.
func (s *Store) Votes(ctx context.Context, electionID, ballotID string) ([]models.Vote, error) {
	rows, err := s.sqlDB.QueryContext(ctx, s.q(`
		SELECT v.id, v.ip_hash, v.user_agent, vs.option_id
		FROM vote v
		LEFT JOIN vote_selection vs ON vs.vote_id = v.id
		WHERE v.election_id = ? AND v.ballot_id = ?
		ORDER BY v.id, vs.option_id
	`), electionID, ballotID)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var id string
		var ipHash, userAgent, optionID sql.NullString
		if err := rows.Scan(&id, &ipHash, &userAgent, &optionID); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}

		if n := len(votes); n == 0 || votes[n-1].ID != id {
			votes = append(votes, models.Vote{
				ID:         id,
				ElectionID: electionID,
				BallotID:   ballotID,
				OptionIDs:  []string{},
				Meta:       models.VoteMeta{IPHash: ipHash.String, UserAgent: userAgent.String},
			})
		}
		if optionID.Valid {
			last := &votes[len(votes)-1]
			last.OptionIDs = append(last.OptionIDs, optionID.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate votes: %w", err)
	}
	return votes, nil
}

// CountVotes returns the number of vote records for a ballot.
func (s *Store) CountVotes(ctx context.Context, electionID, ballotID string) (int, error) {
	var n int
	err := s.sqlDB.QueryRowContext(ctx, s.q(`
		SELECT COUNT(*) FROM vote WHERE election_id = ? AND ballot_id = ?
	`), electionID, ballotID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count votes: %w", err)
	}
	return n, nil
}
