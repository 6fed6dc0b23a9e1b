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

// InsertCredential stores a new unredeemed credential. A second credential
// for the same (election, identity) fails with ErrDuplicate.
func (s *Store) InsertCredential(ctx context.Context, c models.Credential) error {
	_, err := s.sqlDB.ExecContext(ctx, s.q(`
		INSERT INTO credential (id, election_id, identity, token_digest, redeemed, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), c.ID, c.ElectionID, c.Identity, c.TokenDigest, false, nullMillis(c.ExpiresAt), toMillis(c.CreatedAt))

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

// CredentialByDigest looks a credential up without changing it.
func (s *Store) CredentialByDigest(ctx context.Context, electionID, digest string) (models.Credential, error) {
	c, err := scanCredential(s.sqlDB.QueryRowContext(ctx, s.q(`
		SELECT id, election_id, identity, token_digest, redeemed, redeemed_at, expires_at, created_at
		FROM credential
		WHERE election_id = ? AND token_digest = ?
	`), electionID, digest))

	if errors.Is(err, sql.ErrNoRows) {
		return models.Credential{}, ErrNotFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("query credential: %w", err)
	}
	return c, nil
}

// ListCredentials returns an election's credentials, newest first.
func (s *Store) ListCredentials(ctx context.Context, electionID string) ([]models.Credential, error) {
	rows, err := s.sqlDB.QueryContext(ctx, s.q(`
		SELECT id, election_id, identity, token_digest, redeemed, redeemed_at, expires_at, created_at
		FROM credential
		WHERE election_id = ?
		ORDER BY created_at DESC, identity
	`), electionID)
	if err != nil {
		return nil, fmt.Errorf("query credentials: %w", err)
	}
	defer rows.Close()

	creds := []models.Credential{}
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		creds = append(creds, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}
	return creds, nil
}

// CredentialStats counts issued and redeemed credentials for an election.
func (s *Store) CredentialStats(ctx context.Context, electionID string) (models.CredentialStats, error) {
	var stats models.CredentialStats
	err := s.sqlDB.QueryRowContext(ctx, s.q(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN redeemed THEN 1 ELSE 0 END), 0)
		FROM credential
		WHERE election_id = ?
	`), electionID).Scan(&stats.Issued, &stats.Redeemed)
	if err != nil {
		return models.CredentialStats{}, fmt.Errorf("count credentials: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCredential(row rowScanner) (models.Credential, error) {
	var c models.Credential
	var redeemedAt, expiresAt sql.NullInt64
	var createdAt int64
	err := row.Scan(&c.ID, &c.ElectionID, &c.Identity, &c.TokenDigest,
		&c.Redeemed, &redeemedAt, &expiresAt, &createdAt)
	if err != nil {
		return models.Credential{}, err
	}
	c.RedeemedAt = timePtr(redeemedAt)
	c.ExpiresAt = timePtr(expiresAt)
	c.CreatedAt = fromMillis(createdAt)
	return c, nil
}
