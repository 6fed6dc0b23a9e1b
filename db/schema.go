// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect Dialect) error {
	var schema string
	switch dialect {
	case Postgres:
		schema = postgresSchema
	case SQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDialect, dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Ballots (written by election management, read-only here)
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL,
    title TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'single' CHECK (type IN ('single', 'multiple')),
    max_selections INTEGER NOT NULL DEFAULT 1 CHECK (max_selections >= 1),
    position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_ballot_election_id ON ballot(election_id);

CREATE TABLE IF NOT EXISTS ballot_option (
    id TEXT PRIMARY KEY,
    ballot_id TEXT NOT NULL REFERENCES ballot(id) ON DELETE CASCADE,
    label TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_ballot_option_ballot_id ON ballot_option(ballot_id);

-- Credentials
CREATE TABLE IF NOT EXISTS credential (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL,
    identity TEXT NOT NULL,
    token_digest TEXT NOT NULL,
    redeemed BOOLEAN NOT NULL DEFAULT FALSE,
    redeemed_at BIGINT,
    expires_at BIGINT,
    created_at BIGINT NOT NULL,
    UNIQUE (election_id, identity),
    UNIQUE (election_id, token_digest),
    CHECK (redeemed = FALSE OR redeemed_at IS NOT NULL)
);

CREATE INDEX IF NOT EXISTS idx_credential_election_id ON credential(election_id);

-- Votes (no credential reference)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL,
    ballot_id TEXT NOT NULL REFERENCES ballot(id),
    ip_hash TEXT,
    user_agent TEXT
);

CREATE INDEX IF NOT EXISTS idx_vote_ballot ON vote(election_id, ballot_id);

CREATE TABLE IF NOT EXISTS vote_selection (
    vote_id TEXT NOT NULL REFERENCES vote(id),
    option_id TEXT NOT NULL,
    PRIMARY KEY (vote_id, option_id)
);
`

// WITHOUT ROWID keeps vote rows ordered by their random id instead of by
// insertion time.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL,
    title TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'single' CHECK (type IN ('single', 'multiple')),
    max_selections INTEGER NOT NULL DEFAULT 1 CHECK (max_selections >= 1),
    position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_ballot_election_id ON ballot(election_id);

CREATE TABLE IF NOT EXISTS ballot_option (
    id TEXT PRIMARY KEY,
    ballot_id TEXT NOT NULL REFERENCES ballot(id) ON DELETE CASCADE,
    label TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_ballot_option_ballot_id ON ballot_option(ballot_id);

CREATE TABLE IF NOT EXISTS credential (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL,
    identity TEXT NOT NULL,
    token_digest TEXT NOT NULL,
    redeemed INTEGER NOT NULL DEFAULT 0,
    redeemed_at INTEGER,
    expires_at INTEGER,
    created_at INTEGER NOT NULL,
    UNIQUE (election_id, identity),
    UNIQUE (election_id, token_digest),
    CHECK (redeemed = 0 OR redeemed_at IS NOT NULL)
);

CREATE INDEX IF NOT EXISTS idx_credential_election_id ON credential(election_id);

CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL,
    ballot_id TEXT NOT NULL REFERENCES ballot(id),
    ip_hash TEXT,
    user_agent TEXT
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_vote_ballot ON vote(election_id, ballot_id);

CREATE TABLE IF NOT EXISTS vote_selection (
    vote_id TEXT NOT NULL REFERENCES vote(id),
    option_id TEXT NOT NULL,
    PRIMARY KEY (vote_id, option_id)
) WITHOUT ROWID;
`
