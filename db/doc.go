// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections and schema creation for Postgres and SQLite.

# Connecting

	dialect, err := db.ParseDialect(cfg.DatabaseType)
	conn, err := db.Open(dialect, cfg.DatabaseURL)

SQLite connections get a busy timeout, foreign keys, and a single open
connection so writers queue in the pool.

# Schema Creation

	if err := db.CreateSchema(conn, dialect); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - ballot: ballot metadata, written by election management
  - ballot_option: ordered options per ballot
  - credential: one row per (election, identity), token digest only
  - vote: one anonymous row per (redemption, ballot)
  - vote_selection: selected options per vote

# Relationships

	ballot 1──* ballot_option
	ballot 1──* vote
	vote   1──* vote_selection

Credential and vote share no key.
Timestamps are stored as unix milliseconds in both dialects.

# Placeholders

Queries are written with ? and rewritten for Postgres:

	conn.Exec(db.Rebind(dialect, "DELETE FROM x WHERE id = ?"), id)
*/
package db
