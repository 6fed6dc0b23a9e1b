// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballotbox API server.

ballotbox redeems single-use voter tokens and records anonymous votes. Each
issued token authorizes exactly one submission, selections are checked
against ballot rules before the token is touched, and stored votes carry no
link back to the voter.

# Starting the Server

The server reads environment variables (and a .env file when present) or
CLI flags:

	DATABASE_URL=ballots.db IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." --ip-salt "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): sqlite file path or PostgreSQL connection string
  - IP_HASH_SALT (--ip-salt): HMAC key for vote metadata, unless
    RETAIN_VOTE_META=false

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - RETAIN_VOTE_META (--retain-meta): keep IP hash and user agent (default: true)
  - IMPORT_WORKERS (--import-workers): bulk import concurrency (default: 8)

# Architecture

  - handlers, router, middleware: HTTP boundary
  - voting: redemption engine, validate pre-check, results
  - issuance: single and bulk credential issuance
  - rules: per ballot type selection validation
  - tally: per ballot type vote aggregation
  - storage: credentials, votes and ballots over database/sql
  - db: dialects, connection setup and schema
  - auth: token generation, digests and IP hashing
  - cliparse: configuration parsing
  - models: domain, request and response types

See package documentation for each component.
*/
package main
