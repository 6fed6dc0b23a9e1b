// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Environment variables are read first (github.com/caarlos0/env), then CLI
flags override them.

# Config Fields

	Field           Env                Flag              Default
	Port            PORT               -p                3318
	DatabaseURL     DATABASE_URL       -d                (required)
	DatabaseType    DATABASE_TYPE      -t                sqlite
	IPHashSalt      IP_HASH_SALT       --ip-salt         (see below)
	RetainVoteMeta  RETAIN_VOTE_META   --retain-meta     true
	ImportWorkers   IMPORT_WORKERS     --import-workers  8

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - DATABASE_TYPE is not sqlite or postgres
  - IP_HASH_SALT is missing while vote metadata is retained
  - the port or worker count is out of range
*/
package cliparse
