// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/danielhkuo/ballotbox/db"
)

type Config struct {
	Port           int    `env:"PORT" envDefault:"3318"`
	DatabaseURL    string `env:"DATABASE_URL"`
	DatabaseType   string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	IPHashSalt     string `env:"IP_HASH_SALT"`
	RetainVoteMeta bool   `env:"RETAIN_VOTE_META" envDefault:"true"`
	ImportWorkers  int    `env:"IMPORT_WORKERS" envDefault:"8"`
}

// ParseFlags reads environment variables, then lets CLI flags override them
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("ballotbox", flag.ContinueOnError)

	// Env values become the flag defaults, so flags win when both are set
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", cfg.IPHashSalt, "IP hash salt (prefer env)")

	fs.BoolVar(&cfg.RetainVoteMeta, "retain-meta", cfg.RetainVoteMeta, "Store IP hash and user agent with votes")
	fs.IntVar(&cfg.ImportWorkers, "import-workers", cfg.ImportWorkers, "Concurrent rows during bulk voter import")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, errors.New("invalid port")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if _, err := db.ParseDialect(cfg.DatabaseType); err != nil {
		return Config{}, err
	}
	if cfg.ImportWorkers < 1 {
		return Config{}, errors.New("import workers must be at least 1")
	}

	// The salt is only needed when IP hashes are written
	if cfg.RetainVoteMeta && cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required when vote metadata is retained")
	}

	return cfg, nil
}
