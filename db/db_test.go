// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"sqlite", SQLite, false},
		{"SQLite3", SQLite, false},
		{"postgres", Postgres, false},
		{" postgresql ", Postgres, false},
		{"pg", Postgres, false},
		{"mysql", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDialect(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDialect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnknownDialect) {
				t.Errorf("ParseDialect(%q) error = %v, want ErrUnknownDialect", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseDialect(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRebind(t *testing.T) {
	query := "UPDATE credential SET redeemed = ? WHERE election_id = ? AND token_digest = ?"

	if got := Rebind(SQLite, query); got != query {
		t.Errorf("Rebind(sqlite) changed query: %s", got)
	}

	want := "UPDATE credential SET redeemed = $1 WHERE election_id = $2 AND token_digest = $3"
	if got := Rebind(Postgres, query); got != want {
		t.Errorf("Rebind(postgres) = %s, want %s", got, want)
	}

	many := "VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	wantMany := "VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)"
	if got := Rebind(Postgres, many); got != wantMany {
		t.Errorf("Rebind(postgres) = %s, want %s", got, wantMany)
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"votes.db", "votes.db?" + sqlitePragmas},
		{"file:votes.db?mode=rwc", "file:votes.db?mode=rwc&" + sqlitePragmas},
		{"votes.db?_pragma=journal_mode(WAL)", "votes.db?_pragma=journal_mode(WAL)"},
	}
	for _, tt := range tests {
		if got := sqliteDSN(tt.in); got != tt.want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCreateSchema_SQLite(t *testing.T) {
	conn, err := Open(SQLite, filepath.Join(t.TempDir(), "schema.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	// Safe to run twice
	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn, SQLite); err != nil {
			t.Fatalf("CreateSchema() run %d error = %v", i+1, err)
		}
	}

	for _, table := range []string{"ballot", "ballot_option", "credential", "vote", "vote_selection"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestCreateSchema_VoteHasNoCredentialColumns(t *testing.T) {
	conn, err := Open(SQLite, filepath.Join(t.TempDir(), "anon.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn, SQLite); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}

	for _, table := range []string{"vote", "vote_selection"} {
		rows, err := conn.Query(`SELECT name FROM pragma_table_info(?)`, table)
		if err != nil {
			t.Fatalf("pragma_table_info(%s) error = %v", table, err)
		}
		for rows.Next() {
			var col string
			if err := rows.Scan(&col); err != nil {
				t.Fatal(err)
			}
			switch col {
			case "credential_id", "identity", "token_digest", "voter_token", "redeemed_at", "submitted_at":
				t.Errorf("%s.%s links a vote back to its voter", table, col)
			}
		}
		rows.Close()
	}
}

func TestCreateSchema_UnknownDialect(t *testing.T) {
	if err := CreateSchema(nil, Dialect("oracle")); !errors.Is(err, ErrUnknownDialect) {
		t.Errorf("CreateSchema() error = %v, want ErrUnknownDialect", err)
	}
}
