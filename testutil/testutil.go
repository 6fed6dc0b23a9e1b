// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/models"
)

// SetupTestDB creates a fresh sqlite database file with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.SQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.SQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    "test.db",
		DatabaseType:   "sqlite",
		IPHashSalt:     "test-ip-salt",
		RetainVoteMeta: true,
		ImportWorkers:  4,
	}
}

// CreateTestBallot inserts a ballot with one option per label. Use OptionID
// to get the stored id for a label.
func CreateTestBallot(t *testing.T, conn *sql.DB, electionID string, ballotType models.BallotType, maxSelections int, labels ...string) models.Ballot {
	t.Helper()

	var position int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ballot WHERE election_id = ?`, electionID).Scan(&position); err != nil {
		t.Fatalf("Failed to count ballots: %v", err)
	}

	b := models.Ballot{
		ID:            "ballot-" + uuid.NewString()[:8],
		ElectionID:    electionID,
		Title:         fmt.Sprintf("Ballot %d", position+1),
		Type:          ballotType,
		MaxSelections: maxSelections,
	}

	_, err := conn.Exec(`
		INSERT INTO ballot (id, election_id, title, type, max_selections, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.ID, b.ElectionID, b.Title, string(b.Type), b.MaxSelections, position)
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	for i, label := range labels {
		opt := models.Option{ID: OptionID(b, label), Label: "Option " + label}
		_, err := conn.Exec(`
			INSERT INTO ballot_option (id, ballot_id, label, position)
			VALUES (?, ?, ?, ?)
		`, opt.ID, b.ID, opt.Label, i)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
		b.Options = append(b.Options, opt)
	}

	return b
}

// OptionID returns the stored id of the option created for label.
func OptionID(b models.Ballot, label string) string {
	return b.ID + "/" + label
}

// OptionIDs maps labels to stored option ids.
func OptionIDs(b models.Ballot, labels ...string) []string {
	ids := make([]string, len(labels))
	for i, l := range labels {
		ids[i] = OptionID(b, l)
	}
	return ids
}

// IssueTestCredential inserts an unredeemed credential and returns its
// plaintext token. A nil expiresAt means no expiry.
func IssueTestCredential(t *testing.T, conn *sql.DB, electionID, identity string, expiresAt *time.Time) string {
	t.Helper()

	token, err := auth.GenerateVoterToken()
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	digest, _ := auth.DigestToken(token)

	var expires sql.NullInt64
	if expiresAt != nil {
		expires = sql.NullInt64{Int64: expiresAt.UTC().UnixMilli(), Valid: true}
	}

	_, err = conn.Exec(`
		INSERT INTO credential (id, election_id, identity, token_digest, redeemed, expires_at, created_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)
	`, uuid.NewString(), electionID, strings.ToLower(identity), digest, expires, time.Now().UnixMilli())
	if err != nil {
		t.Fatalf("Failed to create test credential: %v", err)
	}

	return token
}

// CredentialRedeemed reports the stored redemption flag for a token.
func CredentialRedeemed(t *testing.T, conn *sql.DB, electionID, token string) bool {
	t.Helper()

	digest, _ := auth.DigestToken(token)
	var redeemed bool
	err := conn.QueryRow(`
		SELECT redeemed FROM credential WHERE election_id = ? AND token_digest = ?
	`, electionID, digest).Scan(&redeemed)
	if err != nil {
		t.Fatalf("Failed to query credential: %v", err)
	}
	return redeemed
}

// CountRows counts rows in a table, optionally filtered by election.
func CountRows(t *testing.T, conn *sql.DB, table, electionID string) int {
	t.Helper()

	var n int
	err := conn.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE election_id = ?`, electionID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
