// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/ballotbox/db"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/storage"
	"github.com/danielhkuo/ballotbox/testutil"
)

func newTestMux(t *testing.T) (*http.ServeMux, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	store := storage.New(conn, db.SQLite)
	return NewRouter(store, testutil.GetTestConfig()), conn
}

func TestHealthEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux, _ := newTestMux(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	expected := "ballotbox API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux, _ := newTestMux(t)

	// 400, 401 and 404 are valid handler responses for empty requests
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/votes/validate"},
		{"POST", "/votes/cast"},
		{"POST", "/votes/cast-all"},

		{"POST", "/elections/e1/voters"},
		{"POST", "/elections/e1/voters/import"},
		{"GET", "/elections/e1/voters"},
		{"GET", "/elections/e1/voters/stats"},

		{"GET", "/results/e1"},
		{"GET", "/results/e1/b1"},
		{"GET", "/results/e1/b1/count"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestSpecificMethodRouting(t *testing.T) {
	mux, _ := newTestMux(t)

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		{"GET to cast endpoint", "GET", "/votes/cast", http.StatusMethodNotAllowed},
		{"DELETE voters", "DELETE", "/elections/e1/voters", http.StatusMethodNotAllowed},
		{"unknown path", "GET", "/polls/abc", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestCastThroughRouter(t *testing.T) {
	mux, conn := newTestMux(t)

	ballot := testutil.CreateTestBallot(t, conn, "e1", models.BallotSingle, 1, "A", "B")
	token := testutil.IssueTestCredential(t, conn, "e1", "a@x.org", nil)

	body := models.CastRequest{ElectionID: "e1", BallotID: ballot.ID, OptionIDs: testutil.OptionIDs(ballot, "A")}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes/cast", body, map[string]string{"X-Voter-Token": token}))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Path parameters reach the results handler
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/results/e1/"+ballot.ID, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"total_votes":1`) {
		t.Errorf("Expected one vote in results, got %s", w.Body.String())
	}
}
