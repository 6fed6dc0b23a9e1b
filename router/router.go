// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/issuance"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/storage"
	"github.com/danielhkuo/ballotbox/voting"
)

func NewRouter(store *storage.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	engine := voting.NewEngine(store, cfg.RetainVoteMeta)
	issuer := issuance.NewIssuer(store, cfg.ImportWorkers)

	// Initialize handlers
	votingHandler := handlers.NewVotingHandler(engine, cfg)
	resultsHandler := handlers.NewResultsHandler(engine, cfg)
	voterHandler := handlers.NewVoterHandler(issuer, store, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voting operations (token in X-Voter-Token)
	mux.HandleFunc("POST /votes/validate", middleware.WithLogging(votingHandler.ValidateToken))
	mux.HandleFunc("POST /votes/cast", middleware.WithLogging(votingHandler.Cast))
	mux.HandleFunc("POST /votes/cast-all", middleware.WithLogging(votingHandler.CastAll))

	// Voter management
	mux.HandleFunc("POST /elections/{electionId}/voters", middleware.WithLogging(voterHandler.AddVoter))
	mux.HandleFunc("POST /elections/{electionId}/voters/import", middleware.WithLogging(voterHandler.ImportVoters))
	mux.HandleFunc("GET /elections/{electionId}/voters", middleware.WithLogging(voterHandler.ListVoters))
	mux.HandleFunc("GET /elections/{electionId}/voters/stats", middleware.WithLogging(voterHandler.GetStats))

	// Results
	mux.HandleFunc("GET /results/{electionId}", middleware.WithLogging(resultsHandler.GetElectionResults))
	mux.HandleFunc("GET /results/{electionId}/{ballotId}", middleware.WithLogging(resultsHandler.GetBallotResults))
	mux.HandleFunc("GET /results/{electionId}/{ballotId}/count", middleware.WithLogging(resultsHandler.GetBallotCount))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
