// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballotbox API.

NewRouter wires the voting engine, the issuer and the handlers onto a
Go 1.22+ http.ServeMux:

	mux := router.NewRouter(store, cfg)

# Endpoints

Health:

	GET /health
	GET /

Voting (requires X-Voter-Token):

	POST /votes/validate - Check a token without using it
	POST /votes/cast     - Cast one ballot
	POST /votes/cast-all - Cast every ballot with one token

Voter management:

	POST /elections/{electionId}/voters        - Issue one credential
	POST /elections/{electionId}/voters/import - Issue credentials in bulk
	GET  /elections/{electionId}/voters        - List credentials
	GET  /elections/{electionId}/voters/stats  - Issued and used counts

Results:

	GET /results/{electionId}                  - Every ballot
	GET /results/{electionId}/{ballotId}       - One ballot
	GET /results/{electionId}/{ballotId}/count - Vote records for a ballot
*/
package router
