// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballotbox API.

# Handler Types

Each handler is a struct holding its collaborators and the config:

  - VotingHandler: token validation and vote casting
  - VoterHandler: credential issuance, bulk import, voter list and stats
  - ResultsHandler: tallies per ballot and per election

	votingHandler := handlers.NewVotingHandler(engine, cfg)

# Voting Flow

Voting requests carry the plaintext token in the X-Voter-Token header:

	POST /votes/validate → ValidateToken (never consumes the token)
	POST /votes/cast     → Cast (one ballot)
	POST /votes/cast-all → CastAll (every ballot, one token)

Rejected tokens get a 401 whose reason field is invalid, used or expired.
Rule violations are 400 and leave the token usable.

# Voter Management

	POST /elections/{electionId}/voters        → AddVoter
	POST /elections/{electionId}/voters/import → ImportVoters
	GET  /elections/{electionId}/voters        → ListVoters
	GET  /elections/{electionId}/voters/stats  → GetStats

Plaintext tokens appear only in the AddVoter and ImportVoters responses.
*/
package handlers
