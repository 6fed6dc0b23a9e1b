// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Credential: an issued voter token (digest only), redemption state, expiry
  - Ballot: externally managed question with type, max selections, options
  - Option: selectable ballot option
  - Vote: anonymous submission for one ballot (no credential reference)
  - VoteMeta: optional IP hash and user agent kept alongside a vote
  - Selection: ballot id plus option ids, as submitted or normalized

# Request Types

  - ValidateTokenRequest: election_id
  - CastRequest: election_id, ballot_id, option_ids
  - CastAllRequest: election_id, ballots
  - AddVoterRequest: email, expiry_hours
  - ImportVotersRequest: rows, expiry_hours

The voter token itself travels in the X-Voter-Token header, never in a body.

# Response Types

  - ValidateTokenResponse, CastResponse
  - AddVoterResponse: the only response that carries a single plaintext token
  - ImportVotersResponse: the only response that carries a batch of tokens
  - ListVotersResponse, CredentialStats
  - BallotResult, ElectionResults
  - ErrorResponse: error, message, reason

# Constants

Ballot types:

	BallotSingle   = "single"
	BallotMultiple = "multiple"

Token check reasons:

	ReasonInvalid = "invalid"
	ReasonUsed    = "used"
	ReasonExpired = "expired"
*/
package models
