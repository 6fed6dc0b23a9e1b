// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting redeems voter tokens and records anonymous votes.

# Casting

	sel, err := engine.Cast(ctx, token, electionID, selection, meta)
	sels, err := engine.CastAll(ctx, token, electionID, selections, meta)

Selections are validated by package rules before the credential is touched.
Redemption is one conditional update in the same transaction as the vote
inserts, so for a given token exactly one concurrent cast succeeds and the
rest fail with ErrInvalidOrUsedToken.

ErrVoteNotRecorded means the commit outcome is unknown. Callers should
treat the token as possibly consumed.

# Token Reasons

Token failures are *TokenError values; Reason(err) returns invalid, used or
expired. Validate reports the same reasons without redeeming anything.

# Results

Tally, BallotResult and Results aggregate stored votes with package tally.
Results fills in options with no votes.
*/
package voting
