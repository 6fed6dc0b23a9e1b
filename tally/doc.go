// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally aggregates stored votes into per-option counts.

	res, err := tally.Count(ballot, votes)
	view := tally.ForBallot(ballot, res) // zero-filled, ballot order

Both ballot types increment every selected option of every record; single
choice records must hold exactly one selection. TotalVotes is the number of
vote records and is the denominator for percentages.

Counting is pure: the same vote set always yields the same Result.
*/
package tally
