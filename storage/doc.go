// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package storage persists credentials and votes and reads ballots over
// database/sql. RedeemAndRecord is the only write path for votes.
package storage
