// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// BallotType selects the validation rule and tally strategy for a ballot.
type BallotType string

// Ballot type constants
const (
	BallotSingle   BallotType = "single"
	BallotMultiple BallotType = "multiple"
)

// Token check reasons
const (
	ReasonInvalid = "invalid"
	ReasonUsed    = "used"
	ReasonExpired = "expired"
)

// Domain types

// Credential is one issued voter token. Only the digest of the token is kept.
type Credential struct {
	ID          string     `json:"id"`
	ElectionID  string     `json:"election_id"`
	Identity    string     `json:"email"`
	TokenDigest string     `json:"-"` // Never expose in JSON
	Redeemed    bool       `json:"used"`
	RedeemedAt  *time.Time `json:"used_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Expired reports whether the credential has an expiry at or before now.
func (c Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !c.ExpiresAt.After(now)
}

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Ballot struct {
	ID            string     `json:"id"`
	ElectionID    string     `json:"election_id"`
	Title         string     `json:"title"`
	Type          BallotType `json:"type"`
	MaxSelections int        `json:"max_selections"`
	Options       []Option   `json:"options"`
}

// HasOption reports whether id is one of the ballot's options.
func (b Ballot) HasOption(id string) bool {
	for _, opt := range b.Options {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// VoteMeta is non-identifying submission context kept for abuse analysis.
type VoteMeta struct {
	IPHash    string `json:"-"`
	UserAgent string `json:"-"`
}

// Vote is one anonymous ballot submission. It carries no reference to the
// credential that authorized it.
type Vote struct {
	ID         string   `json:"id"`
	ElectionID string   `json:"election_id"`
	BallotID   string   `json:"ballot_id"`
	OptionIDs  []string `json:"option_ids"`
	Meta       VoteMeta `json:"-"`
}

// Selection is a (ballot, options) pair as submitted or as normalized.
type Selection struct {
	BallotID  string   `json:"ballot_id"`
	OptionIDs []string `json:"option_ids"`
}

type CredentialStats struct {
	Issued   int `json:"issued"`
	Redeemed int `json:"redeemed"`
}

// Request types

type ValidateTokenRequest struct {
	ElectionID string `json:"election_id"`
}

type CastRequest struct {
	ElectionID string   `json:"election_id"`
	BallotID   string   `json:"ballot_id"`
	OptionIDs  []string `json:"option_ids"`
}

type CastAllRequest struct {
	ElectionID string      `json:"election_id"`
	Ballots    []Selection `json:"ballots"`
}

type AddVoterRequest struct {
	Email       string `json:"email"`
	ExpiryHours int    `json:"expiry_hours,omitempty"`
}

type ImportVotersRequest struct {
	Rows        []string `json:"rows"`
	ExpiryHours int      `json:"expiry_hours,omitempty"`
}

// Response types

type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

type CastResponse struct {
	Message    string      `json:"message"`
	Selections []Selection `json:"selections"`
}

type AddVoterResponse struct {
	Voter Credential `json:"voter"`
	Token string     `json:"token"`
}

type IssuedToken struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type ImportVotersResponse struct {
	Success int           `json:"success"`
	Errors  []string      `json:"errors"`
	Voters  []IssuedToken `json:"voters"`
}

type BallotCountResponse struct {
	BallotID  string `json:"ballot_id"`
	VoteCount int    `json:"vote_count"`
}

type ListVotersResponse struct {
	Results int          `json:"results"`
	Voters  []Credential `json:"voters"`
}

// Result types

type OptionResult struct {
	OptionID string `json:"option_id"`
	Label    string `json:"label"`
	Votes    int    `json:"votes"`
}

type BallotResult struct {
	BallotID   string         `json:"ballot_id"`
	Title      string         `json:"title"`
	Type       BallotType     `json:"type"`
	Options    []OptionResult `json:"options"`
	TotalVotes int            `json:"total_votes"`
}

type ElectionResults struct {
	ElectionID string         `json:"election_id"`
	Results    []BallotResult `json:"results"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Reason  string `json:"reason,omitempty"`
}
