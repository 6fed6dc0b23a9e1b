// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package issuance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/storage"
)

var (
	ErrInvalidIdentity   = errors.New("invalid email address")
	ErrDuplicateIdentity = errors.New("voter already exists for this election")
	ErrInvalidExpiry     = errors.New("expiry hours must not be negative")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CredentialStore is the subset of storage.Store issuance writes through.
type CredentialStore interface {
	InsertCredential(ctx context.Context, c models.Credential) error
}

// Issuer creates credentials. The plaintext token only ever exists in the
// return value of Issue or ImportBatch.
type Issuer struct {
	store   CredentialStore
	now     func() time.Time
	workers int
}

func NewIssuer(store CredentialStore, workers int) *Issuer {
	if workers < 1 {
		workers = 1
	}
	return &Issuer{store: store, now: time.Now, workers: workers}
}

// NormalizeIdentity trims and lowercases an email address.
func NormalizeIdentity(identity string) string {
	return strings.ToLower(strings.TrimSpace(identity))
}

// Issue creates one credential for identity in electionID. expiryHours of 0
// means the credential never expires.
func (i *Issuer) Issue(ctx context.Context, electionID, identity string, expiryHours int) (models.Credential, string, error) {
	identity = NormalizeIdentity(identity)
	if !emailPattern.MatchString(identity) {
		return models.Credential{}, "", ErrInvalidIdentity
	}
	if expiryHours < 0 {
		return models.Credential{}, "", ErrInvalidExpiry
	}

	token, err := auth.GenerateVoterToken()
	if err != nil {
		return models.Credential{}, "", fmt.Errorf("generate token: %w", err)
	}
	digest, err := auth.DigestToken(token)
	if err != nil {
		return models.Credential{}, "", fmt.Errorf("digest token: %w", err)
	}

	now := i.now().UTC().Truncate(time.Millisecond)
	cred := models.Credential{
		ID:          uuid.NewString(),
		ElectionID:  electionID,
		Identity:    identity,
		TokenDigest: digest,
		CreatedAt:   now,
	}
	if expiryHours > 0 {
		expires := now.Add(time.Duration(expiryHours) * time.Hour)
		cred.ExpiresAt = &expires
	}

	if err := i.store.InsertCredential(ctx, cred); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.Credential{}, "", ErrDuplicateIdentity
		}
		return models.Credential{}, "", err
	}

	expiry := "never"
	if cred.ExpiresAt != nil {
		expiry = humanize.RelTime(now, *cred.ExpiresAt, "ago", "from now")
	}
	slog.Info("voter credential issued", "election_id", electionID, "email", identity, "expires", expiry)

	return cred, token, nil
}
