// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package issuance

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/ballotbox/models"
)

// BatchResult reports a bulk import. Issued holds the only copy of each
// plaintext token.
type BatchResult struct {
	SuccessCount int
	Errors       []string
	Issued       []models.IssuedToken
}

type rowOutcome struct {
	skipped bool
	issued  models.IssuedToken
	err     error
}

// ImportBatch issues one credential per row. Blank rows and rows starting
// with '#' are skipped. A failing row is reported in Errors and never stops
// the rest of the batch. Results keep row order.
func (i *Issuer) ImportBatch(ctx context.Context, electionID string, rows []string, expiryHours int) (BatchResult, error) {
	if expiryHours < 0 {
		return BatchResult{}, ErrInvalidExpiry
	}

	outcomes := make([]rowOutcome, len(rows))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)
	for n, row := range rows {
		identity := strings.TrimSpace(row)
		if identity == "" || strings.HasPrefix(identity, "#") {
			outcomes[n].skipped = true
			continue
		}

		g.Go(func() error {
			// Row failures are collected, not returned, so siblings keep running
			if err := gctx.Err(); err != nil {
				outcomes[n].err = err
				return nil
			}
			cred, token, err := i.Issue(gctx, electionID, identity, expiryHours)
			if err != nil {
				outcomes[n].err = err
				return nil
			}
			outcomes[n].issued = models.IssuedToken{Email: cred.Identity, Token: token}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BatchResult{}, err
	}

	res := BatchResult{Errors: []string{}, Issued: []models.IssuedToken{}}
	for n, o := range outcomes {
		switch {
		case o.skipped:
		case o.err != nil:
			res.Errors = append(res.Errors, fmt.Sprintf("row %d (%s): %v", n+1, strings.TrimSpace(rows[n]), o.err))
		default:
			res.SuccessCount++
			res.Issued = append(res.Issued, o.issued)
		}
	}

	slog.Info("voter import finished",
		"election_id", electionID,
		"rows", len(rows),
		"issued", res.SuccessCount,
		"failed", len(res.Errors),
	)

	return res, nil
}
