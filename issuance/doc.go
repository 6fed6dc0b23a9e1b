// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package issuance creates voter credentials.

	cred, token, err := issuer.Issue(ctx, electionID, "voter@example.org", 72)

Identities are trimmed and lowercased before the email check, so uniqueness
per election is case-insensitive. Only the token digest is stored; the
plaintext token is returned once and cannot be retrieved again.

# Bulk Import

ImportBatch runs every row through Issue with a bounded worker pool:

	res, err := issuer.ImportBatch(ctx, electionID, rows, 0)

Blank rows and rows starting with '#' are skipped. Failing rows are reported
in res.Errors and never abort the batch.
*/
package issuance
