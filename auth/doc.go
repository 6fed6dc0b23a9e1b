// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voter token generation and hashing utilities.

# Voter Tokens

Voter tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateVoterToken()

Tokens are URL-safe base64 encoded. The plaintext is returned to the issuing
caller once and is never persisted.

# Token Digests

Storage only ever sees the SHA-256 digest:

	digest, err := auth.DigestToken(token)

Redemption looks credentials up by (election, digest).

# IP Hashing

For privacy-preserving abuse analysis on vote metadata:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
