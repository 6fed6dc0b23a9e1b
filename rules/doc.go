// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rules validates submitted selections against ballot constraints.

Each ballot type has exactly one Rule, looked up by type:

	normalized, err := rules.Validate(ballot, optionIDs)

  - single: exactly one option
  - multiple: 1..MaxSelections distinct options

Violations return ErrInvalidSelectionCount or ErrUnknownOption. Validation is
pure and in-memory, so it always runs before any credential is touched.
*/
package rules
