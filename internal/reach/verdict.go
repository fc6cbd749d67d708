// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package reach

import "strings"

// Verdict says which provider's DNS a hostname appears to resolve through.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictOrigin
	VerdictDestination
)

func (v Verdict) String() string {
	switch v {
	case VerdictOrigin:
		return "origin"
	case VerdictDestination:
		return "destination"
	default:
		return "unknown"
	}
}

// Signatures are DNS name fragments that identify each provider in probe output.
type Signatures struct {
	Origin      []string
	Destination []string
}

// Classify looks for a provider signature in raw probe output. Origin
// signatures are checked first, so output carrying both is classified as
// origin. Matching is case-insensitive.
func Classify(output string, sigs Signatures) Verdict {
	text := strings.ToLower(output)

	if containsAny(text, sigs.Origin) {
		return VerdictOrigin
	}
	if containsAny(text, sigs.Destination) {
		return VerdictDestination
	}
	return VerdictUnknown
}

func containsAny(text string, fragments []string) bool {
	for _, f := range fragments {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && strings.Contains(text, f) {
			return true
		}
	}
	return false
}
