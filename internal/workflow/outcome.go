// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package workflow

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sharedco/decom/internal/reach"
)

// Outcome is where one app's pass through the gates ended.
type Outcome string

const (
	OutcomeCustomDomain Outcome = "custom-domain"
	OutcomeNotMigrated  Outcome = "not-migrated"
	OutcomeNoHostname   Outcome = "no-hostname"
	OutcomeBadHostname  Outcome = "invalid-hostname"
	OutcomeUnreachable  Outcome = "unreachable"
	OutcomeDeclined     Outcome = "declined"
	OutcomeDeleteFailed Outcome = "delete-failed"
	OutcomeDeleted      Outcome = "deleted"
)

// AppResult describes a single app pass.
type AppResult struct {
	Outcome Outcome
	Target  string
	App     string
	Verdict reach.Verdict
}

// Summary aggregates a whole session.
type Summary struct {
	Identity string
	Outcomes map[Outcome]int
	Deleted  []string
}

func (s *Summary) add(r AppResult) {
	if s.Outcomes == nil {
		s.Outcomes = make(map[Outcome]int)
	}
	s.Outcomes[r.Outcome]++
	if r.Outcome == OutcomeDeleted {
		s.Deleted = append(s.Deleted, r.App)
	}
}

// Processed is the number of apps taken through the gates.
func (s Summary) Processed() int {
	n := 0
	for _, c := range s.Outcomes {
		n += c
	}
	return n
}

// String renders the outcome counts in a stable order.
func (s Summary) String() string {
	keys := make([]string, 0, len(s.Outcomes))
	for o := range s.Outcomes {
		keys = append(keys, string(o))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.Itoa(s.Outcomes[Outcome(k)]))
	}
	return strings.Join(parts, " ")
}
