// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package workflow

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sharedco/decom/internal/config"
	"github.com/sharedco/decom/internal/reach"
)

// WriteReport prints what an availability check found: probe output, the
// advisory DNS verdict, and the HTTP status and headers.
func WriteReport(w io.Writer, res reach.Result, names config.MigrationConfig) {
	if res.PingErr != nil {
		fmt.Fprintf(w, "Ping failed: %v\n", res.PingErr)
		fmt.Fprintln(w, "Basic connectivity check failed. The host might be down.")
		return
	}

	if out := strings.TrimRight(res.PingOutput, "\n"); out != "" {
		fmt.Fprintln(w, out)
	}

	switch res.Verdict {
	case reach.VerdictOrigin:
		fmt.Fprintf(w, "Warning: %s still resolves through %s DNS.\n", res.Host, names.Origin)
	case reach.VerdictDestination:
		fmt.Fprintf(w, "DNS: %s resolves through %s.\n", res.Host, names.Destination)
	default:
		fmt.Fprintf(w, "DNS: could not tell which provider serves %s.\n", res.Host)
	}

	if res.HTTP == nil {
		return
	}

	fmt.Fprintf(w, "\nChecking HTTP response for %s...\n", res.HTTP.URL)
	if res.HTTP.Err != nil {
		fmt.Fprintf(w, "Error checking HTTP response: %v\n", res.HTTP.Err)
		return
	}
	fmt.Fprintf(w, "Response status code: %d\n", res.HTTP.StatusCode)
	fmt.Fprintln(w, "Response headers:")
	writeHeaders(w, res.HTTP.Header)
}

func writeHeaders(w io.Writer, h map[string][]string) {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %s\n", k, strings.Join(h[k], ", "))
	}
}
