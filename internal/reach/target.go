// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package reach

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidTarget is returned for hostnames that cannot be checked safely.
var ErrInvalidTarget = errors.New("invalid target")

// ParseTarget turns what the operator typed into the URL that gets
// requested. Its Host is the one that gets probed, and the one the app name
// is taken from. Targets with credentials, a scheme other than http or
// https, or no host are rejected.
func ParseTarget(target string) (*url.URL, error) {
	target = strings.TrimSpace(target)
	if i := strings.Index(target, "://"); i >= 0 {
		if scheme := target[:i]; scheme != "http" && scheme != "https" {
			return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidTarget, scheme)
		}
	}

	u, err := url.Parse(NormalizeURL(target))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	if u.User != nil {
		return nil, fmt.Errorf("%w: %q carries user info", ErrInvalidTarget, target)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidTarget, target)
	}
	return u, nil
}

// HostFromTarget reduces a hostname or URL to its network location.
// "https://myapp.botics.co/health" and "myapp.botics.co/health" both become
// "myapp.botics.co". A port, if present, is kept. Invalid targets give "".
func HostFromTarget(target string) string {
	u, err := ParseTarget(target)
	if err != nil {
		return ""
	}
	return u.Host
}

// NormalizeURL prefixes https:// unless the target already carries an http
// or https scheme.
func NormalizeURL(target string) string {
	target = strings.TrimSpace(target)
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return "https://" + target
}
