// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

// Package reach decides whether a migrated app is live: a ping probe whose
// output hints at which provider serves the hostname, followed by an HTTP
// request against the app itself.
package reach

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Result collects everything one availability check learned.
type Result struct {
	Target     string
	Host       string
	PingOutput string
	PingErr    error
	Verdict    Verdict
	// HTTP is nil when the ping failed and the request was skipped.
	HTTP *HTTPResult
}

// Reachable reports whether the ping probe succeeded.
func (r Result) Reachable() bool {
	return r.PingErr == nil
}

// Available is the gate value: the host answered the probe and the app
// answered the request with a non-error status.
func (r Result) Available() bool {
	return r.Reachable() && r.HTTP != nil && r.HTTP.Available()
}

// Checker runs the probe and the HTTP check in sequence.
type Checker struct {
	pinger Pinger
	http   *HTTPChecker
	sigs   Signatures
	log    logrus.FieldLogger
}

func NewChecker(pinger Pinger, http *HTTPChecker, sigs Signatures, log logrus.FieldLogger) *Checker {
	return &Checker{
		pinger: pinger,
		http:   http,
		sigs:   sigs,
		log:    log,
	}
}

// Check probes target, then requests it over HTTP if the probe succeeded.
// A target ParseTarget rejects is reported as unreachable without probing.
func (c *Checker) Check(ctx context.Context, target string) Result {
	res := Result{Target: target}
	u, err := ParseTarget(target)
	if err != nil {
		res.PingErr = err
		c.log.WithError(err).WithField("target", target).Warn("refusing to check target")
		return res
	}
	res.Host = u.Host
	log := c.log.WithField("host", res.Host)

	res.PingOutput, res.PingErr = c.pinger.Ping(ctx, res.Host)
	if res.PingErr != nil {
		log.WithError(res.PingErr).Warn("ping failed, skipping http check")
		return res
	}

	res.Verdict = Classify(res.PingOutput, c.sigs)
	log.WithField("verdict", res.Verdict.String()).Debug("ping succeeded")

	httpRes := c.http.Check(ctx, u.String())
	res.HTTP = &httpRes

	entry := log.WithField("url", httpRes.URL)
	if httpRes.Err != nil {
		entry.WithError(httpRes.Err).Warn("http check failed")
	} else {
		entry.WithField("status", httpRes.StatusCode).Info("http check completed")
	}
	return res
}
