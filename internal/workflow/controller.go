// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

// Package workflow walks an operator through the checks that must pass
// before an app is deleted from the origin platform.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/sharedco/decom/internal/config"
	"github.com/sharedco/decom/internal/metrics"
	"github.com/sharedco/decom/internal/platform"
	"github.com/sharedco/decom/internal/prompt"
	"github.com/sharedco/decom/internal/reach"
)

// ErrNotAuthenticated halts the session before any app is considered.
var ErrNotAuthenticated = errors.New("platform CLI is not authenticated")

// Prober decides whether a hostname is live.
type Prober interface {
	Check(ctx context.Context, target string) reach.Result
}

// Deps are the collaborators a Controller drives.
type Deps struct {
	Prompt    *prompt.Prompter
	Auth      platform.AuthChecker
	Destroyer platform.AppDestroyer
	Prober    Prober
	Metrics   *metrics.Recorder
	Log       logrus.FieldLogger
}

// Controller runs the gate sequence for one app at a time.
type Controller struct {
	names     config.MigrationConfig
	prompt    *prompt.Prompter
	auth      platform.AuthChecker
	destroyer platform.AppDestroyer
	prober    Prober
	metrics   *metrics.Recorder
	log       logrus.FieldLogger
}

func New(names config.MigrationConfig, deps Deps) *Controller {
	return &Controller{
		names:     names,
		prompt:    deps.Prompt,
		auth:      deps.Auth,
		destroyer: deps.Destroyer,
		prober:    deps.Prober,
		metrics:   deps.Metrics,
		log:       deps.Log,
	}
}

// Run checks platform authentication, then processes apps until the
// operator declines to continue. Only ErrNotAuthenticated and context
// cancellation are returned as errors.
func (c *Controller) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	c.prompt.Printf("=== %s App Deletion Safety Check ===\n", c.names.Origin)

	identity, err := c.auth.AuthCheck(ctx)
	if err != nil {
		c.metrics.AuthFailed()
		c.log.WithError(err).Error("platform authentication check failed")
		c.prompt.Printf("Error: Not authenticated with %s CLI.\n", c.names.Origin)
		c.prompt.Printf("Please log in with the %s CLI first.\n", c.names.Origin)
		return summary, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}
	summary.Identity = identity
	c.prompt.Printf("Authenticated as: %s\n", identity)
	c.log.WithField("identity", identity).Info("platform session authenticated")

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		res := c.ProcessApp(ctx)
		summary.add(res)

		if !c.prompt.Confirm("\nProcess another app?") {
			break
		}
		c.prompt.Println()
	}
	return summary, nil
}

// ProcessApp takes one app through the gates in order. Deletion is only
// attempted when every earlier gate passed.
func (c *Controller) ProcessApp(ctx context.Context) AppResult {
	var res AppResult

	question := fmt.Sprintf("Does the app have a custom domain (not using %s)?", c.names.DomainSuffix)
	if c.prompt.Confirm(question) {
		c.prompt.Println("Custom domain detected. Skipping deletion for this app.")
		return c.finish(res, OutcomeCustomDomain)
	}

	question = fmt.Sprintf("Has this app been migrated to %s and is now running there?", c.names.Destination)
	if !c.prompt.Confirm(question) {
		c.prompt.Println("Migration not confirmed. Skipping deletion for this app.")
		return c.finish(res, OutcomeNotMigrated)
	}

	question = fmt.Sprintf("Please provide the original %s URL of the app (e.g., example%s): ",
		c.names.DomainSuffix, c.names.DomainSuffix)
	target, err := c.prompt.Ask(question)
	res.Target = target
	if err != nil || target == "" {
		c.prompt.Println("No URL provided. Skipping deletion for this app.")
		return c.finish(res, OutcomeNoHostname)
	}

	// The probed host and the deleted app both come from this one parse.
	u, err := reach.ParseTarget(target)
	if err != nil {
		c.prompt.Printf("Cannot use %q: %v. Skipping deletion for this app.\n", target, err)
		return c.finish(res, OutcomeBadHostname)
	}
	res.App = appName(u.Hostname())

	c.prompt.Printf("\nChecking %s...\n", u.Host)
	check := c.prober.Check(ctx, u.String())
	WriteReport(c.prompt.Out(), check, c.names)
	if check.Reachable() {
		res.Verdict = check.Verdict
		c.metrics.Verdict(check.Verdict.String())
	}
	if !check.Available() {
		c.prompt.Println("App is not reachable. Skipping deletion for this app.")
		return c.finish(res, OutcomeUnreachable)
	}

	question = fmt.Sprintf("\nThe app appears to be running correctly on %s. Proceed with deleting %s app '%s'?",
		c.names.Destination, c.names.Origin, res.App)
	if !c.prompt.Confirm(question) {
		c.prompt.Println("Deletion cancelled by user.")
		return c.finish(res, OutcomeDeclined)
	}

	if err := c.destroyer.Destroy(ctx, res.App); err != nil {
		c.log.WithError(err).WithField("app", res.App).Error("app deletion failed")
		c.prompt.Printf("Error deleting %s app: %v\n", c.names.Origin, err)
		c.prompt.Printf("Failed to delete %s app.\n", c.names.Origin)
		return c.finish(res, OutcomeDeleteFailed)
	}

	c.prompt.Printf("Successfully deleted %s app: %s\n", c.names.Origin, res.App)
	c.prompt.Printf("%s app deletion completed successfully.\n", c.names.Origin)
	return c.finish(res, OutcomeDeleted)
}

func (c *Controller) finish(res AppResult, outcome Outcome) AppResult {
	res.Outcome = outcome
	c.metrics.Outcome(string(outcome))
	c.log.WithFields(logrus.Fields{
		"app":     res.App,
		"target":  res.Target,
		"outcome": string(outcome),
	}).Info("app processed")
	return res
}

// AppName derives the platform app name from the hostname the operator gave:
// everything before the first dot of its network location. Targets that
// ParseTarget rejects have no app name.
func AppName(target string) string {
	u, err := reach.ParseTarget(target)
	if err != nil {
		return ""
	}
	return appName(u.Hostname())
}

func appName(host string) string {
	if i := strings.Index(host, "."); i >= 0 {
		return host[:i]
	}
	return host
}
