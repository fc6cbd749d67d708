// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/sharedco/decom/internal/metrics"
	"github.com/sharedco/decom/internal/prompt"
	"github.com/sharedco/decom/internal/session"
	"github.com/sharedco/decom/internal/workflow"
)

func runSweep(ctx context.Context, env Env, opts *rootOptions) error {
	svc, err := setup(env, opts)
	if err != nil {
		return err
	}
	defer svc.close()

	lock, err := session.Acquire(svc.cfg.LockPath)
	if err != nil {
		return err
	}
	defer lock.Release()

	if f, ok := env.Stdin.(*os.File); ok && !prompt.IsInteractive(f) {
		svc.log.Warn("stdin is not a terminal, reading answers from the input stream")
	}

	rec := metrics.NewRecorder()
	p := prompt.New(env.Stdin, env.Stdout)
	ctrl := workflow.New(svc.cfg.Migration, workflow.Deps{
		Prompt:    p,
		Auth:      svc.heroku,
		Destroyer: svc.heroku,
		Prober:    svc.checker,
		Metrics:   rec,
		Log:       svc.log,
	})

	svc.log.Info("session started")
	summary, runErr := ctrl.Run(ctx)

	if err := rec.WriteFile(svc.cfg.MetricsFile); err != nil {
		svc.log.WithError(err).Warn("failed to write metrics file")
	}

	if runErr != nil {
		if errors.Is(runErr, workflow.ErrNotAuthenticated) {
			return &ExitError{Code: 1, Err: runErr}
		}
		return runErr
	}

	printSummary(p, summary)
	svc.log.WithField("outcomes", summary.String()).Info("session finished")
	return nil
}

func printSummary(p *prompt.Prompter, s workflow.Summary) {
	p.Printf("\nSession summary: %d app(s) processed (%s)\n", s.Processed(), s.String())
	if len(s.Deleted) > 0 {
		p.Printf("Deleted: %s\n", strings.Join(s.Deleted, ", "))
	}
}
