// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

// Package platform drives the origin platform's CLI.
package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sharedco/decom/internal/command"
)

// AuthChecker reports who the platform CLI is logged in as.
type AuthChecker interface {
	AuthCheck(ctx context.Context) (string, error)
}

// AppDestroyer irreversibly deletes an app on the platform.
type AppDestroyer interface {
	Destroy(ctx context.Context, app string) error
}

// ErrEmptyAppName guards against running destroy without a target.
var ErrEmptyAppName = errors.New("app name is empty")

// HerokuCLI implements both capabilities on top of the heroku binary.
type HerokuCLI struct {
	runner command.Runner
	binary string
}

func NewHerokuCLI(runner command.Runner, binary string) *HerokuCLI {
	return &HerokuCLI{
		runner: runner,
		binary: binary,
	}
}

// AuthCheck runs `heroku auth:whoami` and returns the logged-in identity.
func (h *HerokuCLI) AuthCheck(ctx context.Context) (string, error) {
	res, err := h.runner.Run(ctx, h.binary, "auth:whoami")
	if err != nil {
		return "", fmt.Errorf("not authenticated with %s: %w", h.binary, err)
	}
	return strings.TrimSpace(res.Stdout), nil
}

// Destroy runs `heroku apps:destroy` naming the app both as target and as the
// confirmation value, so the CLI refuses if the two ever disagree.
func (h *HerokuCLI) Destroy(ctx context.Context, app string) error {
	if strings.TrimSpace(app) == "" {
		return ErrEmptyAppName
	}

	if _, err := h.runner.Run(ctx, h.binary, destroyArgs(app)...); err != nil {
		return fmt.Errorf("destroy app %s: %w", app, err)
	}
	return nil
}

func destroyArgs(app string) []string {
	return []string{"apps:destroy", "--app", app, "--confirm", app}
}
