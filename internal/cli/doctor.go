// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDoctorCmd(env Env, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that decom can run on this machine",
		Long: `Doctor checks the tools decom depends on.

Checks performed:
- Platform CLI is installed
- Ping utility is installed
- Platform CLI is logged in`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := setup(env, opts)
			if err != nil {
				return err
			}
			defer svc.close()

			cfg := svc.cfg
			failed := 0

			fmt.Fprintf(env.Stdout, "Checking %s CLI (%s)... ", cfg.Migration.Origin, cfg.Platform.Binary)
			path, platformErr := env.LookPath(cfg.Platform.Binary)
			if platformErr != nil {
				fmt.Fprintf(env.Stdout, "❌ %v\n", platformErr)
				failed++
			} else {
				fmt.Fprintf(env.Stdout, "✅ %s\n", path)
			}

			fmt.Fprintf(env.Stdout, "Checking ping (%s)... ", cfg.Probe.PingBinary)
			if path, err := env.LookPath(cfg.Probe.PingBinary); err != nil {
				fmt.Fprintf(env.Stdout, "❌ %v\n", err)
				failed++
			} else {
				fmt.Fprintf(env.Stdout, "✅ %s\n", path)
			}

			fmt.Fprintf(env.Stdout, "Checking %s login... ", cfg.Migration.Origin)
			if platformErr != nil {
				fmt.Fprintf(env.Stdout, "skipped, %s CLI not found\n", cfg.Migration.Origin)
			} else if who, err := svc.heroku.AuthCheck(cmd.Context()); err != nil {
				fmt.Fprintf(env.Stdout, "❌ %v\n", err)
				failed++
			} else {
				fmt.Fprintf(env.Stdout, "✅ %s\n", who)
			}

			if failed > 0 {
				fmt.Fprintf(env.Stdout, "\n%d check(s) failed\n", failed)
				return &ExitError{Code: 1, Err: fmt.Errorf("%d doctor check(s) failed", failed)}
			}
			fmt.Fprintln(env.Stdout, "\n✅ All checks passed")
			return nil
		},
	}
}
