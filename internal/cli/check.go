// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sharedco/decom/internal/reach"
	"github.com/sharedco/decom/internal/workflow"
)

func newCheckCmd(env Env, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <hostname>",
		Short: "Check whether a migrated app is reachable, without deleting anything",
		Long: `Run the same reachability checks the deletion workflow uses: a ping probe
(whose output hints at which provider's DNS serves the hostname) followed by an
HTTP request.

Exits non-zero when the app is not available.

Example:
  decom check myapp.botics.co
  decom check https://myapp.botics.co/health`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := setup(env, opts)
			if err != nil {
				return err
			}
			defer svc.close()

			u, err := reach.ParseTarget(args[0])
			if err != nil {
				return &ExitError{Code: 1, Err: err}
			}
			fmt.Fprintf(env.Stdout, "Checking %s...\n", u.Host)

			res := svc.checker.Check(cmd.Context(), u.String())
			workflow.WriteReport(env.Stdout, res, svc.cfg.Migration)

			if !res.Available() {
				fmt.Fprintln(env.Stdout, "\nAvailable: no")
				return &ExitError{Code: 1, Err: fmt.Errorf("%s is not available", res.Host)}
			}
			fmt.Fprintln(env.Stdout, "\nAvailable: yes")
			return nil
		},
	}
}
