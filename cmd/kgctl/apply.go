package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.kgctl.dev/kg/apply"
)

func newApplyCmd(flags *rootFlags) *cobra.Command {
	var (
		dryRun bool
		server string
	)

	cmd := &cobra.Command{
		Use:   "apply <file>",
		Short: "Apply a descriptor file to the storage backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if server != "" {
				return argError("--server is not implemented: only the in-process memstore backend is available")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return argError("read descriptor file: %w", err)
			}

			client, cat, err := connectedClient(cmd.Context(), flags)
			if err != nil {
				return err
			}
			defer client.Disconnect(cmd.Context())

			orch := apply.New(client, cat)

			summary, err := orch.Apply(cmd.Context(), data, dryRun)
			if err != nil {
				return storageExitError("apply descriptor", err)
			}

			if !summary.Valid {
				if err := writeValidateResultErrors(cmd.ErrOrStderr(), summary.Errors); err != nil {
					return internalError(err)
				}

				return &exitError{code: exitInvalid, err: errApplyValidationFail}
			}

			if summary.DryRun {
				fmt.Fprintln(cmd.OutOrStdout(), summary.DryRunPlan.Summary)

				for _, id := range summary.DryRunPlan.WouldCreate {
					fmt.Fprintf(cmd.OutOrStdout(), "would create: %s\n", id)
				}

				for _, id := range summary.DryRunPlan.WouldUpdate {
					fmt.Fprintf(cmd.OutOrStdout(), "would update: %s\n", id)
				}

				for _, issue := range summary.DryRunPlan.Issues {
					fmt.Fprintf(cmd.OutOrStdout(), "issue: %s\n", issue)
				}

				return nil
			}

			if summary.FailureErr != nil {
				return storageExitError(fmt.Sprintf("store entity %s", summary.FirstFailure), summary.FailureErr)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied: %d created, %d updated\n", summary.Created, summary.Updated)

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "preview the apply without writing")
	cmd.Flags().StringVar(&server, "server", "", "remote backend URL (unimplemented; memstore only)")

	return cmd
}
