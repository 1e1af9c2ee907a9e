package main

import (
	"os"

	"github.com/spf13/cobra"

	"go.kgctl.dev/kg/validate"
)

func newValidateCmd(flags *rootFlags) *cobra.Command {
	var (
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a descriptor file against the schema catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := parseOutputFormat(format)
			if err != nil {
				return err
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

			var opts []validate.Option
			if strict {
				opts = append(opts, validate.WithStrict())
			}

			pipeline := validate.NewPipeline(cat, opts...)
			result := pipeline.Validate(cmd.Context(), data, client)

			if err := writeValidateResult(cmd.OutOrStdout(), result, out); err != nil {
				return internalError(err)
			}

			if !result.IsValid {
				return &exitError{code: exitInvalid, err: errInvalidDescriptor}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, compact, json, yaml")
	cmd.Flags().BoolVar(&strict, "strict", false, "promote warnings to errors")

	return cmd
}
