package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go.kgctl.dev/kg/export"
	"go.kgctl.dev/kg/schema/loader"
)

func newSchemaCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Schema catalog utilities",
	}

	cmd.AddCommand(newSchemaExportCmd(flags))

	return cmd
}

func newSchemaExportCmd(flags *rootFlags) *cobra.Command {
	var (
		format       string
		output       string
		editorConfig string
		globs        []string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the schema catalog as a JSON Schema document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "json-schema" {
				return argError("unsupported --format %q: only json-schema is available", format)
			}

			if output == "" {
				return argError("--output is required")
			}

			cat, err := loader.New().Load(flags.schemaDir)
			if err != nil {
				return storageExitError("load schema catalog", err)
			}

			doc := export.BuildCatalogSchema(cat)

			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return internalError(fmt.Errorf("marshal json schema: %w", err))
			}

			out = append(out, '\n')

			if err := os.WriteFile(output, out, 0o644); err != nil {
				return internalError(fmt.Errorf("write %s: %w", output, err))
			}

			if editorConfig != "" {
				if len(globs) == 0 {
					globs = []string{"**/*.kg.yaml"}
				}

				if err := export.UpdateEditorConfig(editorConfig, output, globs); err != nil {
					return internalError(fmt.Errorf("update editor config: %w", err))
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json-schema", "export format: json-schema")
	cmd.Flags().StringVar(&output, "output", "", "output file path (required)")
	cmd.Flags().StringVar(&editorConfig, "editor-config", "", "editor settings file to associate the schema with descriptor globs")
	cmd.Flags().StringSliceVar(&globs, "glob", nil, "glob patterns the exported schema validates (default **/*.kg.yaml)")

	return cmd
}
