// Package main provides the kgctl CLI: validate descriptor files against a
// dynamic schema catalog, apply them to a graph storage backend, and
// export the catalog as a JSON Schema document.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.kgctl.dev/kg/log"
	"go.kgctl.dev/kg/profiler"
	"go.kgctl.dev/kg/schema"
	"go.kgctl.dev/kg/storage"
	"go.kgctl.dev/kg/storage/memstore"
)

// rootFlags are the flags shared by every subcommand: where the schema
// catalog lives, how the backend is configured, and the ambient logging
// and profiling knobs the teacher's CLIs always carry.
type rootFlags struct {
	schemaDir string
	logCfg    *log.Config
	storeCfg  *storage.Config
	prof      profiler.Profiler
}

func main() {
	flags := &rootFlags{
		logCfg:   log.NewConfig(),
		storeCfg: storage.NewConfig(),
		prof:     profiler.New(),
	}

	rootCmd := &cobra.Command{
		Use:           "kgctl",
		Short:         "Validate and apply knowledge graph descriptors",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.schemaDir, "schema-dir", "schemas", "directory containing entity and base schema YAML files")
	flags.logCfg.RegisterFlags(rootCmd.PersistentFlags())
	flags.storeCfg.RegisterFlags(rootCmd.PersistentFlags())
	flags.prof.RegisterFlags(rootCmd.PersistentFlags())

	if err := flags.logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register log completions: %v\n", err)
	}

	if err := flags.storeCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register storage completions: %v\n", err)
	}

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		handler, err := flags.logCfg.NewHandler(os.Stderr)
		if err != nil {
			return argError("invalid logging flags: %w", err)
		}

		slog.SetDefault(slog.New(handler))

		if err := flags.prof.Start(); err != nil {
			return internalError(fmt.Errorf("start profiler: %w", err))
		}

		return nil
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return flags.prof.Stop()
	}

	rootCmd.AddCommand(
		newValidateCmd(flags),
		newApplyCmd(flags),
		newSchemaCmd(flags),
		newVersionCmd(),
	)

	runMain(rootCmd.Execute)
}

// connectedClient builds and connects the configured storage backend,
// loading the schema catalog from flags.schemaDir. Only memstore is wired
// today; storeCfg.BackendType is validated so a future native backend
// slots in without changing the CLI contract (spec.md §6's --server is a
// stub until a remote backend exists, per the open question recorded in
// DESIGN.md).
func connectedClient(ctx context.Context, flags *rootFlags) (storage.Client, *schema.Catalog, error) {
	if err := flags.storeCfg.Validate(); err != nil {
		return nil, nil, argError("invalid storage configuration: %w", err)
	}

	if flags.storeCfg.BackendType != "memstore" {
		return nil, nil, argError("unsupported --storage-backend %q: only memstore is available", flags.storeCfg.BackendType)
	}

	client := memstore.New()

	if err := client.Connect(ctx); err != nil {
		return nil, nil, storageExitError("connect storage backend", err)
	}

	cat, err := client.LoadSchemas(ctx, flags.schemaDir)
	if err != nil {
		client.Disconnect(ctx)

		return nil, nil, storageExitError("load schema catalog", err)
	}

	return client, cat, nil
}
