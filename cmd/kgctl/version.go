package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.kgctl.dev/kg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "kgctl %s (%s, built %s by %s, %s %s/%s)\n",
				orDefault(version.Version, "dev"),
				version.Revision,
				orDefault(version.BuildDate, "unknown"),
				orDefault(version.BuildUser, "unknown"),
				version.GoVersion, version.GoOS, version.GoArch,
			)

			return nil
		},
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}

	return s
}
