package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"qara/internal/platform/config"
)

// Build metadata, set with -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "none"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "qara",
		Short:         "Compliance audit analytics service",
		Long:          "qara serves KPI, scoring, radar, trend and drilldown analytics over compliance audits.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return fmt.Errorf("load env files: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qara %s (%s)\n", version, commit)
		},
	}
}
