package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imposter-project/jsonmock/internal/adapter"
	"github.com/imposter-project/jsonmock/internal/adapter/awslambda"
	"github.com/imposter-project/jsonmock/internal/adapter/httpserver"
	"github.com/imposter-project/jsonmock/internal/version"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jsonmock [db-file]",
		Short: "Mock REST API server",
		Long: `Serves a REST API over the collections in a JSON or YAML database file.
Every request is delayed, and creating an item whose technology is
"AnyOther" fails with a simulated server error.

The port is read from the PORT environment variable (default 3000).`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var dbFileArg string
			if len(args) > 0 {
				dbFileArg = args[0]
			}
			return newAdapter(adapter.DetectMode(), dbFileArg).Start()
		},
	}
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newAdapter(mode adapter.Mode, dbFileArg string) adapter.Adapter {
	logger.Debugf("runtime mode: %s", mode)
	if mode == adapter.ModeLambda {
		return awslambda.NewAdapter()
	}
	return httpserver.NewAdapter(dbFileArg)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Version)
		},
	}
}
