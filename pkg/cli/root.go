// Package cli implements the easymock command line interface.
package cli

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "easymock",
	Short:         "Standalone HTTP mock server for integration testing",
	Long:          "easymock runs the easy-server-mock engine as a standalone process: a real HTTP listener serving canned responses and recording every inbound request.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
