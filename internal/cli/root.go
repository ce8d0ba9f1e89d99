// Package cli provides the command-line interface for database-studio.
package cli

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "database-studio",
		Short: "database-studio - multi-engine database workbench",
		Long: `database-studio is a workbench for MySQL, PostgreSQL, MongoDB, and Redis.

It serves an HTTP API for browsing schemas, building and running queries,
and managing saved queries, and can also render query-builder state to SQL
directly from the command line.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to config file (default ./config.yaml)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateCmd())
	return rootCmd
}
