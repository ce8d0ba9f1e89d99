// Package main provides the database-studio CLI.
package main

import (
	"fmt"
	"os"

	"github.com/CharlieGitDB/database-studio/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
