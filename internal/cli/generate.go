package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/CharlieGitDB/database-studio/querybuilder"
)

func newGenerateCmd() *cobra.Command {
	var (
		statePath string
		dialect   string
		skipCheck bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render query-builder state JSON to SQL",
		Long: `Reads query-builder state as JSON from a file (or stdin with "-") and
prints the SQL it renders to for the chosen dialect.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := querybuilder.ParseDialect(dialect)
			if err != nil {
				return err
			}

			var data []byte
			if statePath == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(statePath)
			}
			if err != nil {
				return fmt.Errorf("failed to read state: %w", err)
			}

			var state querybuilder.State
			if err := json.Unmarshal(data, &state); err != nil {
				return fmt.Errorf("failed to decode state: %w", err)
			}

			if !skipCheck {
				result := querybuilder.Validate(&state)
				if !result.Valid {
					for _, msg := range result.Errors {
						fmt.Fprintln(cmd.ErrOrStderr(), "invalid state:", msg)
					}
					return fmt.Errorf("state failed validation with %d error(s)", len(result.Errors))
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), querybuilder.GenerateSQL(&state, d))
			return nil
		},
	}

	cmd.Flags().StringVarP(&statePath, "state", "s", "-", `path to state JSON ("-" for stdin)`)
	cmd.Flags().StringVarP(&dialect, "dialect", "d", "postgresql", "SQL dialect (mysql or postgresql)")
	cmd.Flags().BoolVar(&skipCheck, "no-validate", false, "render even when the state fails validation")
	return cmd
}
