package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(rt *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the app applies migrations.
			if _, err := rt.App(false); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database ready at %s\n", rt.cfg.Database.Path)
			return nil
		},
	}
}
