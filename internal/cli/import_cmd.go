package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(rt *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create a site with its groups and pages from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.App(false)
			if err != nil {
				return err
			}

			result, err := a.Import.ImportSite(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported site %s [%s]: %d groups, %d pages\n",
				result.Site.Name, result.Site.Code, result.GroupCount, result.PageCount)
			return nil
		},
	}
}
