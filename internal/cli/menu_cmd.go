package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/pages/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newMenuCmd(rt *cmdEnv) *cobra.Command {
	var asJSON, plain bool

	cmd := &cobra.Command{
		Use:   "menu SITE",
		Short: "Print a site's assembled menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON && plain {
				return errors.New("--json and --plain are mutually exclusive")
			}
			a, err := rt.App(false)
			if err != nil {
				return err
			}

			resp, err := a.Menu.SiteMenu(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			case plain:
				return formatter.WriteSiteMenuPlain(out, resp)
			default:
				fmt.Fprint(out, formatter.FormatSiteMenu(resp))
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the menu as JSON, as served by the API")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print an unstyled tree")

	return cmd
}
