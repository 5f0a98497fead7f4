package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/pages/internal/cli/formatter"
	"github.com/alexanderramin/pages/internal/domain"
	"github.com/spf13/cobra"
)

func newGroupCmd(rt *cmdEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage page groups",
	}

	cmd.AddCommand(
		newGroupAddCmd(rt),
		newGroupListCmd(rt),
		newGroupRemoveCmd(rt),
	)

	return cmd
}

func newGroupAddCmd(rt *cmdEnv) *cobra.Command {
	var site, name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a page group in a site",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.App(false)
			if err != nil {
				return err
			}

			g := &domain.PageGroup{Name: name}
			if description != "" {
				g.Description = &description
			}
			if err := a.Groups.Create(cmd.Context(), site, g); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created group %s (#%d) in %s\n", g.Name, g.ID, site)
			return nil
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "Site code")
	cmd.Flags().StringVar(&name, "name", "", "Group name")
	cmd.Flags().StringVar(&description, "description", "", "Group description")
	_ = cmd.MarkFlagRequired("site")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGroupListCmd(rt *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list SITE",
		Short: "List a site's page groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.App(false)
			if err != nil {
				return err
			}
			groups, err := a.Groups.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No groups found.")
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGroupList(groups))
			return nil
		},
	}
}

func newGroupRemoveCmd(rt *cmdEnv) *cobra.Command {
	return withYesFlag(&cobra.Command{
		Use:   "remove SITE ID",
		Short: "Delete a group; its pages become ungrouped",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			ok, err := rt.confirmDestructive(cmd, fmt.Sprintf("Delete group #%d from %s? Its pages become ungrouped.", id, args[0]))
			if err != nil || !ok {
				return err
			}
			a, err := rt.App(false)
			if err != nil {
				return err
			}
			if err := a.Groups.Delete(cmd.Context(), args[0], id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed group #%d from %s\n", id, args[0])
			return nil
		},
	})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}
