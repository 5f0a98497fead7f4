package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pages/internal/cli/formatter"
	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/service"
	"github.com/spf13/cobra"
)

func newSiteCmd(rt *cmdEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage sites",
	}

	cmd.AddCommand(
		newSiteAddCmd(rt),
		newSiteListCmd(rt),
		newSiteUpdateCmd(rt),
		newSiteRemoveCmd(rt),
	)

	return cmd
}

func newSiteAddCmd(rt *cmdEnv) *cobra.Command {
	var code, name, domainName string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new site",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.App(false)
			if err != nil {
				return err
			}

			s := &domain.Site{Code: code, Name: name}
			if domainName != "" {
				s.Domain = &domainName
			}
			if err := a.Sites.Create(cmd.Context(), s); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created site %s [%s]\n", s.Name, s.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Site code (lowercase letters, digits and dashes, e.g. main-site)")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&domainName, "domain", "", "Public domain")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSiteListCmd(rt *cmdEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.App(false)
			if err != nil {
				return err
			}
			sites, err := a.Sites.List(cmd.Context())
			if err != nil {
				return err
			}

			if len(sites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sites found.")
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSiteList(sites, time.Now()))
			return nil
		},
	}
}

func newSiteUpdateCmd(rt *cmdEnv) *cobra.Command {
	var name, domainName string

	cmd := &cobra.Command{
		Use:   "update CODE",
		Short: "Rename a site or change its domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.App(false)
			if err != nil {
				return err
			}

			var in service.UpdateSiteInput
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("domain") {
				in.Domain = &domainName
			}

			s, err := a.Sites.Update(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated site %s [%s]\n", s.Name, s.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&domainName, "domain", "", "New public domain")

	return cmd
}

func newSiteRemoveCmd(rt *cmdEnv) *cobra.Command {
	return withYesFlag(&cobra.Command{
		Use:   "remove CODE",
		Short: "Delete a site with all its groups and pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := rt.confirmDestructive(cmd, fmt.Sprintf("Delete site %s with all its groups and pages?", args[0]))
			if err != nil || !ok {
				return err
			}
			a, err := rt.App(false)
			if err != nil {
				return err
			}
			if err := a.Sites.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed site %s\n", args[0])
			return nil
		},
	})
}
