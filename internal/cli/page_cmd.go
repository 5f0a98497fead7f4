package cli

import (
	"fmt"

	"github.com/alexanderramin/pages/internal/cli/formatter"
	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/service"
	"github.com/spf13/cobra"
)

func newPageCmd(rt *cmdEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage pages",
	}

	cmd.AddCommand(
		newPageAddCmd(rt),
		newPageListCmd(rt),
		newPageUpdateCmd(rt),
		newPageRemoveCmd(rt),
	)

	return cmd
}

func newPageAddCmd(rt *cmdEnv) *cobra.Command {
	var (
		site, title, slug, content string
		group, parent              int64
		order                      int
		draft                      bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a page, optionally under a parent",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.App(false)
			if err != nil {
				return err
			}

			in := service.CreatePageInput{Title: title, Slug: slug}
			if group > 0 {
				in.GroupID = &group
			}
			if parent > 0 {
				in.ParentID = &parent
			}
			if content != "" {
				in.Content = &content
			}
			if cmd.Flags().Changed("order") {
				in.MenuOrder = &order
			}
			if draft {
				published := false
				in.IsPublished = &published
			}

			p, err := a.Pages.Create(cmd.Context(), site, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created page %s (#%d) at depth %d, order %d\n", p.Title, p.ID, p.Depth, p.MenuOrder)
			return nil
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "Site code")
	cmd.Flags().StringVar(&title, "title", "", "Page title")
	cmd.Flags().StringVar(&slug, "slug", "", "URL slug (lowercase letters, digits and dashes)")
	cmd.Flags().StringVar(&content, "content", "", "Page body")
	cmd.Flags().Int64Var(&group, "group", 0, "Group ID")
	cmd.Flags().Int64Var(&parent, "parent", 0, "Parent page ID (0 for a root page)")
	cmd.Flags().IntVar(&order, "order", 0, "Menu order among siblings (default: after the last sibling)")
	cmd.Flags().BoolVar(&draft, "draft", false, "Create unpublished")
	_ = cmd.MarkFlagRequired("site")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("slug")

	return cmd
}

func newPageListCmd(rt *cmdEnv) *cobra.Command {
	var group int64

	cmd := &cobra.Command{
		Use:   "list SITE",
		Short: "List a site's pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.App(false)
			if err != nil {
				return err
			}

			var pages []*domain.Page
			if group > 0 {
				pages, err = a.Pages.ListByGroup(cmd.Context(), args[0], group)
			} else {
				pages, err = a.Pages.ListBySite(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}

			if len(pages) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pages found.")
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPageList(pages))
			return nil
		},
	}

	cmd.Flags().Int64Var(&group, "group", 0, "Only pages in this group")
	return cmd
}

func newPageUpdateCmd(rt *cmdEnv) *cobra.Command {
	var (
		title, slug, content string
		group                int64
		order                int
		published            bool
	)

	cmd := &cobra.Command{
		Use:   "update SITE ID",
		Short: "Change a page's fields",
		Long:  "Change a page's fields. Moving a root page to another group moves its whole subtree.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			a, err := rt.App(false)
			if err != nil {
				return err
			}

			var in service.UpdatePageInput
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = &title
			}
			if flags.Changed("slug") {
				in.Slug = &slug
			}
			if flags.Changed("content") {
				in.Content = &content
			}
			if flags.Changed("group") {
				in.GroupID = &group
			}
			if flags.Changed("order") {
				in.MenuOrder = &order
			}
			if flags.Changed("published") {
				in.IsPublished = &published
			}

			p, err := a.Pages.Update(cmd.Context(), args[0], id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated page %s (#%d)\n", p.Title, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Page title")
	cmd.Flags().StringVar(&slug, "slug", "", "URL slug")
	cmd.Flags().StringVar(&content, "content", "", "Page body")
	cmd.Flags().Int64Var(&group, "group", 0, "Move a root page (and its subtree) to this group")
	cmd.Flags().IntVar(&order, "order", 0, "Menu order among siblings")
	cmd.Flags().BoolVar(&published, "published", true, "Publish (--published=false to unpublish)")

	return cmd
}

func newPageRemoveCmd(rt *cmdEnv) *cobra.Command {
	return withYesFlag(&cobra.Command{
		Use:   "remove SITE ID",
		Short: "Delete a page and its descendants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			ok, err := rt.confirmDestructive(cmd, fmt.Sprintf("Delete page #%d from %s with all its descendants?", id, args[0]))
			if err != nil || !ok {
				return err
			}
			a, err := rt.App(false)
			if err != nil {
				return err
			}
			if err := a.Pages.Delete(cmd.Context(), args[0], id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed page #%d from %s\n", id, args[0])
			return nil
		},
	})
}
