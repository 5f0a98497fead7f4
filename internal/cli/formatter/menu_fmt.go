package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/ddddddO/gtree"
)

// FormatSiteMenu renders an assembled site menu, one tree per group.
func FormatSiteMenu(resp *domain.SiteResponse) string {
	var b strings.Builder
	b.WriteString(Header(resp.Name))
	b.WriteString("\n")
	b.WriteString(Dim("site " + resp.Code))
	b.WriteString("\n")

	if len(resp.PageGroups) == 0 {
		b.WriteString("\n" + Dim("No page groups.") + "\n")
		return b.String()
	}

	for _, g := range resp.PageGroups {
		var items []TreeItem
		appendTreeItems(&items, g.Menu, 1)

		b.WriteString("\n")
		b.WriteString(Bold(g.Name) + " " + Dim(pageCount(len(items))) + "\n")
		if len(items) == 0 {
			b.WriteString("  " + Dim("no pages") + "\n")
			continue
		}
		b.WriteString(RenderTree(items))
	}
	return b.String()
}

func appendTreeItems(items *[]TreeItem, nodes []*domain.PageTree, level int) {
	for i, n := range nodes {
		*items = append(*items, TreeItem{
			Title:     n.Title,
			ID:        n.ID,
			Level:     level,
			IsLast:    i == len(nodes)-1,
			Published: n.IsPublished,
			Detail:    "/" + n.Slug,
		})
		appendTreeItems(items, n.Children, level+1)
	}
}

func pageCount(n int) string {
	if n == 1 {
		return "(1 page)"
	}
	return fmt.Sprintf("(%d pages)", n)
}

// WriteSiteMenuPlain writes the menu as an unstyled tree: the site at the
// root, groups below it, pages below their group.
func WriteSiteMenuPlain(w io.Writer, resp *domain.SiteResponse) error {
	root := gtree.NewRoot(fmt.Sprintf("%s (%s)", resp.Name, resp.Code))
	for _, g := range resp.PageGroups {
		addPlainNodes(root.Add(g.Name), g.Menu)
	}
	return gtree.OutputFromRoot(w, root)
}

// Node text carries the page id; gtree merges siblings with equal text.
func addPlainNodes(parent *gtree.Node, nodes []*domain.PageTree) {
	for _, n := range nodes {
		addPlainNodes(parent.Add(fmt.Sprintf("%s #%d", n.Title, n.ID)), n.Children)
	}
}

func FormatSiteList(sites []*domain.Site, now time.Time) string {
	rows := make([][]string, 0, len(sites))
	for _, s := range sites {
		rows = append(rows, []string{
			StylePurple.Render(s.Code),
			s.Name,
			Optional(s.Domain),
			Dim(RelativeDateFrom(s.UpdatedAt, now)),
		})
	}
	return RenderTable([]string{"CODE", "NAME", "DOMAIN", "UPDATED"}, rows)
}

func FormatGroupList(groups []*domain.PageGroup) string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		desc := Optional(g.Description)
		if g.Description != nil {
			desc = Truncate(desc, 48)
		}
		rows = append(rows, []string{Dim(strconv.FormatInt(g.ID, 10)), g.Name, desc})
	}
	return RenderTable([]string{"ID", "NAME", "DESCRIPTION"}, rows)
}

func FormatPageList(pages []*domain.Page) string {
	rows := make([][]string, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, []string{
			Dim(strconv.FormatInt(p.ID, 10)),
			Truncate(p.Title, 40),
			StyleBlue.Render("/" + p.Slug),
			optionalID(p.GroupID),
			optionalID(p.ParentID),
			strconv.Itoa(p.Depth),
			strconv.Itoa(p.MenuOrder),
			PublishedPill(p.IsPublished),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "SLUG", "GROUP", "PARENT", "DEPTH", "ORDER", "STATUS"}, rows)
}

func optionalID(id *int64) string {
	if id == nil {
		return StyleDim.Render("--")
	}
	return strconv.FormatInt(*id, 10)
}
