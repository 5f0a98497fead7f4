package formatter

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences for stripping before golden comparison.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes ANSI escape codes from a string so golden files
// are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// goldenTest compares got against a golden file in testdata/<name>.golden.
// Set GOLDEN_UPDATE=1 to regenerate golden files.
func goldenTest(t *testing.T, name, got string) {
	t.Helper()

	goldenPath := filepath.Join("testdata", name+".golden")
	stripped := stripANSI(got)

	if os.Getenv("GOLDEN_UPDATE") == "1" {
		require.NoError(t, os.MkdirAll("testdata", 0755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(stripped), 0644))
		t.Logf("updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if os.IsNotExist(err) {
		t.Fatalf("golden file %s does not exist; run with GOLDEN_UPDATE=1 to create it", goldenPath)
	}
	require.NoError(t, err)

	assert.Equal(t, string(expected), stripped,
		"output does not match golden file %s; run with GOLDEN_UPDATE=1 to update", goldenPath)
}

func treeNode(id int64, title, slug string, published bool, children ...*domain.PageTree) *domain.PageTree {
	if children == nil {
		children = []*domain.PageTree{}
	}
	return &domain.PageTree{
		Page:     &domain.Page{ID: id, Title: title, Slug: slug, IsPublished: published},
		Children: children,
	}
}

func sampleMenu() *domain.SiteResponse {
	return &domain.SiteResponse{
		Site: domain.Site{ID: 1, Code: "main", Name: "Main"},
		PageGroups: []domain.GroupMenu{
			{PageGroup: domain.PageGroup{ID: 2, Name: "Footer"}, Menu: []*domain.PageTree{}},
			{
				PageGroup: domain.PageGroup{ID: 1, Name: "Header"},
				Menu: []*domain.PageTree{
					treeNode(1, "Home", "home", true),
					treeNode(2, "About", "about", true,
						treeNode(3, "Team", "team", false),
					),
					treeNode(4, "Contact", "contact", true),
				},
			},
		},
	}
}

func TestFormatSiteMenu_Golden(t *testing.T) {
	goldenTest(t, "site_menu", FormatSiteMenu(sampleMenu()))
}

func TestFormatSiteMenu_Golden_NoGroups(t *testing.T) {
	resp := &domain.SiteResponse{Site: domain.Site{Code: "empty", Name: "Empty"}, PageGroups: []domain.GroupMenu{}}
	goldenTest(t, "site_menu_empty", FormatSiteMenu(resp))
}

func TestRenderTree_BlankColumnAfterLastBranch(t *testing.T) {
	got := stripANSI(RenderTree([]TreeItem{
		{Title: "A", Level: 1, IsLast: true, Published: true},
		{Title: "B", Level: 2, IsLast: true, Published: true},
		{Title: "C", Level: 3, IsLast: true, Published: true},
	}))
	assert.Equal(t, "└─ A\n   └─ B\n      └─ C\n", got)
}

func TestWriteSiteMenuPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSiteMenuPlain(&buf, sampleMenu()))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Main (main)", lines[0])
	assert.Contains(t, lines[1], "Footer")
	assert.Contains(t, lines[2], "Header")
	assert.Contains(t, lines[3], "Home #1")
	assert.Contains(t, lines[4], "About #2")
	assert.Contains(t, lines[5], "Team #3")
	assert.Contains(t, lines[6], "Contact #4")
	// Team sits one level deeper than About.
	assert.Greater(t, strings.Index(lines[5], "Team"), strings.Index(lines[4], "About"))
}

func TestFormatSiteList(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dom := "example.com"
	out := stripANSI(FormatSiteList([]*domain.Site{
		{Code: "main", Name: "Main", Domain: &dom, UpdatedAt: now},
		{Code: "docs", Name: "Docs", UpdatedAt: now.Add(-72 * time.Hour)},
	}, now))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	assert.Contains(t, lines[2], "example.com")
	assert.Contains(t, lines[2], "today")
	assert.Contains(t, lines[3], "--")
	assert.Contains(t, lines[3], "3d ago")
}

func TestFormatPageList(t *testing.T) {
	gid := int64(7)
	out := stripANSI(FormatPageList([]*domain.Page{
		{ID: 1, Title: "Home", Slug: "home", GroupID: &gid, IsPublished: true},
		{ID: 2, Title: "Draft", Slug: "draft", ParentID: func() *int64 { v := int64(1); return &v }(), Depth: 1},
	}))

	assert.Contains(t, out, "/home")
	assert.Contains(t, out, "● live")
	assert.Contains(t, out, "○ draft")
}
