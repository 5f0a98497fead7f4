package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "today"},
		{"yesterday", now.Add(-24 * time.Hour), "yesterday"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
		{"two years past", now.AddDate(-2, 0, 0), "Feb 7, 2024"},
		{"future", now.Add(3 * 24 * time.Hour), "Feb 10, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
	assert.Equal(t, "unchanged", Truncate("unchanged", 0))
	assert.Equal(t, "héll…", Truncate("héllo wörld", 5))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	DisableColor()
	got := RenderTable([]string{"CODE", "NAME"}, [][]string{
		{"main", "Main site"},
		{"docs-long", "Docs"},
		{"short"},
	})
	want := "" +
		"CODE       NAME\n" +
		"─────────  ─────────\n" +
		"main       Main site\n" +
		"docs-long  Docs\n" +
		"short      \n"
	assert.Equal(t, want, stripANSI(got))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}
