package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrStr(s string) *string { return &s }
func ptrInt(i int) *int       { return &i }

func validMinimalSchema() *ImportSchema {
	return &ImportSchema{
		Site: SiteImport{Code: "main", Name: "Main"},
		Groups: []GroupImport{
			{Ref: "header", Name: "Header"},
		},
		Pages: []PageImport{
			{Ref: "home", GroupRef: ptrStr("header"), Title: "Home", Slug: "home"},
			{Ref: "about", GroupRef: ptrStr("header"), Title: "About", Slug: "about"},
			{Ref: "team", GroupRef: ptrStr("header"), ParentRef: ptrStr("about"), Title: "Team", Slug: "team"},
		},
	}
}

// joined flattens errors for substring assertions.
func joined(errs []error) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func TestValidateImportSchema_ValidMinimal(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(validMinimalSchema()))
}

func TestValidateImportSchema_SiteOnly(t *testing.T) {
	assert.Empty(t, ValidateImportSchema(&ImportSchema{Site: SiteImport{Code: "empty", Name: "Empty"}}))
}

func TestValidateImportSchema_Site(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{Site: SiteImport{Code: "Main Site"}})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "site.code")
	assert.Contains(t, errs[1].Error(), "site.name is required")
}

func TestValidateImportSchema_Groups(t *testing.T) {
	schema := validMinimalSchema()
	schema.Groups = append(schema.Groups,
		GroupImport{Ref: "header", Name: "Again"},
		GroupImport{Ref: "", Name: ""},
	)

	msg := joined(ValidateImportSchema(schema))
	assert.Contains(t, msg, `groups[1].ref: duplicate ref "header"`)
	assert.Contains(t, msg, "groups[2].ref is required")
	assert.Contains(t, msg, "groups[2].name is required")
}

func TestValidateImportSchema_Pages(t *testing.T) {
	tests := []struct {
		name    string
		page    PageImport
		wantErr string
	}{
		{"missing ref", PageImport{Title: "X", Slug: "x"}, "pages[3].ref is required"},
		{"duplicate ref", PageImport{Ref: "home", Title: "X", Slug: "x"}, `duplicate ref "home"`},
		{"missing title", PageImport{Ref: "x", Slug: "x"}, "pages[3].title is required"},
		{"bad slug", PageImport{Ref: "x", Title: "X", Slug: "Not_A_Slug"}, "pages[3].slug"},
		{"negative order", PageImport{Ref: "x", Title: "X", Slug: "x", Order: ptrInt(-1)}, "order must not be negative"},
		{"unknown group", PageImport{Ref: "x", GroupRef: ptrStr("footer"), Title: "X", Slug: "x"}, `ref "footer" not found in groups`},
		{"forward parent", PageImport{Ref: "x", ParentRef: ptrStr("later"), Title: "X", Slug: "x"}, "must appear earlier"},
		{"self parent", PageImport{Ref: "x", ParentRef: ptrStr("x"), Title: "X", Slug: "x"}, "cannot be its own parent"},
		{"parent in other group", PageImport{Ref: "x", ParentRef: ptrStr("home"), Title: "X", Slug: "x"}, `parent "home" is in group "header"`},
		{"sibling slug clash", PageImport{Ref: "x", GroupRef: ptrStr("header"), Title: "X", Slug: "home"}, `duplicate slug "home"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := validMinimalSchema()
			schema.Pages = append(schema.Pages, tt.page)
			errs := ValidateImportSchema(schema)
			require.NotEmpty(t, errs)
			assert.Contains(t, joined(errs), tt.wantErr)
		})
	}
}

func TestValidateImportSchema_SameSlugUnderDifferentParents(t *testing.T) {
	schema := validMinimalSchema()
	schema.Pages = append(schema.Pages,
		PageImport{Ref: "home-team", GroupRef: ptrStr("header"), ParentRef: ptrStr("home"), Title: "Team", Slug: "team"},
	)
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_CollectsAllErrors(t *testing.T) {
	schema := &ImportSchema{
		Pages: []PageImport{{}, {}},
	}
	// Site code and name, then ref, title and slug for each page.
	assert.Len(t, ValidateImportSchema(schema), 8)
}
