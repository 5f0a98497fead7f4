package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pages/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before it is
// applied. Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateSite(&schema.Site)...)

	groupRefs := make(map[string]bool)
	errs = append(errs, validateGroups(schema.Groups, groupRefs)...)
	errs = append(errs, validatePages(schema.Pages, groupRefs)...)

	return errs
}

func validateSite(s *SiteImport) []error {
	var errs []error

	if s.Code == "" {
		errs = append(errs, fmt.Errorf("site.code is required"))
	} else if !domain.ValidSlug(s.Code) {
		errs = append(errs, fmt.Errorf("site.code: %q must be lowercase letters, digits and dashes", s.Code))
	}
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, fmt.Errorf("site.name is required"))
	}

	return errs
}

func validateGroups(groups []GroupImport, groupRefs map[string]bool) []error {
	var errs []error

	for i, g := range groups {
		prefix := fmt.Sprintf("groups[%d]", i)

		if g.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if groupRefs[g.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, g.Ref))
		} else {
			groupRefs[g.Ref] = true
		}

		if strings.TrimSpace(g.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
	}

	return errs
}

// pageKey places a page among its siblings for slug uniqueness.
type pageKey struct {
	group  string
	parent string
}

func validatePages(pages []PageImport, groupRefs map[string]bool) []error {
	var errs []error

	// ref -> group ref of every page seen so far
	pageGroups := make(map[string]string)
	siblingSlugs := make(map[pageKey]map[string]bool)

	for i, p := range pages {
		prefix := fmt.Sprintf("pages[%d]", i)
		group := deref(p.GroupRef)

		if p.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if _, dup := pageGroups[p.Ref]; dup {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, p.Ref))
		}

		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if p.Slug == "" {
			errs = append(errs, fmt.Errorf("%s.slug is required", prefix))
		} else if !domain.ValidSlug(p.Slug) {
			errs = append(errs, fmt.Errorf("%s.slug: %q must be lowercase letters, digits and dashes", prefix, p.Slug))
		}
		if p.Order != nil && *p.Order < 0 {
			errs = append(errs, fmt.Errorf("%s.order must not be negative", prefix))
		}

		if p.GroupRef != nil && !groupRefs[group] {
			errs = append(errs, fmt.Errorf("%s.group_ref: ref %q not found in groups", prefix, group))
		}

		parent := deref(p.ParentRef)
		if parent != "" {
			parentGroup, ok := pageGroups[parent]
			switch {
			case parent == p.Ref:
				errs = append(errs, fmt.Errorf("%s.parent_ref: page %q cannot be its own parent", prefix, p.Ref))
			case !ok:
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in pages list)", prefix, parent))
			case parentGroup != group:
				errs = append(errs, fmt.Errorf("%s.parent_ref: parent %q is in group %q, page is in group %q", prefix, parent, parentGroup, group))
			}
		}

		key := pageKey{group: group, parent: parent}
		if siblingSlugs[key] == nil {
			siblingSlugs[key] = make(map[string]bool)
		}
		if p.Slug != "" && siblingSlugs[key][p.Slug] {
			errs = append(errs, fmt.Errorf("%s.slug: duplicate slug %q among siblings", prefix, p.Slug))
		}
		siblingSlugs[key][p.Slug] = true

		if p.Ref != "" {
			if _, dup := pageGroups[p.Ref]; !dup {
				pageGroups[p.Ref] = group
			}
		}
	}

	return errs
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
