package domain

import (
	"fmt"
	"strings"
	"time"
)

// Page is a content node. A page with a nil ParentID is a root of its
// group's menu; otherwise ParentID names a page in the same site and group.
type Page struct {
	ID          int64     `json:"page_id"`
	SiteID      int64     `json:"site_id"`
	GroupID     *int64    `json:"group_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	ParentID    *int64    `json:"parent_id"`
	Depth       int       `json:"depth"`
	MenuOrder   int       `json:"menu_order"`
	Content     *string   `json:"content"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsRoot reports whether the page has no parent.
func (p *Page) IsRoot() bool {
	return p.ParentID == nil
}

func (p *Page) Validate() error {
	if p.SiteID <= 0 {
		return fmt.Errorf("page site is required: %w", ErrValidation)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("page title is required: %w", ErrValidation)
	}
	if !slugPattern.MatchString(p.Slug) {
		return fmt.Errorf("page slug %q must be lowercase letters, digits and dashes: %w", p.Slug, ErrValidation)
	}
	if p.Depth < 0 {
		return fmt.Errorf("page depth must be non-negative, got %d: %w", p.Depth, ErrValidation)
	}
	if p.ParentID != nil && *p.ParentID == p.ID && p.ID != 0 {
		return fmt.Errorf("page %d cannot be its own parent: %w", p.ID, ErrValidation)
	}
	return nil
}
