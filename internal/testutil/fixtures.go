package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/pages/internal/domain"
)

var testSlugCounter atomic.Int64

func nextSlug(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, testSlugCounter.Add(1))
}

// Site options
type SiteOption func(*domain.Site)

func WithDomain(d string) SiteOption {
	return func(s *domain.Site) {
		s.Domain = &d
	}
}

func WithSiteName(name string) SiteOption {
	return func(s *domain.Site) {
		s.Name = name
	}
}

func NewTestSite(code string, opts ...SiteOption) *domain.Site {
	now := time.Now().UTC()
	s := &domain.Site{
		Code:      code,
		Name:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Group options
type GroupOption func(*domain.PageGroup)

func WithDescription(d string) GroupOption {
	return func(g *domain.PageGroup) {
		g.Description = &d
	}
}

func NewTestGroup(siteID int64, name string, opts ...GroupOption) *domain.PageGroup {
	now := time.Now().UTC()
	g := &domain.PageGroup{
		SiteID:    siteID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Page options
type PageOption func(*domain.Page)

func WithGroup(id int64) PageOption {
	return func(p *domain.Page) {
		p.GroupID = &id
	}
}

// WithParent sets the parent and the depth that goes with it.
func WithParent(parent *domain.Page) PageOption {
	return func(p *domain.Page) {
		id := parent.ID
		p.ParentID = &id
		p.Depth = parent.Depth + 1
	}
}

func WithMenuOrder(n int) PageOption {
	return func(p *domain.Page) {
		p.MenuOrder = n
	}
}

func WithSlug(slug string) PageOption {
	return func(p *domain.Page) {
		p.Slug = slug
	}
}

func WithContent(c string) PageOption {
	return func(p *domain.Page) {
		p.Content = &c
	}
}

func WithUnpublished() PageOption {
	return func(p *domain.Page) {
		p.IsPublished = false
	}
}

func NewTestPage(siteID int64, title string, opts ...PageOption) *domain.Page {
	now := time.Now().UTC()
	p := &domain.Page{
		SiteID:      siteID,
		Title:       title,
		Slug:        nextSlug("page"),
		IsPublished: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
