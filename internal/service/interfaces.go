package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/importer"
)

// ErrInvalidParent is returned when a new page names a parent that does not
// exist or lives in a different site or group.
var ErrInvalidParent = errors.New("invalid parent page")

type SiteService interface {
	Create(ctx context.Context, s *domain.Site) error
	GetByCode(ctx context.Context, code string) (*domain.Site, error)
	List(ctx context.Context) ([]*domain.Site, error)
	ListCodes(ctx context.Context) ([]string, error)
	Update(ctx context.Context, code string, in UpdateSiteInput) (*domain.Site, error)
	Delete(ctx context.Context, code string) error
}

// GroupService scopes every operation to a site code. A group id that
// belongs to another site is reported as not found.
type GroupService interface {
	Create(ctx context.Context, siteCode string, g *domain.PageGroup) error
	Get(ctx context.Context, siteCode string, id int64) (*domain.PageGroup, error)
	List(ctx context.Context, siteCode string) ([]*domain.PageGroup, error)
	Update(ctx context.Context, siteCode string, id int64, in UpdateGroupInput) (*domain.PageGroup, error)
	Delete(ctx context.Context, siteCode string, id int64) error
}

type PageService interface {
	Create(ctx context.Context, siteCode string, in CreatePageInput) (*domain.Page, error)
	Get(ctx context.Context, siteCode string, id int64) (*domain.Page, error)
	ListBySite(ctx context.Context, siteCode string) ([]*domain.Page, error)
	ListByGroup(ctx context.Context, siteCode string, groupID int64) ([]*domain.Page, error)
	Update(ctx context.Context, siteCode string, id int64, in UpdatePageInput) (*domain.Page, error)
	Delete(ctx context.Context, siteCode string, id int64) error
}

type MenuService interface {
	SiteMenu(ctx context.Context, code string) (*domain.SiteResponse, error)
}

type ImportResult struct {
	Site       *domain.Site
	GroupCount int
	PageCount  int
}

// ImportService creates a whole site from an import file in one
// transaction. Nothing is written when any part fails.
type ImportService interface {
	ImportSite(ctx context.Context, filePath string) (*ImportResult, error)
	ImportSiteFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

// UpdateSiteInput carries the fields to change; nil leaves a field as is.
type UpdateSiteInput struct {
	Name   *string
	Domain *string
}

type UpdateGroupInput struct {
	Name        *string
	Description *string
}

// CreatePageInput describes a new page. Depth is derived from the parent.
// A nil MenuOrder places the page after its current siblings; a nil
// IsPublished publishes it.
type CreatePageInput struct {
	GroupID     *int64
	ParentID    *int64
	Title       string
	Slug        string
	Content     *string
	MenuOrder   *int
	IsPublished *bool
}

// UpdatePageInput carries the fields to change; nil leaves a field as is.
// Changing the group of a root page moves its whole subtree with it.
type UpdatePageInput struct {
	GroupID     *int64
	Title       *string
	Slug        *string
	Content     *string
	MenuOrder   *int
	IsPublished *bool
}
