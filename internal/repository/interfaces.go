package repository

import (
	"context"

	"github.com/alexanderramin/pages/internal/domain"
)

type SiteRepo interface {
	Create(ctx context.Context, s *domain.Site) error
	GetByID(ctx context.Context, id int64) (*domain.Site, error)
	GetByCode(ctx context.Context, code string) (*domain.Site, error)
	List(ctx context.Context) ([]*domain.Site, error)
	ListCodes(ctx context.Context) ([]string, error)
	Update(ctx context.Context, s *domain.Site) error
	Delete(ctx context.Context, id int64) error
}

type GroupRepo interface {
	Create(ctx context.Context, g *domain.PageGroup) error
	GetByID(ctx context.Context, id int64) (*domain.PageGroup, error)
	// ListBySite returns the site's groups ordered by name.
	ListBySite(ctx context.Context, siteID int64) ([]*domain.PageGroup, error)
	Update(ctx context.Context, g *domain.PageGroup) error
	Delete(ctx context.Context, id int64) error
}

type PageRepo interface {
	Create(ctx context.Context, p *domain.Page) error
	GetByID(ctx context.Context, id int64) (*domain.Page, error)
	// ListBySite returns every page of the site ordered by depth, menu_order.
	ListBySite(ctx context.Context, siteID int64) ([]*domain.Page, error)
	// ListByGroup returns the group's pages ordered by depth, menu_order.
	// This is the order the menu tree builder expects.
	ListByGroup(ctx context.Context, siteID, groupID int64) ([]*domain.Page, error)
	// NextMenuOrder returns one past the highest menu_order among the
	// children of parentID (or the group's roots when parentID is nil).
	NextMenuOrder(ctx context.Context, siteID int64, groupID, parentID *int64) (int, error)
	Update(ctx context.Context, p *domain.Page) error
	// SetSubtreeGroup moves a page and all of its descendants into groupID
	// and returns the number of rows changed.
	SetSubtreeGroup(ctx context.Context, rootID int64, groupID *int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}
