package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ErrSiteNotFound is returned by SiteMenu when no site has the requested code.
var ErrSiteNotFound = errors.New("site not found")

// HierarchyStore is the read side the assembler needs. Implementations must
// be safe for concurrent use; ListPages is called from several goroutines at
// once.
type HierarchyStore interface {
	// FindSiteByCode returns an error wrapping repository.ErrNotFound when
	// no site matches.
	FindSiteByCode(ctx context.Context, code string) (*domain.Site, error)
	// ListGroups returns the site's groups ordered by name.
	ListGroups(ctx context.Context, siteID int64) ([]*domain.PageGroup, error)
	// ListPages returns a group's pages ordered by depth, then menu_order.
	ListPages(ctx context.Context, siteID, groupID int64) ([]*domain.Page, error)
}

// Assembler builds a site's full menu, one tree per group.
type Assembler struct {
	store       HierarchyStore
	maxParallel int
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithMaxParallel caps how many groups are fetched at once. n <= 0 means
// no cap.
func WithMaxParallel(n int) AssemblerOption {
	return func(a *Assembler) {
		a.maxParallel = n
	}
}

// NewAssembler creates an Assembler reading from store.
func NewAssembler(store HierarchyStore, opts ...AssemblerOption) *Assembler {
	a := &Assembler{store: store}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SiteMenu resolves the site by code and returns it with the menu tree of
// every group, groups in the order the store listed them.
//
// Groups are fetched concurrently. The first fetch error cancels the rest
// and fails the whole call; no partial response is returned. An unknown code
// yields ErrSiteNotFound without touching groups or pages.
func (a *Assembler) SiteMenu(ctx context.Context, code string) (*domain.SiteResponse, error) {
	site, err := a.store.FindSiteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("site %q: %w", code, ErrSiteNotFound)
		}
		return nil, fmt.Errorf("finding site %q: %w", code, err)
	}

	groups, err := a.store.ListGroups(ctx, site.ID)
	if err != nil {
		return nil, fmt.Errorf("listing groups for site %q: %w", code, err)
	}

	menus := make([]domain.GroupMenu, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	if a.maxParallel > 0 {
		g.SetLimit(a.maxParallel)
	}
	for i, group := range groups {
		g.Go(func() error {
			pages, err := a.store.ListPages(gctx, site.ID, group.ID)
			if err != nil {
				return fmt.Errorf("listing pages for group %d (%s): %w", group.ID, group.Name, err)
			}
			menus[i] = domain.GroupMenu{PageGroup: *group, Menu: BuildForest(pages)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.SiteResponse{Site: *site, PageGroups: menus}, nil
}
