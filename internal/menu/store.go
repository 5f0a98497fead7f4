package menu

import (
	"context"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/repository"
)

// RepositoryStore serves HierarchyStore from the SQL repositories.
type RepositoryStore struct {
	sites  repository.SiteRepo
	groups repository.GroupRepo
	pages  repository.PageRepo
}

// NewRepositoryStore creates a RepositoryStore over the given repositories.
func NewRepositoryStore(sites repository.SiteRepo, groups repository.GroupRepo, pages repository.PageRepo) *RepositoryStore {
	return &RepositoryStore{sites: sites, groups: groups, pages: pages}
}

func (s *RepositoryStore) FindSiteByCode(ctx context.Context, code string) (*domain.Site, error) {
	return s.sites.GetByCode(ctx, code)
}

func (s *RepositoryStore) ListGroups(ctx context.Context, siteID int64) ([]*domain.PageGroup, error) {
	return s.groups.ListBySite(ctx, siteID)
}

func (s *RepositoryStore) ListPages(ctx context.Context, siteID, groupID int64) ([]*domain.Page, error) {
	return s.pages.ListByGroup(ctx, siteID, groupID)
}

var _ HierarchyStore = (*RepositoryStore)(nil)
