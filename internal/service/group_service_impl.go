package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/repository"
)

type groupService struct {
	sites    repository.SiteRepo
	groups   repository.GroupRepo
	observer UseCaseObserver
}

func NewGroupService(sites repository.SiteRepo, groups repository.GroupRepo, observers ...UseCaseObserver) GroupService {
	return &groupService{sites: sites, groups: groups, observer: useCaseObserverOrNoop(observers)}
}

func (s *groupService) Create(ctx context.Context, siteCode string, g *domain.PageGroup) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"site": siteCode, "group": g.Name}
	defer func() { report(ctx, s.observer, "group-create", startedAt, fields, err) }()

	site, err := s.sites.GetByCode(ctx, siteCode)
	if err != nil {
		return err
	}
	g.SiteID = site.ID
	if err = g.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	if err = s.groups.Create(ctx, g); err != nil {
		return err
	}
	fields["group_id"] = g.ID
	return nil
}

func (s *groupService) Get(ctx context.Context, siteCode string, id int64) (*domain.PageGroup, error) {
	site, err := s.sites.GetByCode(ctx, siteCode)
	if err != nil {
		return nil, err
	}
	return groupInSite(ctx, s.groups, site, id)
}

func (s *groupService) List(ctx context.Context, siteCode string) ([]*domain.PageGroup, error) {
	site, err := s.sites.GetByCode(ctx, siteCode)
	if err != nil {
		return nil, err
	}
	return s.groups.ListBySite(ctx, site.ID)
}

func (s *groupService) Update(ctx context.Context, siteCode string, id int64, in UpdateGroupInput) (g *domain.PageGroup, err error) {
	startedAt := time.Now()
	defer func() {
		report(ctx, s.observer, "group-update", startedAt, map[string]any{"site": siteCode, "group_id": id}, err)
	}()

	g, err = s.Get(ctx, siteCode, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		g.Name = *in.Name
	}
	if in.Description != nil {
		g.Description = in.Description
	}
	if err = g.Validate(); err != nil {
		return nil, err
	}
	g.UpdatedAt = time.Now().UTC()
	if err = s.groups.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Delete removes the group. Its pages stay in the site, ungrouped.
func (s *groupService) Delete(ctx context.Context, siteCode string, id int64) (err error) {
	startedAt := time.Now()
	defer func() {
		report(ctx, s.observer, "group-delete", startedAt, map[string]any{"site": siteCode, "group_id": id}, err)
	}()

	if _, err = s.Get(ctx, siteCode, id); err != nil {
		return err
	}
	return s.groups.Delete(ctx, id)
}

// groupInSite loads a group and hides it if it belongs to another site.
func groupInSite(ctx context.Context, groups repository.GroupRepo, site *domain.Site, id int64) (*domain.PageGroup, error) {
	g, err := groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.SiteID != site.ID {
		return nil, fmt.Errorf("page group %d in site %q: %w", id, site.Code, repository.ErrNotFound)
	}
	return g, nil
}
