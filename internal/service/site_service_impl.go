package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/repository"
)

type siteService struct {
	sites    repository.SiteRepo
	observer UseCaseObserver
}

func NewSiteService(sites repository.SiteRepo, observers ...UseCaseObserver) SiteService {
	return &siteService{sites: sites, observer: useCaseObserverOrNoop(observers)}
}

func (s *siteService) Create(ctx context.Context, site *domain.Site) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"site": site.Code}
	defer func() { report(ctx, s.observer, "site-create", startedAt, fields, err) }()

	if err = site.Validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	site.CreatedAt = now
	site.UpdatedAt = now
	if err = s.sites.Create(ctx, site); err != nil {
		return err
	}
	fields["site_id"] = site.ID
	return nil
}

func (s *siteService) GetByCode(ctx context.Context, code string) (*domain.Site, error) {
	return s.sites.GetByCode(ctx, code)
}

func (s *siteService) List(ctx context.Context) ([]*domain.Site, error) {
	return s.sites.List(ctx)
}

func (s *siteService) ListCodes(ctx context.Context) ([]string, error) {
	return s.sites.ListCodes(ctx)
}

func (s *siteService) Update(ctx context.Context, code string, in UpdateSiteInput) (site *domain.Site, err error) {
	startedAt := time.Now()
	defer func() { report(ctx, s.observer, "site-update", startedAt, map[string]any{"site": code}, err) }()

	site, err = s.sites.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		site.Name = *in.Name
	}
	if in.Domain != nil {
		site.Domain = in.Domain
	}
	if err = site.Validate(); err != nil {
		return nil, err
	}
	site.UpdatedAt = time.Now().UTC()
	if err = s.sites.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// Delete removes the site; its groups and pages go with it.
func (s *siteService) Delete(ctx context.Context, code string) (err error) {
	startedAt := time.Now()
	defer func() { report(ctx, s.observer, "site-delete", startedAt, map[string]any{"site": code}, err) }()

	site, err := s.sites.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	return s.sites.Delete(ctx, site.ID)
}
