package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pages/internal/db"
	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/repository"
)

type pageService struct {
	sites    repository.SiteRepo
	groups   repository.GroupRepo
	pages    repository.PageRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPageService(
	sites repository.SiteRepo,
	groups repository.GroupRepo,
	pages repository.PageRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PageService {
	return &pageService{
		sites:    sites,
		groups:   groups,
		pages:    pages,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create inserts a page under its parent. The parent lookup, sibling order
// and insert share one transaction so the computed depth and menu order
// match what is stored.
func (s *pageService) Create(ctx context.Context, siteCode string, in CreatePageInput) (page *domain.Page, err error) {
	startedAt := time.Now()
	fields := map[string]any{"site": siteCode, "slug": in.Slug}
	defer func() { report(ctx, s.observer, "page-create", startedAt, fields, err) }()

	parentID := in.ParentID
	if parentID != nil && *parentID == 0 {
		parentID = nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSites := repository.NewSQLiteSiteRepo(tx)
		txGroups := repository.NewSQLiteGroupRepo(tx)
		txPages := repository.NewSQLitePageRepo(tx)

		site, err := txSites.GetByCode(ctx, siteCode)
		if err != nil {
			return err
		}
		if in.GroupID != nil {
			if err := requireGroup(ctx, txGroups, site, *in.GroupID); err != nil {
				return err
			}
		}

		depth := 0
		if parentID != nil {
			parent, err := txPages.GetByID(ctx, *parentID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("parent page %d does not exist: %w", *parentID, ErrInvalidParent)
				}
				return err
			}
			if parent.SiteID != site.ID {
				return fmt.Errorf("parent page %d belongs to another site: %w", *parentID, ErrInvalidParent)
			}
			if !sameGroup(parent.GroupID, in.GroupID) {
				return fmt.Errorf("parent page %d belongs to another group: %w", *parentID, ErrInvalidParent)
			}
			depth = parent.Depth + 1
		}

		menuOrder := 0
		if in.MenuOrder != nil {
			menuOrder = *in.MenuOrder
		} else {
			menuOrder, err = txPages.NextMenuOrder(ctx, site.ID, in.GroupID, parentID)
			if err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		p := &domain.Page{
			SiteID:      site.ID,
			GroupID:     in.GroupID,
			Title:       in.Title,
			Slug:        in.Slug,
			ParentID:    parentID,
			Depth:       depth,
			MenuOrder:   menuOrder,
			Content:     in.Content,
			IsPublished: domain.BoolFromPtrWithDefault(true, in.IsPublished),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := txPages.Create(ctx, p); err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["page_id"] = page.ID
	fields["depth"] = page.Depth
	return page, nil
}

func (s *pageService) Get(ctx context.Context, siteCode string, id int64) (*domain.Page, error) {
	site, err := s.sites.GetByCode(ctx, siteCode)
	if err != nil {
		return nil, err
	}
	return pageInSite(ctx, s.pages, site, id)
}

func (s *pageService) ListBySite(ctx context.Context, siteCode string) ([]*domain.Page, error) {
	site, err := s.sites.GetByCode(ctx, siteCode)
	if err != nil {
		return nil, err
	}
	return s.pages.ListBySite(ctx, site.ID)
}

func (s *pageService) ListByGroup(ctx context.Context, siteCode string, groupID int64) ([]*domain.Page, error) {
	site, err := s.sites.GetByCode(ctx, siteCode)
	if err != nil {
		return nil, err
	}
	if _, err := groupInSite(ctx, s.groups, site, groupID); err != nil {
		return nil, err
	}
	return s.pages.ListByGroup(ctx, site.ID, groupID)
}

func (s *pageService) Update(ctx context.Context, siteCode string, id int64, in UpdatePageInput) (page *domain.Page, err error) {
	startedAt := time.Now()
	defer func() {
		report(ctx, s.observer, "page-update", startedAt, map[string]any{"site": siteCode, "page_id": id}, err)
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSites := repository.NewSQLiteSiteRepo(tx)
		txGroups := repository.NewSQLiteGroupRepo(tx)
		txPages := repository.NewSQLitePageRepo(tx)

		site, err := txSites.GetByCode(ctx, siteCode)
		if err != nil {
			return err
		}
		p, err := pageInSite(ctx, txPages, site, id)
		if err != nil {
			return err
		}

		if in.GroupID != nil && !sameGroup(p.GroupID, in.GroupID) {
			if err := requireGroup(ctx, txGroups, site, *in.GroupID); err != nil {
				return err
			}
			if !p.IsRoot() {
				return fmt.Errorf("page %d has a parent and cannot leave its group: %w", id, ErrInvalidParent)
			}
			if _, err := txPages.SetSubtreeGroup(ctx, p.ID, in.GroupID); err != nil {
				return err
			}
			p.GroupID = in.GroupID
		}

		if in.Title != nil {
			p.Title = *in.Title
		}
		if in.Slug != nil {
			p.Slug = *in.Slug
		}
		if in.Content != nil {
			p.Content = in.Content
		}
		p.MenuOrder = domain.IntFromPtrWithDefault(p.MenuOrder, in.MenuOrder)
		p.IsPublished = domain.BoolFromPtrWithDefault(p.IsPublished, in.IsPublished)
		if err := p.Validate(); err != nil {
			return err
		}
		p.UpdatedAt = time.Now().UTC()
		if err := txPages.Update(ctx, p); err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Delete removes the page and, through the schema's cascade, its descendants.
func (s *pageService) Delete(ctx context.Context, siteCode string, id int64) (err error) {
	startedAt := time.Now()
	defer func() {
		report(ctx, s.observer, "page-delete", startedAt, map[string]any{"site": siteCode, "page_id": id}, err)
	}()

	if _, err = s.Get(ctx, siteCode, id); err != nil {
		return err
	}
	return s.pages.Delete(ctx, id)
}

func pageInSite(ctx context.Context, pages repository.PageRepo, site *domain.Site, id int64) (*domain.Page, error) {
	p, err := pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.SiteID != site.ID {
		return nil, fmt.Errorf("page %d in site %q: %w", id, site.Code, repository.ErrNotFound)
	}
	return p, nil
}

// requireGroup checks that a group referenced from a request body exists in
// the site. A bad reference is a client error, not a missing resource.
func requireGroup(ctx context.Context, groups repository.GroupRepo, site *domain.Site, id int64) error {
	if _, err := groupInSite(ctx, groups, site, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("group %d is not part of site %q: %w", id, site.Code, domain.ErrValidation)
		}
		return err
	}
	return nil
}

func sameGroup(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
