package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pages/internal/db"
	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/importer"
	"github.com/alexanderramin/pages/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportSite(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSiteFromSchema(ctx, schema)
}

func (s *importService) ImportSiteFromSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{"site": schema.Site.Code}
	defer func() { report(ctx, s.observer, "site-import", startedAt, fields, err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r, err := applySchema(ctx, tx, schema)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["group_count"] = result.GroupCount
	fields["page_count"] = result.PageCount
	return result, nil
}

// applySchema writes a validated schema. Pages are created in file order, so
// every parent exists before its children.
func applySchema(ctx context.Context, tx db.DBTX, schema *importer.ImportSchema) (*ImportResult, error) {
	sites := repository.NewSQLiteSiteRepo(tx)
	groups := repository.NewSQLiteGroupRepo(tx)
	pages := repository.NewSQLitePageRepo(tx)
	now := time.Now().UTC()

	site := &domain.Site{
		Code:      schema.Site.Code,
		Name:      schema.Site.Name,
		Domain:    schema.Site.Domain,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := sites.Create(ctx, site); err != nil {
		return nil, fmt.Errorf("creating site %q: %w", site.Code, err)
	}

	groupIDs := make(map[string]int64, len(schema.Groups))
	for _, gi := range schema.Groups {
		g := &domain.PageGroup{
			SiteID:      site.ID,
			Name:        gi.Name,
			Description: gi.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := groups.Create(ctx, g); err != nil {
			return nil, fmt.Errorf("creating group %q: %w", gi.Ref, err)
		}
		groupIDs[gi.Ref] = g.ID
	}

	created := make(map[string]*domain.Page, len(schema.Pages))
	for _, pi := range schema.Pages {
		p := &domain.Page{
			SiteID:      site.ID,
			Title:       pi.Title,
			Slug:        pi.Slug,
			Content:     pi.Content,
			IsPublished: domain.BoolFromPtrWithDefault(true, pi.Published),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if pi.GroupRef != nil {
			id := groupIDs[*pi.GroupRef]
			p.GroupID = &id
		}
		if pi.ParentRef != nil && *pi.ParentRef != "" {
			parent := created[*pi.ParentRef]
			p.ParentID = &parent.ID
			p.Depth = parent.Depth + 1
		}

		if pi.Order != nil {
			p.MenuOrder = *pi.Order
		} else {
			next, err := pages.NextMenuOrder(ctx, site.ID, p.GroupID, p.ParentID)
			if err != nil {
				return nil, err
			}
			p.MenuOrder = next
		}

		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("page %q: %w", pi.Ref, err)
		}
		if err := pages.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("creating page %q: %w", pi.Ref, err)
		}
		created[pi.Ref] = p
	}

	return &ImportResult{
		Site:       site,
		GroupCount: len(schema.Groups),
		PageCount:  len(schema.Pages),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s: %w", msg, domain.ErrValidation)
}
