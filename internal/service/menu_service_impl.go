package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/menu"
)

type menuService struct {
	assembler *menu.Assembler
	observer  UseCaseObserver
}

func NewMenuService(assembler *menu.Assembler, observers ...UseCaseObserver) MenuService {
	return &menuService{assembler: assembler, observer: useCaseObserverOrNoop(observers)}
}

func (s *menuService) SiteMenu(ctx context.Context, code string) (resp *domain.SiteResponse, err error) {
	startedAt := time.Now()
	fields := map[string]any{"site": code}
	defer func() { report(ctx, s.observer, "site-menu", startedAt, fields, err) }()

	resp, err = s.assembler.SiteMenu(ctx, code)
	if err != nil {
		return nil, err
	}
	fields["group_count"] = len(resp.PageGroups)
	pageCount := 0
	for _, g := range resp.PageGroups {
		pageCount += menu.Count(g.Menu)
	}
	fields["page_count"] = pageCount
	return resp, nil
}
