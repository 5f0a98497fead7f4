package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/repository"
	"github.com/alexanderramin/pages/internal/testutil"
	"github.com/stretchr/testify/require"
)

// recordingObserver keeps every event for later assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type testEnv struct {
	db     *sql.DB
	sites  *repository.SQLiteSiteRepo
	groups *repository.SQLiteGroupRepo
	pages  *repository.SQLitePageRepo
	obs    *recordingObserver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &testEnv{
		db:     database,
		sites:  repository.NewSQLiteSiteRepo(database),
		groups: repository.NewSQLiteGroupRepo(database),
		pages:  repository.NewSQLitePageRepo(database),
		obs:    &recordingObserver{},
	}
}

func (e *testEnv) pageService() PageService {
	return NewPageService(e.sites, e.groups, e.pages, testutil.NewTestUoW(e.db), e.obs)
}

func (e *testEnv) site(t *testing.T, code string) *domain.Site {
	t.Helper()
	s := testutil.NewTestSite(code)
	require.NoError(t, e.sites.Create(context.Background(), s))
	return s
}

func (e *testEnv) group(t *testing.T, site *domain.Site, name string) *domain.PageGroup {
	t.Helper()
	g := testutil.NewTestGroup(site.ID, name)
	require.NoError(t, e.groups.Create(context.Background(), g))
	return g
}

func ptr[T any](v T) *T {
	return &v
}
