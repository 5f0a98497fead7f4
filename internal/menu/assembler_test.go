package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	sites    map[string]*domain.Site
	groups   map[int64][]*domain.PageGroup
	pages    map[int64][]*domain.Page
	siteErr  error
	groupErr error
	pageErrs map[int64]error
	delay    map[int64]time.Duration

	mu         sync.Mutex
	groupCalls int
	pageCalls  []int64
	inFlight   atomic.Int32
	peak       atomic.Int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sites:    map[string]*domain.Site{},
		groups:   map[int64][]*domain.PageGroup{},
		pages:    map[int64][]*domain.Page{},
		pageErrs: map[int64]error{},
		delay:    map[int64]time.Duration{},
	}
}

func (f *fakeStore) FindSiteByCode(_ context.Context, code string) (*domain.Site, error) {
	if f.siteErr != nil {
		return nil, f.siteErr
	}
	s, ok := f.sites[code]
	if !ok {
		return nil, fmt.Errorf("site: %w", repository.ErrNotFound)
	}
	return s, nil
}

func (f *fakeStore) ListGroups(_ context.Context, siteID int64) ([]*domain.PageGroup, error) {
	f.mu.Lock()
	f.groupCalls++
	f.mu.Unlock()
	if f.groupErr != nil {
		return nil, f.groupErr
	}
	return f.groups[siteID], nil
}

func (f *fakeStore) ListPages(ctx context.Context, _ int64, groupID int64) ([]*domain.Page, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.peak.Load()
		if n <= peak || f.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.pageCalls = append(f.pageCalls, groupID)
	f.mu.Unlock()

	if d := f.delay[groupID]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.pageErrs[groupID]; err != nil {
		return nil, err
	}
	return f.pages[groupID], nil
}

func (f *fakeStore) addSite(id int64, code string) *domain.Site {
	s := &domain.Site{ID: id, Code: code, Name: code}
	f.sites[code] = s
	return s
}

func (f *fakeStore) addGroup(siteID, id int64, name string, pages ...*domain.Page) {
	f.groups[siteID] = append(f.groups[siteID], &domain.PageGroup{ID: id, SiteID: siteID, Name: name})
	f.pages[id] = pages
}

func TestSiteMenu_AssemblesGroupsInOrder(t *testing.T) {
	store := newFakeStore()
	site := store.addSite(1, "main")
	store.addGroup(site.ID, 30, "Footer", page(7))
	store.addGroup(site.ID, 10, "Header", page(1), page(2, 1), page(3, 1))
	store.addGroup(site.ID, 20, "Sidebar")
	// The first group is slowest so completion order differs from listing order.
	store.delay[30] = 20 * time.Millisecond

	resp, err := NewAssembler(store).SiteMenu(context.Background(), "main")
	require.NoError(t, err)

	assert.Equal(t, "main", resp.Code)
	require.Len(t, resp.PageGroups, 3)
	assert.Equal(t, "Footer", resp.PageGroups[0].Name)
	assert.Equal(t, "Header", resp.PageGroups[1].Name)
	assert.Equal(t, "Sidebar", resp.PageGroups[2].Name)

	assert.Equal(t, []int64{7}, ids(resp.PageGroups[0].Menu))
	assert.Equal(t, []int64{1}, ids(resp.PageGroups[1].Menu))
	assert.Equal(t, []int64{2, 3}, ids(resp.PageGroups[1].Menu[0].Children))
	assert.NotNil(t, resp.PageGroups[2].Menu)
	assert.Empty(t, resp.PageGroups[2].Menu)
}

func TestSiteMenu_ZeroGroups(t *testing.T) {
	store := newFakeStore()
	store.addSite(1, "empty")

	resp, err := NewAssembler(store).SiteMenu(context.Background(), "empty")
	require.NoError(t, err)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"pageGroups":[]`)
	assert.Empty(t, store.pageCalls)
}

func TestSiteMenu_UnknownSite(t *testing.T) {
	store := newFakeStore()
	store.addSite(1, "main")

	resp, err := NewAssembler(store).SiteMenu(context.Background(), "nope")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSiteNotFound)
	assert.Zero(t, store.groupCalls, "no group fetch after NotFound")
	assert.Empty(t, store.pageCalls, "no page fetch after NotFound")
}

func TestSiteMenu_SiteLookupFailure(t *testing.T) {
	store := newFakeStore()
	boom := errors.New("connection reset")
	store.siteErr = boom

	_, err := NewAssembler(store).SiteMenu(context.Background(), "main")

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrSiteNotFound)
	assert.Zero(t, store.groupCalls)
}

func TestSiteMenu_GroupListingFailure(t *testing.T) {
	store := newFakeStore()
	store.addSite(1, "main")
	boom := errors.New("disk I/O error")
	store.groupErr = boom

	resp, err := NewAssembler(store).SiteMenu(context.Background(), "main")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.pageCalls)
}

func TestSiteMenu_AnyGroupFailureFailsWholeCall(t *testing.T) {
	store := newFakeStore()
	site := store.addSite(1, "main")
	store.addGroup(site.ID, 1, "A", page(1))
	store.addGroup(site.ID, 2, "B", page(2))
	store.addGroup(site.ID, 3, "C", page(3))
	boom := errors.New("query interrupted")
	store.pageErrs[2] = boom

	resp, err := NewAssembler(store).SiteMenu(context.Background(), "main")

	assert.Nil(t, resp, "no partial response")
	assert.ErrorIs(t, err, boom)
}

func TestSiteMenu_DropsForeignParents(t *testing.T) {
	store := newFakeStore()
	site := store.addSite(1, "main")
	// Page 2's parent lives in another group, so it is absent from group A.
	store.addGroup(site.ID, 1, "A", page(1), page(2, 3))
	store.addGroup(site.ID, 2, "B", page(3))

	resp, err := NewAssembler(store).SiteMenu(context.Background(), "main")
	require.NoError(t, err)

	assert.Equal(t, 1, Count(resp.PageGroups[0].Menu))
	assert.Equal(t, 1, Count(resp.PageGroups[1].Menu))
}

func TestSiteMenu_MaxParallelCapsConcurrency(t *testing.T) {
	store := newFakeStore()
	site := store.addSite(1, "main")
	for i := int64(1); i <= 6; i++ {
		store.addGroup(site.ID, i, fmt.Sprintf("g%d", i), page(i))
		store.delay[i] = 10 * time.Millisecond
	}

	resp, err := NewAssembler(store, WithMaxParallel(2)).SiteMenu(context.Background(), "main")
	require.NoError(t, err)

	assert.Len(t, resp.PageGroups, 6)
	assert.LessOrEqual(t, store.peak.Load(), int32(2))
	assert.Len(t, store.pageCalls, 6)
}

func TestSiteMenu_ContextCanceled(t *testing.T) {
	store := newFakeStore()
	site := store.addSite(1, "main")
	store.addGroup(site.ID, 1, "A", page(1))
	store.delay[1] = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAssembler(store).SiteMenu(ctx, "main")
	assert.ErrorIs(t, err, context.Canceled)
}
