package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/pages/internal/domain"
	"github.com/alexanderramin/pages/internal/repository"
	"github.com/alexanderramin/pages/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageService_Create_RootDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := env.pageService()
	ctx := context.Background()
	env.site(t, "main")

	p, err := svc.Create(ctx, "main", CreatePageInput{Title: "Home", Slug: "home"})
	require.NoError(t, err)

	assert.NotZero(t, p.ID)
	assert.Equal(t, 0, p.Depth)
	assert.Equal(t, 0, p.MenuOrder)
	assert.True(t, p.IsPublished)
	assert.True(t, p.IsRoot())

	ev := env.obs.last()
	assert.Equal(t, "page-create", ev.Name)
	assert.Equal(t, p.ID, ev.Fields["page_id"])
}

func TestPageService_Create_DepthFromParent(t *testing.T) {
	env := newTestEnv(t)
	svc := env.pageService()
	ctx := context.Background()
	site := env.site(t, "main")
	g := env.group(t, site, "Header")

	root, err := svc.Create(ctx, "main", CreatePageInput{GroupID: &g.ID, Title: "Docs", Slug: "docs"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, "main", CreatePageInput{GroupID: &g.ID, ParentID: &root.ID, Title: "Guide", Slug: "guide"})
	require.NoError(t, err)
	grandchild, err := svc.Create(ctx, "main", CreatePageInput{GroupID: &g.ID, ParentID: &child.ID, Title: "Install", Slug: "install"})
	require.NoError(t, err)

	assert.Equal(t, 1, child.Depth)
	assert.Equal(t, 2, grandchild.Depth)
	require.NotNil(t, grandchild.ParentID)
	assert.Equal(t, child.ID, *grandchild.ParentID)
}

func TestPageService_Create_MenuOrderAppendsAfterSiblings(t *testing.T) {
	env := newTestEnv(t)
	svc := env.pageService()
	ctx := context.Background()
	site := env.site(t, "main")
	g := env.group(t, site, "Header")

	first, err := svc.Create(ctx, "main", CreatePageInput{GroupID: &g.ID, Title: "A", Slug: "a"})
	require.NoError(t, err)
	explicit, err := svc.Create(ctx, "main", CreatePageInput{GroupID: &g.ID, Title: "B", Slug: "b", MenuOrder: ptr(10)})
	require.NoError(t, err)
	next, err := svc.Create(ctx, "main", CreatePageInput{GroupID: &g.ID, Title: "C", Slug: "c"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, "main", CreatePageInput{GroupID: &g.ID, ParentID: &first.ID, Title: "A1", Slug: "a1"})
	require.NoError(t, err)

	assert.Equal(t, 0, first.MenuOrder)
	assert.Equal(t, 10, explicit.MenuOrder)
	assert.Equal(t, 11, next.MenuOrder)
	assert.Equal(t, 0, child.MenuOrder)
}

func TestPageService_Create_ZeroParentMeansRoot(t *testing.T) {
	env := newTestEnv(t)
	env.site(t, "main")

	p, err := env.pageService().Create(context.Background(), "main", CreatePageInput{ParentID: ptr(int64(0)), Title: "Home", Slug: "home"})
	require.NoError(t, err)
	assert.Nil(t, p.ParentID)
}

func TestPageService_Create_InvalidParent(t *testing.T) {
	env := newTestEnv(t)
	svc := env.pageService()
	ctx := context.Background()
	site := env.site(t, "main")
	other := env.site(t, "other")
	header := env.group(t, site, "Header")
	footer := env.group(t, site, "Footer")
	otherGroup := env.group(t, other, "Header")

	headerRoot, err := svc.Create(ctx, "main", CreatePageInput{GroupID: &header.ID, Title: "H", Slug: "h"})
	require.NoError(t, err)
	foreignRoot, err := svc.Create(ctx, "other", CreatePageInput{GroupID: &otherGroup.ID, Title: "O", Slug: "o"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   CreatePageInput
	}{
		{"missing parent", CreatePageInput{GroupID: &header.ID, ParentID: ptr(int64(999)), Title: "x", Slug: "x"}},
		{"parent in other group", CreatePageInput{GroupID: &footer.ID, ParentID: &headerRoot.ID, Title: "x", Slug: "x"}},
		{"parent ungrouped mismatch", CreatePageInput{ParentID: &headerRoot.ID, Title: "x", Slug: "x"}},
		{"parent in other site", CreatePageInput{GroupID: &header.ID, ParentID: &foreignRoot.ID, Title: "x", Slug: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "main", tt.in)
			assert.ErrorIs(t, err, ErrInvalidParent)
		})
	}
}

func TestPageService_Create_GroupMustBelongToSite(t *testing.T) {
	env := newTestEnv(t)
	env.site(t, "main")
	other := env.site(t, "other")
	theirs := env.group(t, other, "Theirs")

	_, err := env.pageService().Create(context.Background(), "main", CreatePageInput{GroupID: &theirs.ID, Title: "x", Slug: "x"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPageService_Create_Validation(t *testing.T) {
	env := newTestEnv(t)
	env.site(t, "main")

	_, err := env.pageService().Create(context.Background(), "main", CreatePageInput{Title: "x", Slug: "Not A Slug"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPageService_Create_UnknownSite(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.pageService().Create(context.Background(), "nope", CreatePageInput{Title: "x", Slug: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPageService_Create_RollsBackOnInsertFailure(t *testing.T) {
	env := newTestEnv(t)
	site := env.site(t, "main")
	ctx := context.Background()

	boom := errors.New("injected insert failure")
	failUoW := &testutil.FailOnNthExecUoW{DB: env.db, FailOn: 1, Err: boom}
	svc := NewPageService(env.sites, env.groups, env.pages, failUoW)

	_, err := svc.Create(ctx, "main", CreatePageInput{Title: "Home", Slug: "home"})
	require.ErrorIs(t, err, boom)

	pages, err := env.pages.ListBySite(ctx, site.ID)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestPageService_Update(t *testing.T) {
	env := newTestEnv(t)
	svc := env.pageService()
	ctx := context.Background()
	env.site(t, "main")

	p, err := svc.Create(ctx, "main", CreatePageInput{Title: "Draft", Slug: "draft", IsPublished: ptr(false)})
	require.NoError(t, err)
	assert.False(t, p.IsPublished)

	updated, err := svc.Update(ctx, "main", p.ID, UpdatePageInput{
		Title:       ptr("Final"),
		Slug:        ptr("final"),
		Content:     ptr("body"),
		MenuOrder:   ptr(3),
		IsPublished: ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, 3, updated.MenuOrder)
	assert.True(t, updated.IsPublished)

	fetched, err := svc.Get(ctx, "main", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", fetched.Slug)
	assert.Equal(t, "body", *fetched.Content)

	_, err = svc.Update(ctx, "main", p.ID, UpdatePageInput{Slug: ptr("BAD SLUG")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Update(ctx, "main", 999, UpdatePageInput{Title: ptr("x")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPageService_Update_GroupMovesSubtree(t *testing.T) {
	env := newTestEnv(t)
	svc := env.pageService()
	ctx := context.Background()
	site := env.site(t, "main")
	header := env.group(t, site, "Header")
	footer := env.group(t, site, "Footer")

	root, err := svc.Create(ctx, "main", CreatePageInput{GroupID: &header.ID, Title: "Root", Slug: "root"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, "main", CreatePageInput{GroupID: &header.ID, ParentID: &root.ID, Title: "Child", Slug: "child"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "main", child.ID, UpdatePageInput{GroupID: &footer.ID})
	assert.ErrorIs(t, err, ErrInvalidParent, "a child cannot leave its parent's group")

	moved, err := svc.Update(ctx, "main", root.ID, UpdatePageInput{GroupID: &footer.ID})
	require.NoError(t, err)
	assert.Equal(t, footer.ID, *moved.GroupID)

	footerPages, err := svc.ListByGroup(ctx, "main", footer.ID)
	require.NoError(t, err)
	assert.Len(t, footerPages, 2)

	headerPages, err := svc.ListByGroup(ctx, "main", header.ID)
	require.NoError(t, err)
	assert.Empty(t, headerPages)
}

func TestPageService_DeleteAndScoping(t *testing.T) {
	env := newTestEnv(t)
	svc := env.pageService()
	ctx := context.Background()
	env.site(t, "main")
	env.site(t, "other")

	p, err := svc.Create(ctx, "main", CreatePageInput{Title: "Home", Slug: "home"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "other", p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "pages are scoped to their site")
	assert.ErrorIs(t, svc.Delete(ctx, "other", p.ID), repository.ErrNotFound)

	all, err := svc.ListBySite(ctx, "main")
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, "main", p.ID))
	_, err = svc.Get(ctx, "main", p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, "page-delete", env.obs.last().Name)
}
