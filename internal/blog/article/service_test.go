// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package article

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

// fakeRepo is an in-memory [Repository] for service tests.
type fakeRepo struct {
	articles map[string]*Article // by ID
	tagsFor  map[string][]string // article ID -> tag names last written
	comments []*Comment
	counts   map[string]int

	failCreate error // forced failure for atomicity tests
	listFilter Filter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		articles: map[string]*Article{},
		tagsFor:  map[string][]string{},
		counts:   map[string]int{},
	}
}

func (r *fakeRepo) List(_ context.Context, filter Filter, _, _ int) ([]*Article, int, error) {
	r.listFilter = filter
	var out []*Article
	for _, a := range r.articles {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.AuthorID != "" && a.AuthorID != filter.AuthorID {
			continue
		}
		out = append(out, a)
	}
	return out, len(out), nil
}

func (r *fakeRepo) FindByID(_ context.Context, id string) (*Article, error) {
	if a, ok := r.articles[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, apperr.NotFound("article")
}

func (r *fakeRepo) FindBySlug(_ context.Context, slug string) (*Article, error) {
	for _, a := range r.articles {
		if a.Slug == slug {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("article")
}

func (r *fakeRepo) CreateWithTags(_ context.Context, article *Article, tagNames []string) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	for _, existing := range r.articles {
		if existing.Slug == article.Slug {
			return apperr.Conflict("Resource already exists")
		}
	}
	article.CreatedAt = time.Now()
	article.UpdatedAt = article.CreatedAt
	copied := *article
	r.articles[article.ID] = &copied
	r.tagsFor[article.ID] = tagNames
	return nil
}

func (r *fakeRepo) UpdateWithTags(_ context.Context, article *Article, tagNames []string) error {
	if _, ok := r.articles[article.ID]; !ok {
		return apperr.NotFound("article")
	}
	copied := *article
	r.articles[article.ID] = &copied
	if tagNames != nil {
		r.tagsFor[article.ID] = tagNames
	}
	return nil
}

func (r *fakeRepo) Publish(_ context.Context, id string) (*Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, apperr.NotFound("article")
	}
	a.Status = StatusPublished
	if a.PublishedAt == nil {
		now := time.Now()
		a.PublishedAt = &now
	}
	copied := *a
	return &copied, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.articles[id]; !ok {
		return apperr.NotFound("article")
	}
	delete(r.articles, id)
	return nil
}

func (r *fakeRepo) AddComment(_ context.Context, comment *Comment) error {
	if _, ok := r.articles[comment.ArticleID]; !ok {
		return apperr.ValidationError("Referenced resource does not exist")
	}
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, comment)
	return nil
}

func (r *fakeRepo) CommentCounts(_ context.Context, _ []string, _ bool) (map[string]int, error) {
	return r.counts, nil
}

func newTestService(repo *fakeRepo) *Service {
	fetcher := &countingFetcher{
		authors:    map[string]*AuthorRef{},
		categories: map[int64]*CategoryRef{},
	}
	return NewService(repo, fetcher, nil, time.Minute)
}

// # Creation

func TestService_Create_GeneratesIdentityAndSlug(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "  Ten Ways to Brew Tea  ",
		Body:  "Steep responsibly.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ten Ways to Brew Tea", created.Title)
	assert.Equal(t, "ten-ways-to-brew-tea", created.Slug)
	assert.Equal(t, StatusDraft, created.Status)
	assert.Nil(t, created.PublishedAt)
}

func TestService_Create_AuthorComesFromIdentity(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	// The payload cannot name an author; only the authenticated ID counts.
	created, err := service.Create(context.Background(), "author-7", CreateInput{
		Title: "Hello",
		Body:  "World",
	})
	require.NoError(t, err)
	assert.Equal(t, "author-7", created.AuthorID)
}

func TestService_Create_AccumulatesFieldErrors(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	_, err := service.Create(context.Background(), "author-1", CreateInput{
		Title:  "",
		Body:   "   ",
		Status: "archived",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	fields := map[string]bool{}
	for _, detail := range appErr.Details {
		fields[detail.Field] = true
	}
	assert.True(t, fields[FieldTitle])
	assert.True(t, fields[FieldBody])
	assert.True(t, fields[FieldStatus])
	// Slug cannot be derived from an empty title, so it is reported too.
	assert.True(t, fields[FieldSlug])
}

func TestService_Create_RejectsMalformedSlug(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	_, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "Hello",
		Body:  "World",
		Slug:  "Hello World!",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	assert.Empty(t, repo.articles, "nothing may be persisted on validation failure")
}

func TestService_Create_NormalizesTags(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "Tagged",
		Body:  "Body",
		Tags:  []string{" go ", "", "go", "postgres", "  "},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "postgres"}, repo.tagsFor[created.ID])
}

func TestService_Create_PublishedGetsTimestamp(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), "author-1", CreateInput{
		Title:  "Live",
		Body:   "Body",
		Status: StatusPublished,
	})
	require.NoError(t, err)
	require.NotNil(t, created.PublishedAt)
}

func TestService_Create_RejectsTakenSlug(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	_, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "Original", Body: "Body", Slug: "shared-slug",
	})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), "author-2", CreateInput{
		Title: "Copycat", Body: "Body", Slug: "shared-slug",
	})
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Equal(t, FieldSlug, appErr.Details[0].Field)
	assert.Len(t, repo.articles, 1)
}

func TestService_Create_PropagatesAtomicFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failCreate = apperr.Conflict("Resource already exists")
	service := newTestService(repo)

	_, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "Dup",
		Body:  "Body",
		Tags:  []string{"go"},
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.Empty(t, repo.articles)
	assert.Empty(t, repo.tagsFor)
}

// # Lifecycle

func TestService_Publish_IsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "Draft", Body: "Body",
	})
	require.NoError(t, err)

	first, err := service.Publish(context.Background(), "author-1", created.ID)
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)

	second, err := service.Publish(context.Background(), "author-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.PublishedAt, second.PublishedAt, "republish keeps the original timestamp")
}

func TestService_OwnershipIsEnforcedAsNotFound(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "Mine", Body: "Body",
	})
	require.NoError(t, err)

	title := "Stolen"
	_, err = service.Update(context.Background(), "author-2", created.ID, UpdateInput{Title: &title})
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.Publish(context.Background(), "author-2", created.ID)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	err = service.Delete(context.Background(), "author-2", created.ID)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// The rightful owner still succeeds.
	err = service.Delete(context.Background(), "author-1", created.ID)
	assert.NoError(t, err)
}

func TestService_Update_ClearsCategory(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	categoryID := int64(3)
	created, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "Categorized", Body: "Body", CategoryID: &categoryID,
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), "author-1", created.ID, UpdateInput{ClearCategory: true})
	require.NoError(t, err)
	assert.Nil(t, updated.CategoryID)
}

func TestService_Update_EmptyTagListClearsTags(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "Tagged", Body: "Body", Tags: []string{"go", "postgres"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"go", "postgres"}, repo.tagsFor[created.ID])

	// A present-but-empty tag list replaces the whole set.
	_, err = service.Update(context.Background(), "author-1", created.ID, UpdateInput{Tags: []string{}})
	require.NoError(t, err)
	assert.NotNil(t, repo.tagsFor[created.ID])
	assert.Empty(t, repo.tagsFor[created.ID])
}

func TestService_Update_NilTagListKeepsTags(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "Tagged", Body: "Body", Tags: []string{"go"},
	})
	require.NoError(t, err)

	title := "Retitled"
	_, err = service.Update(context.Background(), "author-1", created.ID, UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, repo.tagsFor[created.ID])
}

// # Reading

func TestService_GetBySlug_DraftHiddenFromStrangers(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	created, err := service.Create(context.Background(), "author-1", CreateInput{
		Title: "Secret Draft", Body: "Body",
	})
	require.NoError(t, err)

	_, err = service.GetBySlug(context.Background(), created.Slug, "")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = service.GetBySlug(context.Background(), created.Slug, "someone-else")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	mine, err := service.GetBySlug(context.Background(), created.Slug, "author-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, mine.ID)
}

func TestService_ListPublished_ForcesStatusAndCounts(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	draft, err := service.Create(context.Background(), "author-1", CreateInput{Title: "Draft", Body: "B"})
	require.NoError(t, err)
	live, err := service.Create(context.Background(), "author-1", CreateInput{Title: "Live", Body: "B", Status: StatusPublished})
	require.NoError(t, err)
	repo.counts = map[string]int{live.ID: 4}

	articles, total, err := service.ListPublished(context.Background(), Filter{Status: StatusDraft}, 20, 0)
	require.NoError(t, err)

	// The caller cannot widen the listing to drafts.
	assert.Equal(t, StatusPublished, repo.listFilter.Status)
	assert.Equal(t, 1, total)
	require.Len(t, articles, 1)
	assert.Equal(t, live.ID, articles[0].ID)
	assert.Equal(t, 4, articles[0].CommentCount)
	assert.NotEqual(t, draft.ID, articles[0].ID)
}

// # Comments

func TestService_AddComment_OnlyOnPublished(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	draft, err := service.Create(context.Background(), "author-1", CreateInput{Title: "Draft", Body: "B"})
	require.NoError(t, err)

	_, err = service.AddComment(context.Background(), "reader-1", draft.Slug, CommentInput{Body: "hi"})
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	live, err := service.Create(context.Background(), "author-1", CreateInput{Title: "Live", Body: "B", Status: StatusPublished})
	require.NoError(t, err)

	comment, err := service.AddComment(context.Background(), "reader-1", live.Slug, CommentInput{Body: " nice post "})
	require.NoError(t, err)
	assert.Equal(t, "reader-1", comment.AuthorID)
	assert.Equal(t, "nice post", comment.Body)
	assert.True(t, comment.IsApproved)
	assert.Equal(t, live.ID, comment.ArticleID)
}

func TestService_AddComment_Validation(t *testing.T) {
	repo := newFakeRepo()
	service := newTestService(repo)

	_, err := service.AddComment(context.Background(), "reader-1", "any", CommentInput{Body: "   "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	// Validation fires before the article lookup.
	assert.Empty(t, repo.comments)
}
