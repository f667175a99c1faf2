// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package article

import (
	stdctx "context"
	"errors"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/constants"
	"github.com/inkwell-cms/inkwell/internal/platform/ctxutil"
	"github.com/inkwell-cms/inkwell/internal/platform/redis"
	"github.com/inkwell-cms/inkwell/internal/platform/validate"
	"github.com/inkwell-cms/inkwell/pkg/slice"
	"github.com/inkwell-cms/inkwell/pkg/slug"
	"github.com/inkwell-cms/inkwell/pkg/uuidv7"
)

// # Service Layer

// Limits applied to caller-supplied content.
const (
	maxTitleLen    = 200
	maxSlugLen     = 200
	maxTagLen      = 50
	maxTagCount    = 10
	maxCommentBody = 2000
)

// Service orchestrates the business logic for the publishing domain.
// It acts as the primary entry point for reading and managing articles.
type Service struct {
	repo     Repository
	fetcher  RelationFetcher
	cache    *goredis.Client // nil disables the read-through cache
	cacheTTL time.Duration
}

// NewService constructs a new [Service] with its required collaborators.
// Pass a nil cache client to run without Redis (tests, local tooling).
func NewService(repo Repository, fetcher RelationFetcher, cache *goredis.Client, cacheTTL time.Duration) *Service {
	return &Service{
		repo:     repo,
		fetcher:  fetcher,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// # Reading

/*
ListPublished retrieves a paginated page of published articles with their
author, category, tags, and approved-comment counts attached.

Description: One listing query, one query per relation kind, and one
grouped count query; the total query count never depends on the page size.

Parameters:
  - context: context.Context
  - filter: Filter (category, tag, sort; status is forced to published)
  - limit: int
  - offset: int

Returns:
  - []*Article: Hydrated page of articles
  - int: Total count of published articles matching the filter
  - error: InvalidQuery for bad criteria, repository errors otherwise
*/
func (service *Service) ListPublished(context stdctx.Context, filter Filter, limit, offset int) ([]*Article, int, error) {

	filter.Status = StatusPublished

	articles, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if err := LoadRelations(context, service.fetcher, articles, LoadListing); err != nil {
		return nil, 0, err
	}

	if err := service.attachCommentCounts(context, articles, true); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

/*
ListByAuthor retrieves an author's own articles, drafts included, for a
dashboard view.
*/
func (service *Service) ListByAuthor(context stdctx.Context, authorID string, filter Filter, limit, offset int) ([]*Article, int, error) {

	filter.AuthorID = authorID
	if filter.Sort == "" {
		filter.Sort = "recent"
	}

	articles, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	if err := LoadRelations(context, service.fetcher, articles, LoadListing); err != nil {
		return nil, 0, err
	}

	if err := service.attachCommentCounts(context, articles, false); err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}

/*
GetBySlug fetches a single fully hydrated article by its URL slug.

Description: Published articles are served through a Redis read-through
cache; a miss falls back to the store and repopulates the key. Drafts are
never cached and are visible only to their author: anyone else gets the
same NotFound a missing slug would produce, so draft slugs cannot be
probed.

Parameters:
  - context: context.Context
  - slugValue: string (URL identifier)
  - viewerID: string (authenticated account ID, empty for anonymous)

Returns:
  - *Article: The hydrated article with relations attached
  - error: ErrNotFound if missing or not visible to the viewer
*/
func (service *Service) GetBySlug(context stdctx.Context, slugValue string, viewerID string) (*Article, error) {

	// Cache lookup, best effort. A transport fault is logged and treated
	// as a miss rather than failing the read.
	if service.cache != nil {
		cached := &Article{}
		err := redis.GetJSON(context, service.cache, cacheKey(slugValue), cached)
		if err == nil && cached.IsPublished() {
			return cached, nil
		}
		if err != nil && !errors.Is(err, redis.ErrCacheMiss) {
			ctxutil.GetLogger(context).Warn("article_cache_read_failed",
				slog.String("slug", slugValue), slog.Any("error", err))
		}
	}

	article, err := service.repo.FindBySlug(context, slugValue)
	if err != nil {
		return nil, err
	}

	if !article.IsPublished() {
		// Drafts exist only for their author.
		if viewerID == "" || viewerID != article.AuthorID {
			return nil, apperr.NotFound("article")
		}
		if err := LoadRelations(context, service.fetcher, []*Article{article}, LoadAll); err != nil {
			return nil, err
		}
		return article, nil
	}

	if err := LoadRelations(context, service.fetcher, []*Article{article}, LoadPublic); err != nil {
		return nil, err
	}
	article.CommentCount = len(article.Comments)

	if service.cache != nil {
		if err := redis.SetJSON(context, service.cache, cacheKey(slugValue), article, service.cacheTTL); err != nil {
			ctxutil.GetLogger(context).Warn("article_cache_write_failed",
				slog.String("slug", slugValue), slog.Any("error", err))
		}
	}

	return article, nil
}

// # Authoring

/*
Create validates and persists a new article together with its tag links.

Description: Structural validation runs first and accumulates every field
failure into one response, then the slug is checked against existing
articles; the store's unique constraint backstops the check-then-insert
race with a Conflict. The author identity always comes from the
authenticated request. Tag names are trimmed, deduplicated, and empties
dropped before the atomic write.

Parameters:
  - context: context.Context
  - authorID: string (authenticated account ID)
  - input: CreateInput

Returns:
  - *Article: The persisted article with relations attached
  - error: ErrValidation, ErrConflict on duplicate slug, storage failures
*/
func (service *Service) Create(context stdctx.Context, authorID string, input CreateInput) (*Article, error) {

	input.Title = strings.TrimSpace(input.Title)
	input.Body = strings.TrimSpace(input.Body)
	input.Slug = strings.TrimSpace(input.Slug)

	if input.Status == "" {
		input.Status = StatusDraft
	}
	if input.Slug == "" && input.Title != "" {
		input.Slug = slug.From(input.Title)
	}

	// Structural validation, all fields reported at once.
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, maxTitleLen)
	validator.Required(FieldBody, input.Body)
	validator.Required(FieldSlug, input.Slug).MaxLen(FieldSlug, input.Slug, maxSlugLen).Slug(FieldSlug, input.Slug)
	validator.OneOf(FieldStatus, string(input.Status), string(StatusDraft), string(StatusPublished))

	tagNames := normalizeTags(input.Tags)
	validator.Custom(FieldTags, len(tagNames) > maxTagCount, "too many tags")
	for _, name := range tagNames {
		validator.MaxLen(FieldTags, name, maxTagLen)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Uniqueness check after the structural pass. A concurrent create that
	// slips between this read and the insert is caught by the slug
	// constraint and surfaces as a Conflict.
	if _, err := service.repo.FindBySlug(context, input.Slug); err == nil {
		return nil, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldSlug, Message: "slug is already in use"})
	} else if !apperr.IsCode(err, "NOT_FOUND") {
		return nil, err
	}

	article := &Article{
		ID:         uuidv7.New(),
		Title:      input.Title,
		Slug:       input.Slug,
		Body:       input.Body,
		Status:     input.Status,
		AuthorID:   authorID,
		CategoryID: input.CategoryID,
	}
	if article.Status == StatusPublished {
		now := time.Now().UTC()
		article.PublishedAt = &now
	}

	if err := service.repo.CreateWithTags(context, article, tagNames); err != nil {
		return nil, err
	}

	if err := LoadRelations(context, service.fetcher, []*Article{article}, LoadListing); err != nil {
		return nil, err
	}

	return article, nil
}

/*
Update applies a partial update to an article owned by the caller.

Description: Ownership is enforced by lookup: an article owned by someone
else yields the same NotFound as a missing one. Nil input fields keep
their current value; a non-nil tag list replaces the tag set atomically
with the row update. The article cache entry is invalidated on success.
*/
func (service *Service) Update(context stdctx.Context, authorID string, id string, input UpdateInput) (*Article, error) {

	article, err := service.ownedArticle(context, authorID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		article.Title = strings.TrimSpace(*input.Title)
	}
	if input.Body != nil {
		article.Body = strings.TrimSpace(*input.Body)
	}
	if input.ClearCategory {
		article.CategoryID = nil
	} else if input.CategoryID != nil {
		article.CategoryID = input.CategoryID
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, article.Title).MaxLen(FieldTitle, article.Title, maxTitleLen)
	validator.Required(FieldBody, article.Body)

	var tagNames []string
	if input.Tags != nil {
		tagNames = normalizeTags(input.Tags)
		validator.Custom(FieldTags, len(tagNames) > maxTagCount, "too many tags")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateWithTags(context, article, tagNames); err != nil {
		return nil, err
	}

	service.invalidate(context, article.Slug)

	if err := LoadRelations(context, service.fetcher, []*Article{article}, LoadListing); err != nil {
		return nil, err
	}

	return article, nil
}

/*
Publish transitions a caller-owned article to the published state.

Description: Idempotent: republishing keeps the original publication
timestamp. The cache entry is invalidated so the next read serves the
published version.
*/
func (service *Service) Publish(context stdctx.Context, authorID string, id string) (*Article, error) {

	article, err := service.ownedArticle(context, authorID, id)
	if err != nil {
		return nil, err
	}

	published, err := service.repo.Publish(context, article.ID)
	if err != nil {
		return nil, err
	}

	service.invalidate(context, published.Slug)

	if err := LoadRelations(context, service.fetcher, []*Article{published}, LoadListing); err != nil {
		return nil, err
	}

	return published, nil
}

// Delete removes a caller-owned article. Comments and tag links cascade.
func (service *Service) Delete(context stdctx.Context, authorID string, id string) error {

	article, err := service.ownedArticle(context, authorID, id)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, article.ID); err != nil {
		return err
	}

	service.invalidate(context, article.Slug)
	return nil
}

// # Comments

/*
AddComment appends an authenticated reader's comment to a published
article.

Description: The commenter identity comes from the verified token, never
the payload. Comments land approved; the moderation flag exists so a
moderator can retract one later without deleting it. Commenting on a
draft or missing article yields NotFound.
*/
func (service *Service) AddComment(context stdctx.Context, authorID string, articleSlug string, input CommentInput) (*Comment, error) {

	input.Body = strings.TrimSpace(input.Body)

	validator := &validate.Validator{}
	validator.Required(FieldBody, input.Body).MaxLen(FieldBody, input.Body, maxCommentBody)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	article, err := service.repo.FindBySlug(context, articleSlug)
	if err != nil {
		return nil, err
	}
	if !article.IsPublished() {
		return nil, apperr.NotFound("article")
	}

	comment := &Comment{
		ID:         uuidv7.New(),
		ArticleID:  article.ID,
		AuthorID:   authorID,
		Body:       input.Body,
		IsApproved: true,
	}

	if err := service.repo.AddComment(context, comment); err != nil {
		return nil, err
	}

	// The cached article embeds its comments; drop it.
	service.invalidate(context, article.Slug)

	return comment, nil
}

// # Internals

// ownedArticle fetches an article and enforces caller ownership.
// Foreign articles are indistinguishable from missing ones.
func (service *Service) ownedArticle(context stdctx.Context, authorID string, id string) (*Article, error) {
	article, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != authorID {
		return nil, apperr.NotFound("article")
	}
	return article, nil
}

// attachCommentCounts fills CommentCount for a batch with one grouped query.
func (service *Service) attachCommentCounts(context stdctx.Context, articles []*Article, approvedOnly bool) error {
	if len(articles) == 0 {
		return nil
	}

	ids := slice.Map(articles, func(a *Article) string { return a.ID })
	counts, err := service.repo.CommentCounts(context, ids, approvedOnly)
	if err != nil {
		return err
	}

	for _, a := range articles {
		a.CommentCount = counts[a.ID]
	}
	return nil
}

// invalidate drops the cached article for slugValue, best effort.
func (service *Service) invalidate(context stdctx.Context, slugValue string) {
	if service.cache == nil {
		return
	}
	if err := redis.Invalidate(context, service.cache, cacheKey(slugValue)); err != nil {
		ctxutil.GetLogger(context).Warn("article_cache_invalidate_failed",
			slog.String("slug", slugValue), slog.Any("error", err))
	}
}

func cacheKey(slugValue string) string {
	return constants.RedisPrefixArticle + slugValue
}

// normalizeTags trims, drops empties, and deduplicates tag names while
// preserving the caller's order.
func normalizeTags(names []string) []string {
	trimmed := slice.Map(names, strings.TrimSpace)
	nonEmpty := slice.Filter(trimmed, func(s string) bool { return s != "" })
	return slice.Uniq(nonEmpty)
}
