// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package article

import "context"

// # Article Data Access

// Repository defines the data access contract for the article domain.
// Comments and tag links are managed through this aggregate rather than
// exposed as standalone repositories.
type Repository interface {

	/*
		List returns a filtered, paginated slice of articles and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (status, category, tag, author, sort)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Article: Matching rows, relations not yet loaded
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Article, int, error)

	/*
		FindByID returns the article with the given ID, relations not loaded.

		Returns:
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Article, error)

	/*
		FindBySlug returns the article matching the unique URL identifier,
		relations not loaded.

		Returns:
		  - error: ErrNotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Article, error)

	/*
		CreateWithTags persists a new article and its tag links atomically.

		Description: Tags are resolved by name: existing tags are linked,
		missing ones created, all inside one transaction with the article
		row. Either everything lands or nothing does.

		Parameters:
		  - context: context.Context
		  - article: *Article (identity and fields already assigned)
		  - tagNames: []string (trimmed, deduplicated, no empties)

		Returns:
		  - error: ErrConflict on slug collision, constraint or storage failures
	*/
	CreateWithTags(context context.Context, article *Article, tagNames []string) error

	/*
		UpdateWithTags persists changes to an article's mutable fields and,
		when tagNames is non-nil, replaces its tag set in the same transaction.

		Returns:
		  - error: ErrNotFound if the row is missing
	*/
	UpdateWithTags(context context.Context, article *Article, tagNames []string) error

	/*
		Publish transitions an article to the published state.

		Description: The publication timestamp is set only on the first
		call; republishing an already-published article keeps the
		original timestamp.

		Returns:
		  - error: ErrNotFound if the row is missing
	*/
	Publish(context context.Context, id string) (*Article, error)

	/*
		Delete removes an article. Comments and tag links go with it via
		the schema's cascade rules.

		Returns:
		  - error: ErrNotFound if the row is missing
	*/
	Delete(context context.Context, id string) error

	// # Comments

	/*
		AddComment appends a reader comment to an article.

		Returns:
		  - error: ErrValidation if the article does not exist
	*/
	AddComment(context context.Context, comment *Comment) error

	/*
		CommentCounts returns the number of comments per article for the
		given article IDs, grouped in a single query. Articles with no
		comments are absent from the map.
	*/
	CommentCounts(context context.Context, articleIDs []string, approvedOnly bool) (map[string]int, error)
}

// # Relation Fetchers

// RelationFetcher is the narrow read surface the relation loader depends
// on. Each method fetches one kind of related record for a whole batch of
// keys in a single query. Kept separate from [Repository] so the loader's
// query behavior is testable without a database.
type RelationFetcher interface {

	// AuthorsByIDs returns the referenced authors keyed by account ID.
	AuthorsByIDs(context context.Context, ids []string) (map[string]*AuthorRef, error)

	// CategoriesByIDs returns the referenced categories keyed by category ID.
	CategoriesByIDs(context context.Context, ids []int64) (map[int64]*CategoryRef, error)

	// TagsByArticleIDs returns each article's tags keyed by article ID.
	// Implemented as a junction-table scan plus one tag fetch.
	TagsByArticleIDs(context context.Context, articleIDs []string) (map[string][]TagRef, error)

	// CommentsByArticleIDs returns each article's comments keyed by
	// article ID, approved comments only when approvedOnly is set.
	CommentsByArticleIDs(context context.Context, articleIDs []string, approvedOnly bool) (map[string][]Comment, error)
}
