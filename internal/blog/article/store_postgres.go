// Copyright (c) 2026 Inkwell CMS. All rights reserved.

/*
Package article provides the PostgreSQL implementation for the publishing
platform's data access.

It leans on a few Postgres features to keep reads cheap and writes safe:
  - Window Functions: COUNT(*) OVER() delivers total result counts without
    a separate COUNT query.
  - Set Operations: = ANY($n) powers the batch relation fetchers, one
    round-trip per relation kind regardless of batch size.
  - Upserts: INSERT ... ON CONFLICT resolves concurrent tag creation
    without failing the enclosing transaction.
  - ACID Transactions: the article row and its tag links commit together
    or not at all.

The repository follows an "Aggregate" pattern where comments and tag links
are managed through the article repository to maintain domain integrity.
*/
package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/database/schema"
	"github.com/inkwell-cms/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] and [RelationFetcher] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed article store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// NewRelationFetcher constructs the batch relation reader over the same pool.
func NewRelationFetcher(pool *pgxpool.Pool) RelationFetcher {
	return &postgresRepository{pool: pool}
}

// articleColumns is the canonical projection shared by every single-row lookup.
var articleColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.BlogArticle.ID,
	schema.BlogArticle.Title,
	schema.BlogArticle.Slug,
	schema.BlogArticle.Body,
	schema.BlogArticle.Status,
	schema.BlogArticle.AuthorID,
	schema.BlogArticle.CategoryID,
	schema.BlogArticle.PublishedAt,
	schema.BlogArticle.CreatedAt,
	schema.BlogArticle.UpdatedAt,
)

// scanArticle reads one row in articleColumns order.
func scanArticle(row pgx.Row) (*Article, error) {
	article := &Article{}
	err := row.Scan(
		&article.ID,
		&article.Title,
		&article.Slug,
		&article.Body,
		&article.Status,
		&article.AuthorID,
		&article.CategoryID,
		&article.PublishedAt,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}

// # Listing

/*
List returns a filtered, paginated slice of articles and the total count.

Description: The SQL comes from [BuildListQuery]; this method only executes
and scans. The window-function total arrives on every row, so the count is
read from the first one.
*/
func (repository *postgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Article, int, error) {

	query, args, err := BuildListQuery(filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_articles")
	}
	defer rows.Close()

	var articles []*Article
	var totalCount int

	for rows.Next() {
		article := &Article{}
		err := rows.Scan(
			&article.ID,
			&article.Title,
			&article.Slug,
			&article.Body,
			&article.Status,
			&article.AuthorID,
			&article.CategoryID,
			&article.PublishedAt,
			&article.CreatedAt,
			&article.UpdatedAt,
			&totalCount,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_article")
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_articles")
	}

	return articles, totalCount, nil
}

// # Single Row Lookups

func (repository *postgresRepository) FindByID(context context.Context, id string) (*Article, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		articleColumns, schema.BlogArticle.Table, schema.BlogArticle.ID)

	article, err := scanArticle(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_article_by_id")
	}
	return article, nil
}

func (repository *postgresRepository) FindBySlug(context context.Context, slug string) (*Article, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		articleColumns, schema.BlogArticle.Table, schema.BlogArticle.Slug)

	article, err := scanArticle(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "find_article_by_slug")
	}
	return article, nil
}

// # Atomic Writes

/*
CreateWithTags persists a new article and its tag links atomically.

Description: Runs inside a single transaction: the article INSERT, one
find-or-create per tag name, and a batched junction insert. A concurrent
request creating the same tag name is absorbed by ON CONFLICT plus a
bounded re-read rather than aborting the transaction.
*/
func (repository *postgresRepository) CreateWithTags(context context.Context, article *Article, tagNames []string) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "create_article_begin")
	}
	defer transaction.Rollback(context)

	insert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING %s, %s`,
		schema.BlogArticle.Table,
		schema.BlogArticle.ID,
		schema.BlogArticle.Title,
		schema.BlogArticle.Slug,
		schema.BlogArticle.Body,
		schema.BlogArticle.Status,
		schema.BlogArticle.AuthorID,
		schema.BlogArticle.CategoryID,
		schema.BlogArticle.PublishedAt,
		schema.BlogArticle.CreatedAt,
		schema.BlogArticle.CreatedAt,
		schema.BlogArticle.UpdatedAt,
	)

	err = transaction.QueryRow(context, insert,
		article.ID, article.Title, article.Slug, article.Body,
		string(article.Status), article.AuthorID, article.CategoryID, article.PublishedAt,
	).Scan(&article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		// A concurrent create of the same slug loses here.
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("An article with this slug already exists")
		}
		return dberr.Wrap(err, "create_article")
	}

	tagIDs, err := repository.resolveTagIDs(context, transaction, tagNames)
	if err != nil {
		return err
	}

	if err := repository.insertTagLinks(context, transaction, article.ID, tagIDs); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "create_article_commit")
	}

	return nil
}

/*
UpdateWithTags persists changes to an article's mutable fields and, when
tagNames is non-nil, replaces its tag set in the same transaction.
*/
func (repository *postgresRepository) UpdateWithTags(context context.Context, article *Article, tagNames []string) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "update_article_begin")
	}
	defer transaction.Rollback(context)

	update := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = NOW()
		WHERE %s = $4`,
		schema.BlogArticle.Table,
		schema.BlogArticle.Title,
		schema.BlogArticle.Body,
		schema.BlogArticle.CategoryID,
		schema.BlogArticle.UpdatedAt,
		schema.BlogArticle.ID,
	)

	response, err := transaction.Exec(context, update,
		article.Title, article.Body, article.CategoryID, article.ID)
	if err != nil {
		return dberr.Wrap(err, "update_article")
	}
	if response.RowsAffected() == 0 {
		return apperr.NotFound("article")
	}

	// Tag replacement: clear and insert, same strategy as any junction sync.
	if tagNames != nil {
		unlink := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
			schema.BlogArticleTag.Table, schema.BlogArticleTag.ArticleID)
		if _, err := transaction.Exec(context, unlink, article.ID); err != nil {
			return dberr.Wrap(err, "clear_tag_links")
		}

		tagIDs, err := repository.resolveTagIDs(context, transaction, tagNames)
		if err != nil {
			return err
		}
		if err := repository.insertTagLinks(context, transaction, article.ID, tagIDs); err != nil {
			return err
		}
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "update_article_commit")
	}

	return nil
}

/*
resolveTagIDs maps tag names to IDs, creating missing tags on the way.

Description: Each name is first upserted with ON CONFLICT DO NOTHING
RETURNING, which yields the new ID on a clean insert and no row when the
tag already exists or a concurrent transaction just created it. The miss
is settled by exactly one follow-up read. This bounds the race handling
to a single retry without ever aborting the enclosing transaction.
*/
func (repository *postgresRepository) resolveTagIDs(context context.Context, transaction pgx.Tx, tagNames []string) ([]int64, error) {

	if len(tagNames) == 0 {
		return nil, nil
	}

	upsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, NOW())
		ON CONFLICT (%s) DO NOTHING
		RETURNING %s`,
		schema.BlogTag.Table, schema.BlogTag.Name, schema.BlogTag.CreatedAt,
		schema.BlogTag.Name, schema.BlogTag.ID,
	)
	lookup := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		schema.BlogTag.ID, schema.BlogTag.Table, schema.BlogTag.Name)

	ids := make([]int64, 0, len(tagNames))
	for _, name := range tagNames {
		var id int64

		err := transaction.QueryRow(context, upsert, name).Scan(&id)
		if err == nil {
			ids = append(ids, id)
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, dberr.Wrap(err, "upsert_tag")
		}

		// Tag existed before, or a concurrent writer won the insert.
		if err := transaction.QueryRow(context, lookup, name).Scan(&id); err != nil {
			// Still absent after the upsert round: the winning row was
			// deleted before the re-read. One retry is the budget.
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperr.Conflict("Tag changed concurrently")
			}
			return nil, dberr.Wrap(err, "lookup_tag")
		}
		ids = append(ids, id)
	}

	return ids, nil
}

/*
insertTagLinks queues one junction INSERT per tag through a [pgx.Batch],
shipping them in a single round-trip within the transaction.
*/
func (repository *postgresRepository) insertTagLinks(context context.Context, transaction pgx.Tx, articleID string, tagIDs []int64) error {

	if len(tagIDs) == 0 {
		return nil
	}

	link := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		schema.BlogArticleTag.Table,
		schema.BlogArticleTag.ArticleID,
		schema.BlogArticleTag.TagID,
	)

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(link, articleID, tagID)
	}

	response := transaction.SendBatch(context, batch)
	defer response.Close()

	for range tagIDs {
		if _, err := response.Exec(); err != nil {
			return dberr.Wrap(err, "link_tag")
		}
	}

	return nil
}

// # Lifecycle

/*
Publish transitions an article to the published state.

Description: COALESCE keeps the first publication timestamp across
republishes, so the transition is idempotent at the SQL level with no
read-modify-write race.
*/
func (repository *postgresRepository) Publish(context context.Context, id string) (*Article, error) {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = COALESCE(%s, NOW()), %s = NOW()
		WHERE %s = $2
		RETURNING %s`,
		schema.BlogArticle.Table,
		schema.BlogArticle.Status,
		schema.BlogArticle.PublishedAt, schema.BlogArticle.PublishedAt,
		schema.BlogArticle.UpdatedAt,
		schema.BlogArticle.ID,
		articleColumns,
	)

	article, err := scanArticle(repository.pool.QueryRow(context, query, string(StatusPublished), id))
	if err != nil {
		return nil, dberr.Wrap(err, "publish_article")
	}
	return article, nil
}

func (repository *postgresRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.BlogArticle.Table, schema.BlogArticle.ID)

	// Comments and tag links cascade at the schema level.
	response, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_article")
	}
	if response.RowsAffected() == 0 {
		return apperr.NotFound("article")
	}
	return nil
}

// # Comments

func (repository *postgresRepository) AddComment(context context.Context, comment *Comment) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING %s, (SELECT %s FROM %s WHERE %s = $3)`,
		schema.BlogComment.Table,
		schema.BlogComment.ID,
		schema.BlogComment.ArticleID,
		schema.BlogComment.AuthorID,
		schema.BlogComment.Body,
		schema.BlogComment.IsApproved,
		schema.BlogComment.CreatedAt,
		schema.BlogComment.CreatedAt,
		schema.UsersAccount.DisplayName, schema.UsersAccount.Table, schema.UsersAccount.ID,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID, comment.ArticleID, comment.AuthorID, comment.Body, comment.IsApproved,
	).Scan(&comment.CreatedAt, &comment.AuthorName)

	// A foreign key violation here means the article or account is gone.
	return dberr.Wrap(err, "add_comment")
}

/*
CommentCounts returns the number of comments per article, grouped in a
single query. Articles with no comments are simply absent from the map.
*/
func (repository *postgresRepository) CommentCounts(context context.Context, articleIDs []string, approvedOnly bool) (map[string]int, error) {

	if len(articleIDs) == 0 {
		return map[string]int{}, nil
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT %s, COUNT(*)
		FROM %s
		WHERE %s = ANY($1)`,
		schema.BlogComment.ArticleID,
		schema.BlogComment.Table,
		schema.BlogComment.ArticleID,
	))
	if approvedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND %s", schema.BlogComment.IsApproved))
	}
	queryBuilder.WriteString(fmt.Sprintf(" GROUP BY %s", schema.BlogComment.ArticleID))

	rows, err := repository.pool.Query(context, queryBuilder.String(), articleIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "comment_counts")
	}
	defer rows.Close()

	counts := make(map[string]int, len(articleIDs))
	for rows.Next() {
		var articleID string
		var count int
		if err := rows.Scan(&articleID, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_comment_count")
		}
		counts[articleID] = count
	}

	return counts, rows.Err()
}

// # Batch Relation Fetchers

func (repository *postgresRepository) AuthorsByIDs(context context.Context, ids []string) (map[string]*AuthorRef, error) {

	if len(ids) == 0 {
		return map[string]*AuthorRef{}, nil
	}

	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = ANY($1)",
		schema.UsersAccount.ID,
		schema.UsersAccount.Username,
		schema.UsersAccount.DisplayName,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_authors")
	}
	defer rows.Close()

	authors := make(map[string]*AuthorRef, len(ids))
	for rows.Next() {
		ref := &AuthorRef{}
		if err := rows.Scan(&ref.ID, &ref.Username, &ref.DisplayName); err != nil {
			return nil, dberr.Wrap(err, "scan_author")
		}
		authors[ref.ID] = ref
	}

	return authors, rows.Err()
}

func (repository *postgresRepository) CategoriesByIDs(context context.Context, ids []int64) (map[int64]*CategoryRef, error) {

	if len(ids) == 0 {
		return map[int64]*CategoryRef{}, nil
	}

	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = ANY($1)",
		schema.BlogCategory.ID,
		schema.BlogCategory.Name,
		schema.BlogCategory.Slug,
		schema.BlogCategory.Table,
		schema.BlogCategory.ID,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_categories")
	}
	defer rows.Close()

	categories := make(map[int64]*CategoryRef, len(ids))
	for rows.Next() {
		ref := &CategoryRef{}
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Slug); err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories[ref.ID] = ref
	}

	return categories, rows.Err()
}

/*
TagsByArticleIDs returns each article's tags keyed by article ID.

Description: One junction-plus-tag join covers the whole batch; the rows
come back as (article_id, tag) pairs and are grouped in memory.
*/
func (repository *postgresRepository) TagsByArticleIDs(context context.Context, articleIDs []string) (map[string][]TagRef, error) {

	if len(articleIDs) == 0 {
		return map[string][]TagRef{}, nil
	}

	query := fmt.Sprintf(`
		SELECT at.%s, t.%s, t.%s
		FROM %s at
		JOIN %s t ON t.%s = at.%s
		WHERE at.%s = ANY($1)`,
		schema.BlogArticleTag.ArticleID,
		schema.BlogTag.ID,
		schema.BlogTag.Name,
		schema.BlogArticleTag.Table,
		schema.BlogTag.Table, schema.BlogTag.ID, schema.BlogArticleTag.TagID,
		schema.BlogArticleTag.ArticleID,
	)

	rows, err := repository.pool.Query(context, query, articleIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_tags")
	}
	defer rows.Close()

	tags := make(map[string][]TagRef, len(articleIDs))
	for rows.Next() {
		var articleID string
		ref := TagRef{}
		if err := rows.Scan(&articleID, &ref.ID, &ref.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags[articleID] = append(tags[articleID], ref)
	}

	return tags, rows.Err()
}

func (repository *postgresRepository) CommentsByArticleIDs(context context.Context, articleIDs []string, approvedOnly bool) (map[string][]Comment, error) {

	if len(articleIDs) == 0 {
		return map[string][]Comment{}, nil
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, a.%s, c.%s, c.%s, c.%s
		FROM %s c
		JOIN %s a ON a.%s = c.%s
		WHERE c.%s = ANY($1)`,
		schema.BlogComment.ID,
		schema.BlogComment.ArticleID,
		schema.BlogComment.AuthorID,
		schema.UsersAccount.DisplayName,
		schema.BlogComment.Body,
		schema.BlogComment.IsApproved,
		schema.BlogComment.CreatedAt,
		schema.BlogComment.Table,
		schema.UsersAccount.Table, schema.UsersAccount.ID, schema.BlogComment.AuthorID,
		schema.BlogComment.ArticleID,
	))
	if approvedOnly {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s", schema.BlogComment.IsApproved))
	}

	rows, err := repository.pool.Query(context, queryBuilder.String(), articleIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "fetch_comments")
	}
	defer rows.Close()

	comments := make(map[string][]Comment, len(articleIDs))
	for rows.Next() {
		comment := Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.ArticleID,
			&comment.AuthorID,
			&comment.AuthorName,
			&comment.Body,
			&comment.IsApproved,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_comment")
		}
		comments[comment.ArticleID] = append(comments[comment.ArticleID], comment)
	}

	return comments, rows.Err()
}
