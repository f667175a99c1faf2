// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package tag

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-cms/inkwell/internal/platform/database/schema"
	"github.com/inkwell-cms/inkwell/internal/platform/dberr"
)

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed tag store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
ListWithCounts returns tags annotated with their published-article counts.

Description: The junction join restricts the count to published articles;
the grouping happens in the database, one row per tag, most-used first
with name as the tiebreaker.
*/
func (repository *postgresRepository) ListWithCounts(context context.Context, limit int) ([]*Tag, error) {

	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, t.%s, COUNT(a.%s) AS article_count
		FROM %s t
		JOIN %s at ON at.%s = t.%s
		JOIN %s a ON a.%s = at.%s AND a.%s = $1
		GROUP BY t.%s
		ORDER BY article_count DESC, t.%s ASC
		LIMIT $2`,
		schema.BlogTag.ID,
		schema.BlogTag.Name,
		schema.BlogTag.CreatedAt,
		schema.BlogArticle.ID,
		schema.BlogTag.Table,
		schema.BlogArticleTag.Table, schema.BlogArticleTag.TagID, schema.BlogTag.ID,
		schema.BlogArticle.Table, schema.BlogArticle.ID, schema.BlogArticleTag.ArticleID,
		schema.BlogArticle.Status,
		schema.BlogTag.ID,
		schema.BlogTag.Name,
	)

	rows, err := repository.pool.Query(context, query, "published", limit)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tags")
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		tag := &Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.ArticleCount); err != nil {
			return nil, dberr.Wrap(err, "scan_tag")
		}
		tags = append(tags, tag)
	}

	return tags, rows.Err()
}

func (repository *postgresRepository) FindByName(context context.Context, name string) (*Tag, error) {

	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s WHERE %s = $1",
		schema.BlogTag.ID,
		schema.BlogTag.Name,
		schema.BlogTag.CreatedAt,
		schema.BlogTag.Table,
		schema.BlogTag.Name,
	)

	tag := &Tag{}
	err := repository.pool.QueryRow(context, query, name).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "find_tag_by_name")
	}
	return tag, nil
}
