// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/database/schema"
	"github.com/inkwell-cms/inkwell/internal/platform/dberr"
)

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed category store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
ListWithCounts returns every category annotated with its published-article
count, ordered by name.

Description: The count is grouped at the database, one row per category,
in a single query. The join condition carries the published predicate so
drafts never inflate a section's count, and the LEFT JOIN keeps empty
sections in the result with a zero.
*/
func (repository *postgresRepository) ListWithCounts(context context.Context) ([]*Category, error) {

	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, COALESCE(c.%s, ''), c.%s, c.%s, COUNT(a.%s) AS article_count
		FROM %s c
		LEFT JOIN %s a ON a.%s = c.%s AND a.%s = $1
		GROUP BY c.%s
		ORDER BY c.%s ASC`,
		schema.BlogCategory.ID,
		schema.BlogCategory.Name,
		schema.BlogCategory.Slug,
		schema.BlogCategory.Description,
		schema.BlogCategory.CreatedAt,
		schema.BlogCategory.UpdatedAt,
		schema.BlogArticle.ID,
		schema.BlogCategory.Table,
		schema.BlogArticle.Table, schema.BlogArticle.CategoryID, schema.BlogCategory.ID,
		schema.BlogArticle.Status,
		schema.BlogCategory.ID,
		schema.BlogCategory.Name,
	)

	rows, err := repository.pool.Query(context, query, "published")
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Slug,
			&category.Description,
			&category.CreatedAt,
			&category.UpdatedAt,
			&category.ArticleCount,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (repository *postgresRepository) FindBySlug(context context.Context, slug string) (*Category, error) {

	query := fmt.Sprintf("SELECT %s, %s, %s, COALESCE(%s, ''), %s, %s FROM %s WHERE %s = $1",
		schema.BlogCategory.ID,
		schema.BlogCategory.Name,
		schema.BlogCategory.Slug,
		schema.BlogCategory.Description,
		schema.BlogCategory.CreatedAt,
		schema.BlogCategory.UpdatedAt,
		schema.BlogCategory.Table,
		schema.BlogCategory.Slug,
	)

	category := &Category{}
	err := repository.pool.QueryRow(context, query, slug).Scan(
		&category.ID,
		&category.Name,
		&category.Slug,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_category_by_slug")
	}
	return category, nil
}

func (repository *postgresRepository) Create(context context.Context, category *Category) error {

	// An absent description is stored as NULL, not an empty string.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), NOW(), NOW())
		RETURNING %s, %s, %s`,
		schema.BlogCategory.Table,
		schema.BlogCategory.Name,
		schema.BlogCategory.Slug,
		schema.BlogCategory.Description,
		schema.BlogCategory.CreatedAt,
		schema.BlogCategory.UpdatedAt,
		schema.BlogCategory.ID,
		schema.BlogCategory.CreatedAt,
		schema.BlogCategory.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, category.Name, category.Slug, category.Description).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	return dberr.Wrap(err, "create_category")
}

func (repository *postgresRepository) Update(context context.Context, category *Category) error {

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = NULLIF($3, ''), %s = NOW()
		WHERE %s = $4`,
		schema.BlogCategory.Table,
		schema.BlogCategory.Name,
		schema.BlogCategory.Slug,
		schema.BlogCategory.Description,
		schema.BlogCategory.UpdatedAt,
		schema.BlogCategory.ID,
	)

	response, err := repository.pool.Exec(context, query, category.Name, category.Slug, category.Description, category.ID)
	if err != nil {
		return dberr.Wrap(err, "update_category")
	}
	if response.RowsAffected() == 0 {
		return apperr.NotFound("category")
	}
	return nil
}

func (repository *postgresRepository) Delete(context context.Context, id int64) error {

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.BlogCategory.Table, schema.BlogCategory.ID)

	// Articles filed here are detached by the schema's SET NULL rule.
	response, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if response.RowsAffected() == 0 {
		return apperr.NotFound("category")
	}
	return nil
}
