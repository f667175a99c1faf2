// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package article

import (
	"fmt"
	"strings"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
	"github.com/inkwell-cms/inkwell/internal/platform/database/schema"
)

// # List Query Construction

// sortColumns whitelists the accepted sort keys and maps each to its
// ORDER BY expression. Anything outside this map is rejected, never
// interpolated, so callers cannot smuggle SQL through the sort parameter.
var sortColumns = map[string]string{
	"newest": fmt.Sprintf("a.%s DESC NULLS LAST", schema.BlogArticle.PublishedAt),
	"oldest": fmt.Sprintf("a.%s ASC NULLS LAST", schema.BlogArticle.PublishedAt),
	"recent": fmt.Sprintf("a.%s DESC", schema.BlogArticle.CreatedAt),
	"title":  fmt.Sprintf("a.%s ASC", schema.BlogArticle.Title),
}

// DefaultSort orders published articles newest-first, matching the
// public listing on the site.
const DefaultSort = "newest"

/*
BuildListQuery composes the article listing SQL from filter criteria.

Description: Predicates are appended only for criteria the caller set, each
bound to a positional argument. The SELECT carries a COUNT(*) OVER() window
so the total matching count arrives with the rows, avoiding a second query.
The function is pure: same filter in, same SQL and argument list out.

Parameters:
  - filter: Filter (status, category, tag, author, sort)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - string: The complete parameterized SQL statement
  - []any: Positional arguments in $1..$n order
  - error: InvalidQuery for unrecognised sort keys or negative bounds
*/
func BuildListQuery(filter Filter, limit, offset int) (string, []any, error) {

	if limit < 1 || offset < 0 {
		return "", nil, apperr.InvalidQuery("limit must be positive and offset non-negative")
	}

	sortKey := filter.Sort
	if sortKey == "" {
		sortKey = DefaultSort
	}
	orderBy, ok := sortColumns[sortKey]
	if !ok {
		return "", nil, apperr.InvalidQuery(fmt.Sprintf("unknown sort key %q", sortKey))
	}

	var queryBuilder strings.Builder
	var args []any
	argID := 1

	// Window function supplies the total without a second COUNT query.
	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			a.%s, a.%s, a.%s, a.%s, a.%s,
			a.%s, a.%s, a.%s, a.%s, a.%s,
			COUNT(*) OVER() AS total_count
		FROM %s a
		WHERE TRUE
	`,
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
		schema.BlogArticle.Table,
	))

	// Editorial state filtering
	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.%s = $%d", schema.BlogArticle.Status, argID))
		args = append(args, string(filter.Status))
		argID++
	}

	// Category filtering by ID
	if filter.CategoryID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.%s = $%d", schema.BlogArticle.CategoryID, argID))
		args = append(args, *filter.CategoryID)
		argID++
	}

	// Category filtering by slug (resolved via subquery)
	if filter.CategorySlug != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.%s = (SELECT %s FROM %s WHERE %s = $%d)",
			schema.BlogArticle.CategoryID,
			schema.BlogCategory.ID, schema.BlogCategory.Table, schema.BlogCategory.Slug, argID))
		args = append(args, filter.CategorySlug)
		argID++
	}

	// Tag filtering through the junction table; any listed tag matches.
	if len(filter.TagNames) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM %s at
			JOIN %s t ON t.%s = at.%s
			WHERE at.%s = a.%s AND t.%s = ANY($%d)
		)`,
			schema.BlogArticleTag.Table,
			schema.BlogTag.Table, schema.BlogTag.ID, schema.BlogArticleTag.TagID,
			schema.BlogArticleTag.ArticleID, schema.BlogArticle.ID,
			schema.BlogTag.Name, argID))
		args = append(args, filter.TagNames)
		argID++
	}

	// Ownership filtering (used for author dashboards)
	if filter.AuthorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND a.%s = $%d", schema.BlogArticle.AuthorID, argID))
		args = append(args, filter.AuthorID)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s", orderBy))

	// Pagination bounds
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	return queryBuilder.String(), args, nil
}
