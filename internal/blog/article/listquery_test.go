// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package article

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

func TestBuildListQuery_NoFilters(t *testing.T) {
	sql, args, err := BuildListQuery(Filter{}, 20, 0)
	require.NoError(t, err)

	assert.Contains(t, sql, "COUNT(*) OVER() AS total_count")
	assert.Contains(t, sql, "ORDER BY a.publishedat DESC NULLS LAST")
	assert.Contains(t, sql, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{20, 0}, args)
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	categoryID := int64(7)
	filter := Filter{
		Status:     StatusPublished,
		CategoryID: &categoryID,
		TagNames:   []string{"golang", "postgres"},
		AuthorID:   "0198c1c3-9f6a-7000-8000-000000000001",
		Sort:       "title",
	}

	sql, args, err := BuildListQuery(filter, 10, 30)
	require.NoError(t, err)

	assert.Contains(t, sql, "a.status = $1")
	assert.Contains(t, sql, "a.categoryid = $2")
	assert.Contains(t, sql, "t.name = ANY($3)")
	assert.Contains(t, sql, "a.authorid = $4")
	assert.Contains(t, sql, "LIMIT $5 OFFSET $6")
	assert.Equal(t, []any{"published", int64(7), []string{"golang", "postgres"}, filter.AuthorID, 10, 30}, args)

	// Placeholders must be dense: every $n in the SQL has a bound argument.
	for i := 1; i <= len(args); i++ {
		assert.Contains(t, sql, "$"+string(rune('0'+i)))
	}
}

func TestBuildListQuery_CategorySlug(t *testing.T) {
	sql, args, err := BuildListQuery(Filter{CategorySlug: "cooking"}, 20, 0)
	require.NoError(t, err)

	assert.Contains(t, sql, "SELECT id FROM blog.category WHERE slug = $1")
	assert.Equal(t, "cooking", args[0])
}

func TestBuildListQuery_SortWhitelist(t *testing.T) {
	tests := []struct {
		sort    string
		wantErr bool
		orderBy string
	}{
		{sort: "", orderBy: "a.publishedat DESC NULLS LAST"},
		{sort: "newest", orderBy: "a.publishedat DESC NULLS LAST"},
		{sort: "oldest", orderBy: "a.publishedat ASC NULLS LAST"},
		{sort: "recent", orderBy: "a.createdat DESC"},
		{sort: "title", orderBy: "a.title ASC"},
		{sort: "views", wantErr: true},
		{sort: "createdat; DROP TABLE blog.article", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("sort="+tt.sort, func(t *testing.T) {
			sql, _, err := BuildListQuery(Filter{Sort: tt.sort}, 20, 0)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsCode(err, "INVALID_QUERY"))
				return
			}
			require.NoError(t, err)
			assert.Contains(t, sql, "ORDER BY "+tt.orderBy)
			// The raw sort key must never reach the SQL text.
			assert.False(t, strings.Contains(sql, "DROP TABLE"))
		})
	}
}

func TestBuildListQuery_RejectsBadBounds(t *testing.T) {
	_, _, err := BuildListQuery(Filter{}, 0, 0)
	assert.True(t, apperr.IsCode(err, "INVALID_QUERY"))

	_, _, err = BuildListQuery(Filter{}, 20, -1)
	assert.True(t, apperr.IsCode(err, "INVALID_QUERY"))
}
