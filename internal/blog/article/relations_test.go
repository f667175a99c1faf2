// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package article

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFetcher records every batch call so tests can assert the loader
// issues a fixed number of queries regardless of batch size.
type countingFetcher struct {
	authorCalls   int
	categoryCalls int
	tagCalls      int
	commentCalls  int

	lastAuthorIDs   []string
	lastCategoryIDs []int64

	authors    map[string]*AuthorRef
	categories map[int64]*CategoryRef
	tags       map[string][]TagRef
	comments   map[string][]Comment
}

func (f *countingFetcher) AuthorsByIDs(_ context.Context, ids []string) (map[string]*AuthorRef, error) {
	f.authorCalls++
	f.lastAuthorIDs = ids
	return f.authors, nil
}

func (f *countingFetcher) CategoriesByIDs(_ context.Context, ids []int64) (map[int64]*CategoryRef, error) {
	f.categoryCalls++
	f.lastCategoryIDs = ids
	return f.categories, nil
}

func (f *countingFetcher) TagsByArticleIDs(_ context.Context, _ []string) (map[string][]TagRef, error) {
	f.tagCalls++
	return f.tags, nil
}

func (f *countingFetcher) CommentsByArticleIDs(_ context.Context, _ []string, _ bool) (map[string][]Comment, error) {
	f.commentCalls++
	return f.comments, nil
}

func intPtr(v int64) *int64 { return &v }

func TestLoadRelations_ConstantQueryCount(t *testing.T) {
	// Fifty articles by two authors in one category must still produce
	// exactly one fetch per relation kind.
	var articles []*Article
	for i := 0; i < 50; i++ {
		author := "author-a"
		if i%2 == 0 {
			author = "author-b"
		}
		articles = append(articles, &Article{ID: string(rune('a' + i%26)), AuthorID: author, CategoryID: intPtr(1)})
	}

	fetcher := &countingFetcher{
		authors:    map[string]*AuthorRef{"author-a": {ID: "author-a"}, "author-b": {ID: "author-b"}},
		categories: map[int64]*CategoryRef{1: {ID: 1, Name: "News"}},
	}

	err := LoadRelations(context.Background(), fetcher, articles, LoadListing)
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.authorCalls)
	assert.Equal(t, 1, fetcher.categoryCalls)
	assert.Equal(t, 1, fetcher.tagCalls)
	assert.Equal(t, 0, fetcher.commentCalls)

	// Keys must be deduplicated before the fetch.
	assert.ElementsMatch(t, []string{"author-a", "author-b"}, fetcher.lastAuthorIDs)
	assert.Equal(t, []int64{1}, fetcher.lastCategoryIDs)
}

func TestLoadRelations_JoinsBackByKey(t *testing.T) {
	articles := []*Article{
		{ID: "art-1", AuthorID: "u1", CategoryID: intPtr(1)},
		{ID: "art-2", AuthorID: "u2"},
	}

	fetcher := &countingFetcher{
		authors:    map[string]*AuthorRef{"u1": {ID: "u1", Username: "ada"}, "u2": {ID: "u2", Username: "brin"}},
		categories: map[int64]*CategoryRef{1: {ID: 1, Name: "News", Slug: "news"}},
		tags: map[string][]TagRef{
			"art-1": {{ID: 2, Name: "zig"}, {ID: 1, Name: "go"}},
		},
	}

	err := LoadRelations(context.Background(), fetcher, articles, LoadListing)
	require.NoError(t, err)

	assert.Equal(t, "ada", articles[0].Author.Username)
	assert.Equal(t, "brin", articles[1].Author.Username)
	assert.Equal(t, "News", articles[0].Category.Name)
	assert.Nil(t, articles[1].Category)

	// Tags arrive sorted by name; tag-less articles get an empty slice.
	require.Len(t, articles[0].Tags, 2)
	assert.Equal(t, "go", articles[0].Tags[0].Name)
	assert.NotNil(t, articles[1].Tags)
	assert.Empty(t, articles[1].Tags)
}

func TestLoadRelations_DanglingCategoryIsNil(t *testing.T) {
	// A category ID pointing at a deleted category resolves to nil, not an error.
	articles := []*Article{{ID: "art-1", AuthorID: "u1", CategoryID: intPtr(99)}}

	fetcher := &countingFetcher{
		authors:    map[string]*AuthorRef{"u1": {ID: "u1"}},
		categories: map[int64]*CategoryRef{},
	}

	err := LoadRelations(context.Background(), fetcher, articles, LoadListing)
	require.NoError(t, err)
	assert.Nil(t, articles[0].Category)
}

func TestLoadRelations_SkipsCategoryQueryWhenAllNil(t *testing.T) {
	articles := []*Article{{ID: "art-1", AuthorID: "u1"}}

	fetcher := &countingFetcher{authors: map[string]*AuthorRef{"u1": {ID: "u1"}}}

	err := LoadRelations(context.Background(), fetcher, articles, LoadSpec{Author: true, Category: true})
	require.NoError(t, err)
	assert.Equal(t, 0, fetcher.categoryCalls)
}

func TestLoadRelations_CommentsSortedByCreation(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	articles := []*Article{{ID: "art-1", AuthorID: "u1"}}

	fetcher := &countingFetcher{
		authors: map[string]*AuthorRef{"u1": {ID: "u1"}},
		comments: map[string][]Comment{
			"art-1": {
				{ID: "c2", CreatedAt: base.Add(time.Hour)},
				{ID: "c1", CreatedAt: base},
			},
		},
	}

	err := LoadRelations(context.Background(), fetcher, articles, LoadPublic)
	require.NoError(t, err)

	require.Len(t, articles[0].Comments, 2)
	assert.Equal(t, "c1", articles[0].Comments[0].ID)
	assert.Equal(t, "c2", articles[0].Comments[1].ID)
}

func TestLoadRelations_EmptyBatchIsNoop(t *testing.T) {
	fetcher := &countingFetcher{}

	err := LoadRelations(context.Background(), fetcher, nil, LoadAll)
	require.NoError(t, err)

	assert.Zero(t, fetcher.authorCalls)
	assert.Zero(t, fetcher.tagCalls)
	assert.Zero(t, fetcher.commentCalls)
}
