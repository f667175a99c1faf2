// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package article

import (
	"context"
	"sort"

	"github.com/inkwell-cms/inkwell/pkg/slice"
)

// # Relation Loading

// LoadSpec selects which relations to attach to a batch of articles.
// The zero value loads nothing.
type LoadSpec struct {
	Author       bool
	Category     bool
	Tags         bool
	Comments     bool
	ApprovedOnly bool // restrict Comments to approved ones
}

// LoadAll attaches every relation, unapproved comments included.
// Used on the single-article detail path for the owning author.
var LoadAll = LoadSpec{Author: true, Category: true, Tags: true, Comments: true}

// LoadPublic attaches the relations shown to readers: approved comments only.
var LoadPublic = LoadSpec{Author: true, Category: true, Tags: true, Comments: true, ApprovedOnly: true}

// LoadListing attaches the relations the list view needs; comments are
// summarized by count there, not embedded.
var LoadListing = LoadSpec{Author: true, Category: true, Tags: true}

/*
LoadRelations attaches the requested related records to a batch of articles.

Description: The loader runs a fixed number of queries regardless of batch
size. For each requested relation kind it collects the distinct keys across
the whole batch, fetches the related records in one call, and joins them
back in memory. An article referencing a missing category simply gets a nil
Category; dangling references never fail the load.

Parameters:
  - context: context.Context
  - fetcher: RelationFetcher (batch read access)
  - articles: []*Article (mutated in place)
  - spec: LoadSpec (which relations to attach)

Returns:
  - error: The first fetch failure, with no partial visibility guarantees
*/
func LoadRelations(context context.Context, fetcher RelationFetcher, articles []*Article, spec LoadSpec) error {

	if len(articles) == 0 {
		return nil
	}

	// Key collection across the whole batch
	articleIDs := slice.Map(articles, func(a *Article) string { return a.ID })

	if spec.Author {
		authorIDs := slice.Uniq(slice.Map(articles, func(a *Article) string { return a.AuthorID }))

		authors, err := fetcher.AuthorsByIDs(context, authorIDs)
		if err != nil {
			return err
		}
		for _, a := range articles {
			a.Author = authors[a.AuthorID]
		}
	}

	if spec.Category {
		var categoryIDs []int64
		for _, a := range articles {
			if a.CategoryID != nil {
				categoryIDs = append(categoryIDs, *a.CategoryID)
			}
		}
		categoryIDs = slice.Uniq(categoryIDs)

		// Skip the query entirely when no article has a category.
		if len(categoryIDs) > 0 {
			categories, err := fetcher.CategoriesByIDs(context, categoryIDs)
			if err != nil {
				return err
			}
			for _, a := range articles {
				if a.CategoryID != nil {
					a.Category = categories[*a.CategoryID]
				}
			}
		}
	}

	if spec.Tags {
		tags, err := fetcher.TagsByArticleIDs(context, articleIDs)
		if err != nil {
			return err
		}
		for _, a := range articles {
			a.Tags = tags[a.ID]
			if a.Tags == nil {
				a.Tags = []TagRef{}
			}
			sort.Slice(a.Tags, func(i, j int) bool { return a.Tags[i].Name < a.Tags[j].Name })
		}
	}

	if spec.Comments {
		comments, err := fetcher.CommentsByArticleIDs(context, articleIDs, spec.ApprovedOnly)
		if err != nil {
			return err
		}
		for _, a := range articles {
			a.Comments = comments[a.ID]
			sort.Slice(a.Comments, func(i, j int) bool {
				return a.Comments[i].CreatedAt.Before(a.Comments[j].CreatedAt)
			})
		}
	}

	return nil
}
