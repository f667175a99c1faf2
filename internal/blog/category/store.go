// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package category

import "context"

// Repository defines the data access contract for the category taxonomy.
type Repository interface {

	/*
		ListWithCounts returns every category annotated with its
		published-article count, ordered by name.

		Description: One LEFT JOIN with a GROUP BY covers all categories;
		sections with no published articles come back with a zero count
		rather than being dropped.
	*/
	ListWithCounts(context context.Context) ([]*Category, error)

	// FindBySlug returns the category matching the URL identifier.
	FindBySlug(context context.Context, slug string) (*Category, error)

	// Create persists a new category. Name and slug are unique site-wide.
	Create(context context.Context, category *Category) error

	// Update renames an existing category.
	Update(context context.Context, category *Category) error

	/*
		Delete removes a category. Articles filed under it are detached,
		not deleted; the schema nulls their reference.
	*/
	Delete(context context.Context, id int64) error
}
