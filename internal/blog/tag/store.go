// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package tag

import "context"

// Repository defines the read-side data access contract for tags.
type Repository interface {

	/*
		ListWithCounts returns tags annotated with their published-article
		counts, most-used first, limited to the given number of rows.
		Tags with no published articles are omitted.
	*/
	ListWithCounts(context context.Context, limit int) ([]*Tag, error)

	// FindByName resolves a tag by its exact name.
	FindByName(context context.Context, name string) (*Tag, error)
}
