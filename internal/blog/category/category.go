// Copyright (c) 2026 Inkwell CMS. All rights reserved.

/*
Package category manages the editorial sections articles are filed under.

Categories are a flat, admin-curated taxonomy. Browse listings annotate
each category with its published-article count so empty sections can be
rendered honestly rather than hidden.
*/
package category

import "time"

// Field names used in validation errors and JSON payloads.
const (
	FieldName        = "name"
	FieldSlug        = "slug"
	FieldDescription = "description"
)

// Category is an editorial section of the site.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// ArticleCount is the number of published articles filed under this
	// category. Populated by the annotated listing only.
	ArticleCount int `json:"article_count"`
}

// Input carries the caller-supplied fields for creating or renaming a category.
// Description is optional display text for the section page.
type Input struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
