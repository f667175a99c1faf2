// Copyright (c) 2026 Inkwell CMS. All rights reserved.

/*
Package tag exposes the read side of the free-form tag folksonomy.

Tags are created implicitly while authoring articles; this package only
lists and resolves them for browsing. There is no tag ownership: deleting
an article unlinks its tags but never deletes the tag itself.
*/
package tag

import "time"

// Tag is a free-form label attached to articles by their authors.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// ArticleCount is the number of published articles carrying this tag.
	// Populated by the annotated listing only.
	ArticleCount int `json:"article_count"`
}
