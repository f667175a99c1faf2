// Copyright (c) 2026 Inkwell CMS. All rights reserved.

/*
Package article defines the core domain entities for the Inkwell publishing
platform.

It manages the lifecycle of editorial content from draft to publication,
including categorization, free-form tagging, and reader comments.

Core Responsibility:

  - Lifecycle: Defines statuses (Draft, Published) and the publication transition.
  - Discovery: Manages tags and category placement for browsing and filtering.
  - Conversation: Tracks reader comments attached to each article.

This package acts as the source of truth for all content-related data models.
*/
package article

import "time"

// # Domain Enums

// Status represents the editorial state of an article.
type Status string

const (
	// StatusDraft indicates the article is visible only to its author.
	StatusDraft Status = "draft"

	// StatusPublished indicates the article is live on the public site.
	StatusPublished Status = "published"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished:
		return true
	}
	return false
}

// # Field Identifiers

// Field names used in validation errors and JSON payloads.
const (
	FieldTitle      = "title"
	FieldSlug       = "slug"
	FieldBody       = "body"
	FieldStatus     = "status"
	FieldCategoryID = "category_id"
	FieldTags       = "tags"
	FieldPage       = "page"
	FieldSort       = "sort"
)

// # Core Entities

// Article is the central aggregate of the Inkwell domain.
// It represents a single piece of editorial content.
type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"` // URL-safe identifier, unique site-wide
	Body        string     `json:"body"`
	Status      Status     `json:"status"`
	AuthorID    string     `json:"author_id"`
	CategoryID  *int64     `json:"category_id,omitempty"` // nil when uncategorized
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// # Loaded Relations
	// Populated by the relation loader after the row fetch; never written
	// back to the article table directly.
	Author   *AuthorRef   `json:"author,omitempty"`
	Category *CategoryRef `json:"category,omitempty"`
	Tags     []TagRef     `json:"tags"`
	Comments []Comment    `json:"comments,omitempty"`

	// CommentCount summarizes the conversation on list views, where
	// embedding every comment would be wasteful.
	CommentCount int `json:"comment_count"`
}

// IsPublished reports whether the article is visible to readers.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

// AuthorRef is the embedded view of an author attached to an article.
type AuthorRef struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// CategoryRef is the embedded view of a category attached to an article.
type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// TagRef is the embedded view of a tag attached to an article.
type TagRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Comment is a reader response attached to one article. Comments are
// managed through the article aggregate; they have no standalone endpoint.
// AuthorName is the commenter's display name, joined from the account row
// at read time rather than stored.
type Comment struct {
	ID         string    `json:"id"`
	ArticleID  string    `json:"article_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// # Query Criteria

// Filter holds the list criteria accepted by the article listing.
// Zero values mean "no constraint".
type Filter struct {
	Status       Status   // exact editorial state
	CategoryID   *int64   // exact category placement
	CategorySlug string   // category resolved by slug
	TagNames     []string // articles carrying any of these tags
	AuthorID     string   // articles owned by this author
	Sort         string   // one of the whitelisted sort keys
}

// # Write Payloads

// CreateInput carries the caller-supplied fields for a new article.
// The author identity always comes from the authenticated request,
// never from the payload.
type CreateInput struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Body       string   `json:"body"`
	Status     Status   `json:"status"`
	CategoryID *int64   `json:"category_id"`
	Tags       []string `json:"tags"`
}

// UpdateInput carries a partial update. Nil fields are left untouched;
// Tags replaces the full tag set when non-nil.
type UpdateInput struct {
	Title         *string  `json:"title"`
	Body          *string  `json:"body"`
	CategoryID    *int64   `json:"category_id"`
	ClearCategory bool     `json:"clear_category"`
	Tags          []string `json:"tags"`
}

// CommentInput carries the caller-supplied fields for a new comment.
// The commenter's identity comes from the authenticated request.
type CommentInput struct {
	Body string `json:"body"`
}
