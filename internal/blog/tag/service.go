// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package tag

import (
	stdctx "context"
	"strings"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

// defaultCloudSize bounds the tag-cloud listing.
const defaultCloudSize = 50

// Service orchestrates read-side tag browsing.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListPopular returns the most-used tags with their published-article counts.
func (service *Service) ListPopular(context stdctx.Context, limit int) ([]*Tag, error) {
	if limit <= 0 || limit > defaultCloudSize {
		limit = defaultCloudSize
	}
	return service.repo.ListWithCounts(context, limit)
}

// GetByName resolves a tag by its exact, trimmed name.
func (service *Service) GetByName(context stdctx.Context, name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.NotFound("tag")
	}
	return service.repo.FindByName(context, name)
}
