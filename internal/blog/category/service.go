// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package category

import (
	stdctx "context"
	"strings"

	"github.com/inkwell-cms/inkwell/internal/platform/validate"
	"github.com/inkwell-cms/inkwell/pkg/slug"
)

const (
	maxNameLen        = 100
	maxDescriptionLen = 500
)

// Service orchestrates the business logic for the category taxonomy.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListWithCounts returns the browse view: every category with its
// published-article count, empty sections included.
func (service *Service) ListWithCounts(context stdctx.Context) ([]*Category, error) {
	return service.repo.ListWithCounts(context)
}

// GetBySlug returns a single category by its URL identifier.
func (service *Service) GetBySlug(context stdctx.Context, slugValue string) (*Category, error) {
	return service.repo.FindBySlug(context, slugValue)
}

/*
Create validates and persists a new category.

Description: The slug defaults to one derived from the name. Uniqueness of
both name and slug is enforced by the store's constraints, surfacing as a
Conflict rather than being pre-checked.
*/
func (service *Service) Create(context stdctx.Context, input Input) (*Category, error) {

	category, err := normalize(input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update renames an existing category.
func (service *Service) Update(context stdctx.Context, id int64, input Input) (*Category, error) {

	category, err := normalize(input)
	if err != nil {
		return nil, err
	}
	category.ID = id

	if err := service.repo.Update(context, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category; articles filed under it are detached by the store.
func (service *Service) Delete(context stdctx.Context, id int64) error {
	return service.repo.Delete(context, id)
}

// normalize trims and validates caller input into a persistable entity.
func normalize(input Input) (*Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.TrimSpace(input.Slug)
	input.Description = strings.TrimSpace(input.Description)

	if input.Slug == "" && input.Name != "" {
		input.Slug = slug.From(input.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLen)
	validator.Required(FieldSlug, input.Slug).MaxLen(FieldSlug, input.Slug, maxNameLen).Slug(FieldSlug, input.Slug)
	validator.MaxLen(FieldDescription, input.Description, maxDescriptionLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Category{Name: input.Name, Slug: input.Slug, Description: input.Description}, nil
}
