// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package tag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

type fakeRepo struct {
	tags      []*Tag
	lastLimit int
}

func (r *fakeRepo) ListWithCounts(_ context.Context, limit int) ([]*Tag, error) {
	r.lastLimit = limit
	if limit < len(r.tags) {
		return r.tags[:limit], nil
	}
	return r.tags, nil
}

func (r *fakeRepo) FindByName(_ context.Context, name string) (*Tag, error) {
	for _, t := range r.tags {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, apperr.NotFound("tag")
}

func TestService_ListPopular_ClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "zero falls back to the default", limit: 0, wantLimit: defaultCloudSize},
		{name: "negative falls back to the default", limit: -5, wantLimit: defaultCloudSize},
		{name: "above the ceiling is clamped", limit: 500, wantLimit: defaultCloudSize},
		{name: "in range passes through", limit: 10, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			service := NewService(repo)

			_, err := service.ListPopular(context.Background(), tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, repo.lastLimit)
		})
	}
}

func TestService_GetByName_TrimsInput(t *testing.T) {
	repo := &fakeRepo{tags: []*Tag{{ID: 1, Name: "golang", ArticleCount: 3}}}
	service := NewService(repo)

	found, err := service.GetByName(context.Background(), "  golang  ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.ID)

	_, err = service.GetByName(context.Background(), "rust")
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_GetByName_BlankIsNotFound(t *testing.T) {
	service := NewService(&fakeRepo{})

	// A blank name never reaches the store.
	_, err := service.GetByName(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
