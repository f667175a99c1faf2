// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package dberr

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

func TestWrapClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{
			name:     "no rows maps to not found",
			err:      pgx.ErrNoRows,
			wantCode: "NOT_FOUND",
		},
		{
			name:     "unique violation maps to conflict",
			err:      &pgconn.PgError{Code: "23505"},
			wantCode: "CONFLICT",
		},
		{
			name:     "foreign key violation maps to validation error",
			err:      &pgconn.PgError{Code: "23503"},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "statement timeout maps to store unavailable",
			err:      &pgconn.PgError{Code: "57014"},
			wantCode: "STORE_UNAVAILABLE",
		},
		{
			name:     "context deadline maps to store unavailable",
			err:      context.DeadlineExceeded,
			wantCode: "STORE_UNAVAILABLE",
		},
		{
			name:     "network fault maps to store unavailable",
			err:      &net.OpError{Op: "dial", Err: errors.New("connection refused")},
			wantCode: "STORE_UNAVAILABLE",
		},
		{
			name:     "unknown errors map to internal",
			err:      errors.New("unexpected scan failure"),
			wantCode: "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, "test_action")

			ae := apperr.As(wrapped)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestWrapNilPassesThrough(t *testing.T) {
	assert.NoError(t, Wrap(nil, "test_action"))
}

func TestWrapPreservesExistingAppError(t *testing.T) {
	original := apperr.Conflict("An article with this slug already exists")

	wrapped := Wrap(original, "create_article")

	assert.Same(t, original, apperr.As(wrapped))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
}
