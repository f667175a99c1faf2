// Copyright (c) 2026 Inkwell CMS. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkwell-cms/inkwell/internal/platform/apperr"
)

// Postgres SQLSTATE classes relevant to the access layer.
const (
	// codeUniqueViolation is raised when an INSERT or UPDATE breaks a
	// unique constraint (duplicate slug, category name, tag name).
	codeUniqueViolation = "23505"
	// codeForeignKeyViolation is raised when a referenced row is absent.
	codeForeignKeyViolation = "23503"
	// codeQueryCanceled is raised when statement_timeout aborts a query.
	codeQueryCanceled = "57014"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified upstream; pass through unchanged.
	if apperr.IsAppError(err) {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations carry a SQLSTATE.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperr.Conflict("Resource already exists")
		case codeForeignKeyViolation:
			return apperr.ValidationError("Referenced resource does not exist")
		case codeQueryCanceled:
			return apperr.StoreUnavailable(err)
		}
	}

	// 3. Transport faults and timeouts are retryable by the caller.
	if isUnavailable(err) {
		return apperr.StoreUnavailable(err)
	}

	// 4. Unknown query errors become Internal Server Errors.
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
//
// The atomic writer uses this to distinguish an expected find-or-create race
// from a fatal storage fault.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}

// isUnavailable reports whether err indicates the store is unreachable
// rather than the query being wrong.
func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
