// Copyright (c) 2026 Inkwell CMS. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"errors"
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// ErrInvalidParam signals a page or limit value that cannot be honored,
// such as a negative number or a non-integer. Callers map it to a 400.
var ErrInvalidParam = errors.New("pagination: invalid page or limit parameter")

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta constructs pagination metadata for a response.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Semantics
//
// Missing parameters fall back to [DefaultPage] and [DefaultLimit]. A limit
// above [MaxLimit] is clamped rather than rejected. Negative, zero, or
// non-integer values are rejected with [ErrInvalidParam] so the caller can
// return a 400 instead of silently serving a page the client did not ask for.
func FromRequest(r *http.Request) (Params, error) {
	page, err := parseIntParam(r, "page", DefaultPage)
	if err != nil {
		return Params{}, err
	}

	limit, err := parseIntParam(r, "limit", DefaultLimit)
	if err != nil {
		return Params{}, err
	}

	if page < 1 || limit < 1 {
		return Params{}, ErrInvalidParam
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}, nil
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidParam
	}

	return n, nil
}
