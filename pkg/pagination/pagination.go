// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how the resulting metadata is delivered in the API response envelope.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MinLimit is the lower bound for items per page.
	MinLimit = 1
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

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

// Clamp normalizes the params to valid bounds.
//
// # Leniency policy
//
// Out-of-range values are clamped to the nearest valid value, never rejected:
// a page below 1 becomes [DefaultPage], an explicit limit below [MinLimit]
// becomes [MinLimit], and a limit above [MaxLimit] becomes [MaxLimit]. This is
// a deliberate policy so sloppy callers still get a usable page.
func (p Params) Clamp() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}

	if p.Limit < MinLimit {
		p.Limit = MinLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	return p
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// An absent or unparseable limit falls back to [DefaultLimit]; explicit values
// are clamped per [Params.Clamp].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	return Params{Page: page, Limit: limit}.Clamp()
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
