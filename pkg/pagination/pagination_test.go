// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/pkg/pagination"
)

/*
TestParams_Clamp verifies the leniency policy: out-of-range values are
clamped to the nearest valid value, never rejected.
*/
func TestParams_Clamp(t *testing.T) {
	tests := []struct {
		name string
		in   pagination.Params
		want pagination.Params
	}{
		{"valid_unchanged", pagination.Params{Page: 3, Limit: 50}, pagination.Params{Page: 3, Limit: 50}},
		{"zero_page", pagination.Params{Page: 0, Limit: 20}, pagination.Params{Page: 1, Limit: 20}},
		{"negative_page", pagination.Params{Page: -5, Limit: 20}, pagination.Params{Page: 1, Limit: 20}},
		{"zero_limit", pagination.Params{Page: 1, Limit: 0}, pagination.Params{Page: 1, Limit: 1}},
		{"oversized_limit", pagination.Params{Page: 1, Limit: 5000}, pagination.Params{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

/*
TestParams_Offset verifies the SQL offset derivation.
*/
func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
}

/*
TestFromRequest verifies query parsing with defaults and clamping.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 20}},
		{"explicit", "page=4&limit=10", pagination.Params{Page: 4, Limit: 10}},
		{"unparseable_falls_back", "page=abc&limit=xyz", pagination.Params{Page: 1, Limit: 20}},
		{"clamped", "page=-1&limit=9999", pagination.Params{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/activities?"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(r))
		})
	}
}

/*
TestNewMeta verifies total page calculation.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 45)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 45, meta.Total)

	assert.Equal(t, 0, pagination.NewMeta(1, 0, 10).TotalPages)
	assert.Equal(t, 0, pagination.NewMeta(1, 20, 0).TotalPages)
}
