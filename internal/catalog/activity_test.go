// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package catalog_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/catalog"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/pkg/pointer"
)

/*
TestTruncate verifies rune-safe truncation with the ellipsis counted
against the limit.
*/
func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"short_unchanged", "hello", 10, "hello"},
		{"exact_limit_unchanged", "hello", 5, "hello"},
		{"truncated_with_ellipsis", "hello world", 8, "hello w…"},
		{"multibyte_not_split", "päiväkoti on kiva paikka", 10, "päiväkoti…"},
		{"limit_one_is_ellipsis_only", "hello", 1, "…"},
		{"zero_limit_empty", "hello", 0, ""},
		{"negative_limit_empty", "hello", -3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Truncate(tt.input, tt.limit)
			assert.Equal(t, tt.want, got)
			if tt.limit > 0 {
				assert.LessOrEqual(t, utf8.RuneCountInString(got), tt.limit)
			}
		})
	}
}

/*
TestDeriveShortDescription verifies derivation only fills a blank short
description and respects the length cap.
*/
func TestDeriveShortDescription(t *testing.T) {
	t.Run("explicit_short_description_kept", func(t *testing.T) {
		activity := &catalog.Activity{
			Description:      strings.Repeat("x", 500),
			ShortDescription: "hand-written summary",
		}
		activity.DeriveShortDescription()
		assert.Equal(t, "hand-written summary", activity.ShortDescription)
	})

	t.Run("derived_from_description", func(t *testing.T) {
		activity := &catalog.Activity{Description: strings.Repeat("a", 500)}
		activity.DeriveShortDescription()

		assert.Equal(t, catalog.ShortDescriptionLimit, utf8.RuneCountInString(activity.ShortDescription))
		assert.True(t, strings.HasSuffix(activity.ShortDescription, "…"))
	})

	t.Run("short_description_fits_without_ellipsis", func(t *testing.T) {
		activity := &catalog.Activity{Description: "A weekly chess club."}
		activity.DeriveShortDescription()
		assert.Equal(t, "A weekly chess club.", activity.ShortDescription)
	})
}

/*
TestActivityUpdate_IsEmpty verifies the emptiness check includes every
updatable field, explicit clearing, and tag replacement.
*/
func TestActivityUpdate_IsEmpty(t *testing.T) {
	assert.True(t, (&catalog.ActivityUpdate{}).IsEmpty())
	assert.False(t, (&catalog.ActivityUpdate{Title: pointer.To("new")}).IsEmpty())
	// An empty non-nil tag list means "remove all tags", not "no change".
	assert.False(t, (&catalog.ActivityUpdate{TagIDs: []int{}}).IsEmpty())

	// Every explicit-clear flag is a change on its own.
	clears := []catalog.ActivityUpdate{
		{ClearCoordinates: true},
		{ClearPrice: true},
		{ClearStarts: true},
		{ClearEnds: true},
		{ClearMinParticipants: true},
		{ClearMaxParticipants: true},
		{ClearMinAge: true},
		{ClearMaxAge: true},
	}
	for _, update := range clears {
		assert.False(t, update.IsEmpty())
		assert.True(t, update.HasClears())
	}
}

/*
TestSortFromFilter verifies whitelist enforcement and the default order.
*/
func TestSortFromFilter(t *testing.T) {
	assert.Equal(t, catalog.DefaultSort, catalog.SortFromFilter(catalog.Filter{}))
	assert.Equal(t, catalog.DefaultSort, catalog.SortFromFilter(catalog.Filter{Sort: "owner_id"}))

	sort := catalog.SortFromFilter(catalog.Filter{Sort: catalog.FieldPrice, SortDir: "asc"})
	assert.Equal(t, catalog.Sort{Field: catalog.FieldPrice, Desc: false}, sort)

	sort = catalog.SortFromFilter(catalog.Filter{Sort: catalog.FieldTitle})
	assert.True(t, sort.Desc)
}

/*
TestIsOwnedBy verifies the empty-subject guard.
*/
func TestIsOwnedBy(t *testing.T) {
	activity := &catalog.Activity{OwnerID: "org-1"}
	assert.True(t, activity.IsOwnedBy("org-1"))
	assert.False(t, activity.IsOwnedBy("org-2"))

	orphan := &catalog.Activity{OwnerID: ""}
	assert.False(t, orphan.IsOwnedBy(""))
}
