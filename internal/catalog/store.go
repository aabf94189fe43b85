// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package catalog

import "context"

// # Sorting

// Sort is an ordering directive for list queries.
type Sort struct {
	Field string
	Desc  bool
}

// DefaultSort orders by creation time, newest first.
var DefaultSort = Sort{Field: FieldCreatedAt, Desc: true}

// sortableFields whitelists the logical fields list queries may order by.
var sortableFields = map[string]struct{}{
	FieldTitle:     {},
	FieldPrice:     {},
	FieldStartsAt:  {},
	FieldCreatedAt: {},
	FieldUpdatedAt: {},
}

// SortFromFilter resolves the filter's sort request against the whitelist,
// falling back to [DefaultSort] for unknown fields.
func SortFromFilter(filter Filter) Sort {
	if _, ok := sortableFields[filter.Sort]; !ok {
		return DefaultSort
	}
	return Sort{Field: filter.Sort, Desc: filter.SortDir != "asc"}
}

// # Repository Contract

// Repository is the relational query backend as seen by the facade: a
// predicate list in, rows plus a total count out.
//
// Implementations translate the backend-neutral predicates to their native
// query surface; the facade never sees storage column names or SQL.
type Repository interface {
	// Select returns the activities matching all predicates, ordered and
	// paginated, plus the total match count before pagination.
	Select(ctx context.Context, predicates []Predicate, sort Sort, limit, offset int) ([]*Activity, int, error)

	// FindByID fetches a single activity regardless of lifecycle state.
	FindByID(ctx context.Context, id string) (*Activity, error)

	// FindBySlug fetches a single activity by its URL slug.
	FindBySlug(ctx context.Context, slug string) (*Activity, error)

	// Insert persists a new activity and fills its server-assigned timestamps.
	Insert(ctx context.Context, activity *Activity) error

	// UpdateFields applies a partial update; nil fields are untouched.
	// The updated-at timestamp is bumped on every call.
	UpdateFields(ctx context.Context, id string, update *ActivityUpdate) error

	// ReplaceTags replaces the full tag association set of an activity
	// (delete-all-then-reinsert, not a diff).
	ReplaceTags(ctx context.Context, activityID string, tagIDs []int) error

	// SetImageURL records the blob reference for an activity's image and
	// bumps updated-at. Image bytes never pass through this layer.
	SetImageURL(ctx context.Context, id string, imageURL string) error

	// SetDeletionState writes the soft-delete dimension and bumps updated-at.
	SetDeletionState(ctx context.Context, id string, state DeletionState) error

	// SetModerationState writes the moderation dimension and bumps updated-at.
	SetModerationState(ctx context.Context, id string, state ModerationState) error

	// Purge permanently removes the record and its tag associations.
	Purge(ctx context.Context, id string) error

	// ActivityIDsWithTags resolves the ids of activities carrying at least
	// one of the given tags (OR semantics), deduplicated. Read-only.
	ActivityIDsWithTags(ctx context.Context, tagIDs []int) ([]string, error)
}
