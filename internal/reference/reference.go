// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

/*
Package reference manages the "Master Data" of the Puuha catalog.

It handles retrieval of the immutable lookup entities shared across all
activities: categories, tags, and activity types. Reference data has no
lifecycle — no ownership, no moderation, no soft-delete — and is served
read-only through a Redis read-through cache.

This package provides the "Common Language" used by the catalog to
categorize content.
*/
package reference

// # Reference Entities

// Category is a top-level grouping for activities (sports, music, ...).
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

// Tag is a free-form categorization attribute applied to activities.
type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ActivityType distinguishes the shape of an activity (event, club, camp, ...).
type ActivityType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
