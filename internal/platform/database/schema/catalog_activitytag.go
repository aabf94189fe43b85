// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package schema

// ActivityTagTable represents the 'catalog.activitytag' table
type ActivityTagTable struct {
	Table      string
	ActivityID string
	TagID      string
}

// ActivityTag is the schema definition for catalog.activitytag
var ActivityTag = ActivityTagTable{
	Table:      "catalog.activitytag",
	ActivityID: "activityid",
	TagID:      "tagid",
}
