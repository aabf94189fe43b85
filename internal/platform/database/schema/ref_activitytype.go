// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package schema

// RefActivityTypeTable represents the 'ref.activitytype' table
type RefActivityTypeTable struct {
	Table string
	ID    string
	Name  string
}

// RefActivityType is the schema definition for ref.activitytype
var RefActivityType = RefActivityTypeTable{
	Table: "ref.activitytype",
	ID:    "id",
	Name:  "name",
}

func (t RefActivityTypeTable) Columns() []string {
	return []string{t.ID, t.Name}
}
