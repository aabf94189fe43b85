// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package schema

// RefTagTable represents the 'ref.tag' table
type RefTagTable struct {
	Table string
	ID    string
	Name  string
	Color string
}

// RefTag is the schema definition for ref.tag
var RefTag = RefTagTable{
	Table: "ref.tag",
	ID:    "id",
	Name:  "name",
	Color: "color",
}

func (t RefTagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Color}
}
