// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package schema

// RefCategoryTable represents the 'ref.category' table
type RefCategoryTable struct {
	Table       string
	ID          string
	Name        string
	Icon        string
	Description string
}

// RefCategory is the schema definition for ref.category
var RefCategory = RefCategoryTable{
	Table:       "ref.category",
	ID:          "id",
	Name:        "name",
	Icon:        "icon",
	Description: "description",
}

func (t RefCategoryTable) Columns() []string {
	return []string{t.ID, t.Name, t.Icon, t.Description}
}
