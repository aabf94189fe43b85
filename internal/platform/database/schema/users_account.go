// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Email       string
	Password    string
	Role        string
	IsApproved  string
	DisplayName string
	Phone       string
	LastLoginAt string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Email:       "email",
	Password:    "passwordhash",
	Role:        "role",
	IsApproved:  "isapproved",
	DisplayName: "displayname",
	Phone:       "phone",
	LastLoginAt: "lastloginat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.Role, t.IsApproved, t.DisplayName,
		t.Phone, t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
