// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package schema

// CatalogActivityTable represents the 'catalog.activity' table
type CatalogActivityTable struct {
	Table            string
	ID               string
	Title            string
	Description      string
	ShortDescription string
	CategoryID       string
	ActivityType     string
	Location         string
	Address          string
	Latitude         string
	Longitude        string
	Price            string
	Currency         string
	ImageURL         string
	StartsAt         string
	EndsAt           string
	MinParticipants  string
	MaxParticipants  string
	MinAge           string
	MaxAge           string
	ContactEmail     string
	ContactPhone     string
	ExternalLink     string
	OwnerID          string
	Slug             string
	ModerationState  string
	DeletionState    string
	CreatedAt        string
	UpdatedAt        string
}

// CatalogActivity is the schema definition for catalog.activity
var CatalogActivity = CatalogActivityTable{
	Table:            "catalog.activity",
	ID:               "id",
	Title:            "title",
	Description:      "description",
	ShortDescription: "shortdescription",
	CategoryID:       "categoryid",
	ActivityType:     "activitytype",
	Location:         "location",
	Address:          "address",
	Latitude:         "latitude",
	Longitude:        "longitude",
	Price:            "price",
	Currency:         "currency",
	ImageURL:         "imageurl",
	StartsAt:         "startsat",
	EndsAt:           "endsat",
	MinParticipants:  "minparticipants",
	MaxParticipants:  "maxparticipants",
	MinAge:           "minage",
	MaxAge:           "maxage",
	ContactEmail:     "contactemail",
	ContactPhone:     "contactphone",
	ExternalLink:     "externallink",
	OwnerID:          "ownerid",
	Slug:             "slug",
	ModerationState:  "moderationstate",
	DeletionState:    "deletionstate",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

func (t CatalogActivityTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.ShortDescription, t.CategoryID,
		t.ActivityType, t.Location, t.Address, t.Latitude, t.Longitude,
		t.Price, t.Currency, t.ImageURL, t.StartsAt, t.EndsAt,
		t.MinParticipants, t.MaxParticipants, t.MinAge, t.MaxAge,
		t.ContactEmail, t.ContactPhone, t.ExternalLink, t.OwnerID, t.Slug,
		t.ModerationState, t.DeletionState, t.CreatedAt, t.UpdatedAt,
	}
}
