// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

/*
Package catalog implements the activity catalog access layer.

It is the one subsystem of the platform with real decision logic: turning
user-facing filters, the requester's identity and role, and a record's
lifecycle state into a correct, minimal query against the backing store, and
enforcing the soft-delete and moderation lifecycles consistently across every
entry point.

Components, leaf-first:

  - Predicate builder: lowers a [Filter] into a backend-neutral predicate list.
  - Tag resolution: dependent lookup folding tag filters into an id inclusion.
  - Visibility policy: mandatory predicates / denials per role and view.
  - Lifecycle state machine: soft-delete and moderation transitions.
  - Service: the facade composing all of the above per public operation.
*/
package catalog

import (
	"strings"
	"time"
	"unicode/utf8"
)

// # Lifecycle States

// DeletionState is the soft-delete dimension of an activity's lifecycle.
//
// It is kept strictly separate from [ModerationState]: the two dimensions are
// orthogonal and must never be conflated into one combined enum.
type DeletionState string

const (
	// DeletionActive marks a normally visible record.
	DeletionActive DeletionState = "active"
	// DeletionTrashed marks a soft-deleted record, recoverable via restore.
	DeletionTrashed DeletionState = "trashed"
)

// ModerationState is the approval dimension of an activity's lifecycle.
type ModerationState string

const (
	// ModerationPending marks a record awaiting an administrator decision.
	ModerationPending ModerationState = "pending"
	// ModerationApproved marks a record cleared for the public catalog.
	ModerationApproved ModerationState = "approved"
)

// # Entity

// ShortDescriptionLimit is the maximum length of the derived short description.
const ShortDescriptionLimit = 100

// Activity is the central listing entity (an event, class, club, camp, ...).
type Activity struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description"`
	CategoryID       string          `json:"category_id"`
	ActivityType     string          `json:"type"`
	Location         string          `json:"location"`
	Address          *string         `json:"address"`
	Latitude         *float64        `json:"latitude"`
	Longitude        *float64        `json:"longitude"`
	Price            *float64        `json:"price"` // nil means free/unspecified
	Currency         string          `json:"currency"`
	ImageURL         *string         `json:"image_url"`
	StartsAt         *time.Time      `json:"starts_at"`
	EndsAt           *time.Time      `json:"ends_at"`
	MinParticipants  *int            `json:"min_participants"`
	MaxParticipants  *int            `json:"max_participants"`
	MinAge           *int            `json:"min_age"`
	MaxAge           *int            `json:"max_age"`
	ContactEmail     *string         `json:"contact_email"`
	ContactPhone     *string         `json:"contact_phone"`
	ExternalLink     *string         `json:"external_link"`
	OwnerID          string          `json:"owner_id"`
	Slug             string          `json:"slug"`
	ModerationState  ModerationState `json:"moderation_state"`
	DeletionState    DeletionState   `json:"deletion_state"`
	TagIDs           []int           `json:"tag_ids"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// IsOwnedBy reports whether the activity belongs to the given subject.
func (a *Activity) IsOwnedBy(subjectID string) bool {
	return subjectID != "" && a.OwnerID == subjectID
}

// DeriveShortDescription fills ShortDescription from Description when no
// explicit short form was supplied.
//
// The derived form is capped at [ShortDescriptionLimit] characters and marked
// with an ellipsis when truncated.
func (a *Activity) DeriveShortDescription() {
	if strings.TrimSpace(a.ShortDescription) != "" {
		return
	}
	a.ShortDescription = Truncate(a.Description, ShortDescriptionLimit)
}

// Truncate shortens s to at most limit runes, appending an ellipsis marker
// when content was cut. The ellipsis counts against the limit; a non-positive
// limit yields the empty string.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

// # Update Shape

// ActivityUpdate carries a partial update: nil pointer fields are left
// untouched, non-nil fields overwrite.
//
// # Explicit clearing
//
// JSON cannot distinguish an omitted field from an explicit null through a
// plain pointer, so every nullable non-string attribute has a Clear* flag
// that resets it to absent. A Clear* flag wins over a value supplied for the
// same field in the same request. Coordinates clear as a pair: a latitude
// without a longitude is meaningless.
//
// TagIDs follows replace semantics: nil leaves associations untouched, a
// non-nil slice (including an empty one) fully replaces the prior set.
type ActivityUpdate struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	ShortDescription *string  `json:"short_description"`
	CategoryID       *string  `json:"category_id"`
	ActivityType     *string  `json:"type"`
	Location         *string  `json:"location"`
	Address          *string  `json:"address"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	ClearCoordinates bool     `json:"clear_coordinates"`
	Price            *float64 `json:"price"`
	ClearPrice       bool     `json:"clear_price"`
	Currency         *string  `json:"currency"`

	StartsAt    *time.Time `json:"starts_at"`
	ClearStarts bool       `json:"clear_starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	ClearEnds   bool       `json:"clear_ends_at"`

	MinParticipants      *int `json:"min_participants"`
	ClearMinParticipants bool `json:"clear_min_participants"`
	MaxParticipants      *int `json:"max_participants"`
	ClearMaxParticipants bool `json:"clear_max_participants"`
	MinAge               *int `json:"min_age"`
	ClearMinAge          bool `json:"clear_min_age"`
	MaxAge               *int `json:"max_age"`
	ClearMaxAge          bool `json:"clear_max_age"`

	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	ExternalLink *string `json:"external_link"`
	TagIDs       []int   `json:"tag_ids"`
}

// IsEmpty reports whether the update carries no field changes at all
// (tag replacement and explicit clears included).
func (u *ActivityUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.ShortDescription == nil &&
		u.CategoryID == nil && u.ActivityType == nil && u.Location == nil &&
		u.Address == nil && u.Latitude == nil && u.Longitude == nil &&
		u.Price == nil && u.Currency == nil &&
		u.StartsAt == nil && u.EndsAt == nil &&
		u.MinParticipants == nil && u.MaxParticipants == nil &&
		u.MinAge == nil && u.MaxAge == nil &&
		u.ContactEmail == nil && u.ContactPhone == nil && u.ExternalLink == nil &&
		u.TagIDs == nil && !u.HasClears()
}

// HasClears reports whether any explicit-clear flag is set.
func (u *ActivityUpdate) HasClears() bool {
	return u.ClearCoordinates || u.ClearPrice ||
		u.ClearStarts || u.ClearEnds ||
		u.ClearMinParticipants || u.ClearMaxParticipants ||
		u.ClearMinAge || u.ClearMaxAge
}

// # Filter

// Filter holds the caller-supplied criteria for a paginated activity search.
//
// It is lowered into a predicate list by [Build]; visibility predicates are
// never part of a Filter (they come from [ListPredicates]).
type Filter struct {
	// Query is a free-text search matched by substring against title,
	// description, location, and organizer display name.
	Query string

	CategoryID   string
	ActivityType string
	// Location narrows by substring match on the free-text location.
	Location string

	// PriceMin and PriceMax are independent inclusive bounds.
	// FreeOnly short-circuits to "price equals zero" and ignores both bounds.
	PriceMin *float64
	PriceMax *float64
	FreeOnly bool

	// TagIDs selects activities carrying at least one of the given tags
	// (OR semantics). Resolved through a dependent association lookup.
	TagIDs []int

	// AllowDegradedTagFilter opts into the lenient failure policy: when the
	// tag association lookup fails, the listing proceeds without the tag
	// filter and is flagged as degraded. The default (false) propagates the
	// failure as a retriable error instead of silently widening the results.
	AllowDegradedTagFilter bool

	Sort    string
	SortDir string
}

// # Logical Field Identifiers
//
// Backend-neutral field names used in predicates, sorting, and validation
// messages. The storage layer owns the mapping to physical columns.

const (
	FieldID              = "id"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldShortDesc       = "short_description"
	FieldCategoryID      = "category_id"
	FieldType            = "type"
	FieldLocation        = "location"
	FieldAddress         = "address"
	FieldLatitude        = "latitude"
	FieldLongitude       = "longitude"
	FieldPrice           = "price"
	FieldCurrency        = "currency"
	FieldStartsAt        = "starts_at"
	FieldEndsAt          = "ends_at"
	FieldMinParticipants = "min_participants"
	FieldMaxParticipants = "max_participants"
	FieldMinAge          = "min_age"
	FieldMaxAge          = "max_age"
	FieldContactEmail    = "contact_email"
	FieldContactPhone    = "contact_phone"
	FieldExternalLink    = "external_link"
	FieldOwnerID         = "owner_id"
	FieldOwnerName       = "owner_name"
	FieldModeration      = "moderation_state"
	FieldDeletion        = "deletion_state"
	FieldCreatedAt       = "created_at"
	FieldUpdatedAt       = "updated_at"
)
