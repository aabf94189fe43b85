// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package catalog

import (
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/sec"
)

// # Requester Identity

// Identity is the shape the identity provider hands to the access layer:
// who is asking, with what role, and whether their account is approved.
//
// The zero value represents an anonymous requester.
type Identity struct {
	SubjectID string
	Role      sec.UserRole
	// Approved is only meaningful for organizers: an organizer whose own
	// account is not approved is barred from the catalog entirely,
	// independent of activity-level moderation.
	Approved bool
}

// IsAnonymous reports whether no authenticated subject backs this identity.
func (id Identity) IsAnonymous() bool {
	return id.SubjectID == ""
}

// IsAdmin reports whether the identity carries the administrator role.
func (id Identity) IsAdmin() bool {
	return id.Role == sec.RoleAdmin
}

// blocked reports whether the identity is an organizer with an unapproved
// account. Such accounts are denied every catalog operation before any
// predicate is built.
func (id Identity) blocked() bool {
	return id.Role == sec.RoleOrganizer && !id.Approved
}

// # View Kinds

// ViewKind names a screen/role context with its own mandatory visibility
// predicates.
type ViewKind string

const (
	// ViewPublic is the consumer-facing catalog: active, approved content only.
	ViewPublic ViewKind = "public"
	// ViewOwn is an organizer's management view of their own records,
	// pending and trashed included.
	ViewOwn ViewKind = "own"
	// ViewModeration is the administrator queue of items awaiting a decision.
	ViewModeration ViewKind = "moderation"
	// ViewTrash is the administrator view of soft-deleted records.
	ViewTrash ViewKind = "trash"
	// ViewAdminCatalog is the administrator view of all active records,
	// pending and approved alike, trash excluded.
	ViewAdminCatalog ViewKind = "admin"
)

// # Visibility Policy

/*
ListPredicates produces the mandatory predicates for a list/read view, or a
denial.

Description: This is the role × view matrix. The returned predicates are
prepended to any caller-supplied filter via [Merge] and are never optional —
they are what keeps pending and trashed content out of views that must not
show it.

Denials are distinguishable by error code: UNAUTHORIZED (not authenticated),
ACCOUNT_NOT_APPROVED (organizer account awaiting approval), FORBIDDEN
(insufficient role). Unapproved organizers are denied before any predicate
is built.

Parameters:
  - requester: Identity
  - view: ViewKind

Returns:
  - []Predicate: Mandatory visibility predicates for the view
  - error: nil, or the distinguishable denial
*/
func ListPredicates(requester Identity, view ViewKind) ([]Predicate, error) {
	if requester.blocked() {
		return nil, apperr.AccountNotApproved()
	}

	switch view {

	case ViewPublic:
		// Open to everyone, anonymous included.
		return []Predicate{
			Eq(FieldDeletion, string(DeletionActive)),
			Eq(FieldModeration, string(ModerationApproved)),
		}, nil

	case ViewOwn:
		if requester.IsAnonymous() {
			return nil, apperr.Unauthorized("Authentication required")
		}
		if !requester.Role.AtLeast(sec.RoleOrganizer) {
			return nil, apperr.Forbidden("Organizer role required")
		}
		// No deletion/moderation restriction: owners see their own pending
		// and trashed items, but never anyone else's.
		return []Predicate{
			Eq(FieldOwnerID, requester.SubjectID),
		}, nil

	case ViewModeration:
		if err := requireAdmin(requester); err != nil {
			return nil, err
		}
		return []Predicate{
			Eq(FieldDeletion, string(DeletionActive)),
			Eq(FieldModeration, string(ModerationPending)),
		}, nil

	case ViewTrash:
		if err := requireAdmin(requester); err != nil {
			return nil, err
		}
		return []Predicate{
			Eq(FieldDeletion, string(DeletionTrashed)),
		}, nil

	case ViewAdminCatalog:
		if err := requireAdmin(requester); err != nil {
			return nil, err
		}
		// Moderation state deliberately unrestricted: administrators see
		// pending and approved side by side here, trash never.
		return []Predicate{
			Eq(FieldDeletion, string(DeletionActive)),
		}, nil
	}

	return nil, apperr.ValidationError("Unknown view kind")
}

/*
AuthorizeRead decides whether the requester may see a single fetched record.

Description: Used on the single-record path where the record has already been
fetched, so existence is confirmed before ownership is evaluated. Publicly
visible records (active and approved) pass for everyone; everything else is
reserved for the owner and administrators.

The caller is expected to mask denials as not-found toward the end user to
avoid leaking existence, while keeping the distinct error for diagnostics.

Parameters:
  - requester: Identity
  - activity: *Activity (fetched record)

Returns:
  - error: nil, or the distinguishable denial
*/
func AuthorizeRead(requester Identity, activity *Activity) error {
	if requester.blocked() {
		return apperr.AccountNotApproved()
	}

	// Publicly visible content
	if activity.DeletionState == DeletionActive && activity.ModerationState == ModerationApproved {
		return nil
	}

	// Restricted content: owner and administrators only
	if requester.IsAdmin() || activity.IsOwnedBy(requester.SubjectID) {
		return nil
	}

	if requester.IsAnonymous() {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.NotOwner()
}

/*
AuthorizeMutation decides whether the requester may mutate a fetched record.

Description: Mutations (update, soft-delete, restore, purge) are reserved for
the record's owner and administrators. The record is fetched first, so an
organizer targeting someone else's real record receives an ownership denial,
not a not-found — existence is checked before ownership.

Parameters:
  - requester: Identity
  - activity: *Activity (fetched record)

Returns:
  - error: nil, or the distinguishable denial
*/
func AuthorizeMutation(requester Identity, activity *Activity) error {
	if requester.IsAnonymous() {
		return apperr.Unauthorized("Authentication required")
	}
	if requester.blocked() {
		return apperr.AccountNotApproved()
	}
	if requester.IsAdmin() {
		return nil
	}
	if !requester.Role.AtLeast(sec.RoleOrganizer) {
		return apperr.Forbidden("Organizer role required")
	}
	if !activity.IsOwnedBy(requester.SubjectID) {
		return apperr.NotOwner()
	}
	return nil
}

// AuthorizeCreate decides whether the requester may create activities at all.
func AuthorizeCreate(requester Identity) error {
	if requester.IsAnonymous() {
		return apperr.Unauthorized("Authentication required")
	}
	if requester.blocked() {
		return apperr.AccountNotApproved()
	}
	if !requester.Role.AtLeast(sec.RoleOrganizer) {
		return apperr.Forbidden("Organizer role required")
	}
	return nil
}

// requireAdmin is the shared gate for administrator-only views.
func requireAdmin(requester Identity) error {
	if requester.IsAnonymous() {
		return apperr.Unauthorized("Authentication required")
	}
	if !requester.IsAdmin() {
		return apperr.Forbidden("Administrator role required")
	}
	return nil
}
