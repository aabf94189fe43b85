// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/catalog"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/sec"
)

var (
	anonymous           = catalog.Identity{}
	plainUser           = catalog.Identity{SubjectID: "user-1", Role: sec.RoleUser, Approved: true}
	organizer           = catalog.Identity{SubjectID: "org-1", Role: sec.RoleOrganizer, Approved: true}
	unapprovedOrganizer = catalog.Identity{SubjectID: "org-2", Role: sec.RoleOrganizer, Approved: false}
	admin               = catalog.Identity{SubjectID: "admin-1", Role: sec.RoleAdmin, Approved: true}
)

// fieldsOf extracts the predicate fields in order, for matrix assertions.
func fieldsOf(predicates []catalog.Predicate) []string {
	fields := make([]string, len(predicates))
	for i, p := range predicates {
		fields[i] = p.Field
	}
	return fields
}

/*
TestListPredicates_Matrix walks the role × view matrix.
*/
func TestListPredicates_Matrix(t *testing.T) {
	tests := []struct {
		name       string
		requester  catalog.Identity
		view       catalog.ViewKind
		wantFields []string
		wantCode   string
	}{
		{"public_anonymous", anonymous, catalog.ViewPublic,
			[]string{catalog.FieldDeletion, catalog.FieldModeration}, ""},
		{"public_admin", admin, catalog.ViewPublic,
			[]string{catalog.FieldDeletion, catalog.FieldModeration}, ""},

		{"own_anonymous", anonymous, catalog.ViewOwn, nil, "UNAUTHORIZED"},
		{"own_plain_user", plainUser, catalog.ViewOwn, nil, "FORBIDDEN"},
		{"own_organizer", organizer, catalog.ViewOwn,
			[]string{catalog.FieldOwnerID}, ""},
		{"own_admin", admin, catalog.ViewOwn,
			[]string{catalog.FieldOwnerID}, ""},

		{"moderation_anonymous", anonymous, catalog.ViewModeration, nil, "UNAUTHORIZED"},
		{"moderation_organizer", organizer, catalog.ViewModeration, nil, "FORBIDDEN"},
		{"moderation_admin", admin, catalog.ViewModeration,
			[]string{catalog.FieldDeletion, catalog.FieldModeration}, ""},

		{"trash_organizer", organizer, catalog.ViewTrash, nil, "FORBIDDEN"},
		{"trash_admin", admin, catalog.ViewTrash,
			[]string{catalog.FieldDeletion}, ""},

		{"admin_catalog_user", plainUser, catalog.ViewAdminCatalog, nil, "FORBIDDEN"},
		{"admin_catalog_admin", admin, catalog.ViewAdminCatalog,
			[]string{catalog.FieldDeletion}, ""},

		{"unknown_view", admin, catalog.ViewKind("bogus"), nil, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predicates, err := catalog.ListPredicates(tt.requester, tt.view)

			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, apperr.IsCode(err, tt.wantCode),
					"expected %s, got %v", tt.wantCode, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFields, fieldsOf(predicates))
		})
	}
}

/*
TestListPredicates_UnapprovedOrganizerBlockedEverywhere verifies the account
level gate fires before any view branch, public listing included.
*/
func TestListPredicates_UnapprovedOrganizerBlockedEverywhere(t *testing.T) {
	for _, view := range []catalog.ViewKind{
		catalog.ViewPublic, catalog.ViewOwn, catalog.ViewModeration,
		catalog.ViewTrash, catalog.ViewAdminCatalog,
	} {
		_, err := catalog.ListPredicates(unapprovedOrganizer, view)
		assert.True(t, apperr.IsCode(err, "ACCOUNT_NOT_APPROVED"), "view %s", view)
	}
}

/*
TestListPredicates_OwnViewScopedToSubject verifies the own view pins the
owner to the requesting subject, never a caller-chosen one.
*/
func TestListPredicates_OwnViewScopedToSubject(t *testing.T) {
	predicates, err := catalog.ListPredicates(organizer, catalog.ViewOwn)
	require.NoError(t, err)
	require.Len(t, predicates, 1)
	assert.Equal(t, organizer.SubjectID, predicates[0].Value)
}

/*
TestAuthorizeRead distinguishes public, owner-only, and denied reads.
*/
func TestAuthorizeRead(t *testing.T) {
	public := &catalog.Activity{
		ID: "a1", OwnerID: "org-1",
		DeletionState:   catalog.DeletionActive,
		ModerationState: catalog.ModerationApproved,
	}
	pending := &catalog.Activity{
		ID: "a2", OwnerID: "org-1",
		DeletionState:   catalog.DeletionActive,
		ModerationState: catalog.ModerationPending,
	}
	trashed := &catalog.Activity{
		ID: "a3", OwnerID: "org-1",
		DeletionState:   catalog.DeletionTrashed,
		ModerationState: catalog.ModerationApproved,
	}

	t.Run("public_record_visible_to_everyone", func(t *testing.T) {
		assert.NoError(t, catalog.AuthorizeRead(anonymous, public))
		assert.NoError(t, catalog.AuthorizeRead(plainUser, public))
	})

	t.Run("pending_record_owner_and_admin_only", func(t *testing.T) {
		assert.NoError(t, catalog.AuthorizeRead(organizer, pending))
		assert.NoError(t, catalog.AuthorizeRead(admin, pending))

		assert.True(t, apperr.IsCode(catalog.AuthorizeRead(anonymous, pending), "UNAUTHORIZED"))
		other := catalog.Identity{SubjectID: "org-9", Role: sec.RoleOrganizer, Approved: true}
		assert.True(t, apperr.IsCode(catalog.AuthorizeRead(other, pending), "NOT_OWNER"))
	})

	t.Run("trashed_record_hidden_from_public", func(t *testing.T) {
		assert.Error(t, catalog.AuthorizeRead(plainUser, trashed))
		assert.NoError(t, catalog.AuthorizeRead(admin, trashed))
	})

	t.Run("unapproved_organizer_blocked", func(t *testing.T) {
		assert.True(t, apperr.IsCode(catalog.AuthorizeRead(unapprovedOrganizer, public), "ACCOUNT_NOT_APPROVED"))
	})
}

/*
TestAuthorizeMutation covers the write-side denial ladder.
*/
func TestAuthorizeMutation(t *testing.T) {
	owned := &catalog.Activity{ID: "a1", OwnerID: "org-1", DeletionState: catalog.DeletionActive}

	tests := []struct {
		name      string
		requester catalog.Identity
		wantCode  string
	}{
		{"anonymous", anonymous, "UNAUTHORIZED"},
		{"unapproved_organizer", unapprovedOrganizer, "ACCOUNT_NOT_APPROVED"},
		{"plain_user", plainUser, "FORBIDDEN"},
		{"non_owner_organizer", catalog.Identity{SubjectID: "org-9", Role: sec.RoleOrganizer, Approved: true}, "NOT_OWNER"},
		{"owner", organizer, ""},
		{"admin_bypasses_ownership", admin, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.AuthorizeMutation(tt.requester, owned)
			if tt.wantCode == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.IsCode(err, tt.wantCode), "got %v", err)
			}
		})
	}
}

/*
TestAuthorizeCreate verifies only approved organizers and administrators may
create activities.
*/
func TestAuthorizeCreate(t *testing.T) {
	assert.True(t, apperr.IsCode(catalog.AuthorizeCreate(anonymous), "UNAUTHORIZED"))
	assert.True(t, apperr.IsCode(catalog.AuthorizeCreate(unapprovedOrganizer), "ACCOUNT_NOT_APPROVED"))
	assert.True(t, apperr.IsCode(catalog.AuthorizeCreate(plainUser), "FORBIDDEN"))
	assert.NoError(t, catalog.AuthorizeCreate(organizer))
	assert.NoError(t, catalog.AuthorizeCreate(admin))
}
