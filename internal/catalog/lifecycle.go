// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package catalog

import (
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
)

// # Lifecycle State Machine
//
// Two independent dimensions govern an activity's lifecycle:
//
//	soft-delete:  active --soft-delete--> trashed --restore--> active
//	              trashed --purge--> removed (terminal)
//	moderation:   pending <--approve/unapprove--> approved
//
// Purge from active is illegal: the two-step "trash then purge" flow is the
// guard against accidental permanent loss. Repeating a transition that is
// already satisfied (soft-delete on trashed, restore on active, approve on
// approved) is an idempotent no-op, never an error.
//
// There is no distinct "rejected" moderation state: rejection is modeled as
// soft-deleting a still-pending record.

// Transition is the outcome of validating a requested lifecycle change.
type Transition int

const (
	// TransitionApply means the state changes and a write must be issued.
	TransitionApply Transition = iota
	// TransitionNoop means the record is already in the requested state;
	// no write is issued and the operation succeeds.
	TransitionNoop
)

// ValidateSoftDelete validates active → trashed.
func ValidateSoftDelete(current DeletionState) (Transition, error) {
	switch current {
	case DeletionActive:
		return TransitionApply, nil
	case DeletionTrashed:
		return TransitionNoop, nil
	}
	return 0, apperr.Internal(errUnknownState(string(current)))
}

// ValidateRestore validates trashed → active.
func ValidateRestore(current DeletionState) (Transition, error) {
	switch current {
	case DeletionTrashed:
		return TransitionApply, nil
	case DeletionActive:
		return TransitionNoop, nil
	}
	return 0, apperr.Internal(errUnknownState(string(current)))
}

// ValidatePurge validates trashed → removed.
//
// Purge is terminal and only legal from the trash; an active record must be
// soft-deleted first.
func ValidatePurge(current DeletionState) error {
	switch current {
	case DeletionTrashed:
		return nil
	case DeletionActive:
		return apperr.IllegalTransition("Only trashed activities can be permanently removed")
	}
	return apperr.Internal(errUnknownState(string(current)))
}

// ValidateModeration validates a moderation change toward the target state.
//
// Both directions are legal for administrators: pending → approved grants
// visibility, approved → pending retracts a mistaken approval. Moderation
// never touches the soft-delete dimension.
func ValidateModeration(current, target ModerationState) (Transition, error) {
	if target != ModerationPending && target != ModerationApproved {
		return 0, apperr.ValidationError("Unknown moderation state")
	}
	if current == target {
		return TransitionNoop, nil
	}
	return TransitionApply, nil
}

// errUnknownState flags a corrupted state value read from storage.
type errUnknownState string

func (e errUnknownState) Error() string {
	return "catalog: unknown lifecycle state " + string(e)
}
