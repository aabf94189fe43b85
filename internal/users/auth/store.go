// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures (duplicate email maps to CONFLICT)
	*/
	Create(context context.Context, user *User) error

	/*
		SetApproved flips the organizer approval flag.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - approved: bool

		Returns:
		  - error: Persistence failures
	*/
	SetApproved(context context.Context, userID string, approved bool) error

	/*
		TouchLastLogin records a successful authentication timestamp.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	TouchLastLogin(context context.Context, userID string) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh-token
// sessions. Sessions are volatile: the Redis implementation expires them
// automatically at their deadline.
type SessionRepository interface {

	/*
		Create persists a new tracking session for an authenticated login.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the active session matching the given token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: Hydrated entity
		  - error: UNAUTHORIZED when no live session matches
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke removes a specific session.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	Revoke(context context.Context, tokenHash string) error
}
