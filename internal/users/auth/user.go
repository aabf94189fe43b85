// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for
registration, authentication, and organizer account approval.

# Architecture

This layer is the identity provider of the system. The catalog consumes only
the identity shape it emits — subject id, role, approval flag — never the
entities defined here.
*/
package auth

import (
	"time"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Puuha platform.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	Phone        string       `json:"phone,omitempty"`
	Role         sec.UserRole `json:"role"`

	// IsApproved gates organizer accounts: an unapproved organizer is barred
	// from the catalog entirely. Plain users and administrators are always
	// approved.
	IsApproved bool `json:"is_approved"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Session represents an active refresh-token session, stored in Redis with a
// TTL matching the refresh token lifetime.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldDisplayName = "display_name"
	FieldPhone       = "phone"
	FieldRole        = "role"
	FieldToken       = "token"
)
