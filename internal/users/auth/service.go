// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/constants"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/sec"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/validate"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/pkg/uuid"
)

// # Service Layer

// Service orchestrates registration, authentication, and organizer approval.
type Service struct {
	users    UserRepository
	sessions SessionRepository
	tokens   *sec.TokenService
	logger   *slog.Logger
}

// NewService constructs the authentication [Service].
func NewService(users UserRepository, sessions SessionRepository, tokens *sec.TokenService, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// TokenPair is the credential set issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// # Registration

/*
Register creates a new account.

Description: Only the user and organizer roles are self-registrable;
administrator accounts are provisioned out of band. Plain users are approved
immediately; organizer accounts start unapproved and stay barred from the
catalog until an administrator approves them.

Parameters:
  - ctx: context.Context
  - email, password, displayName, phone: account attributes
  - role: sec.UserRole (user or organizer)

Returns:
  - *User: The created account
  - error: Validation failures, CONFLICT on duplicate email, storage errors
*/
func (service *Service) Register(ctx context.Context, email, password, displayName, phone string, role sec.UserRole) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	validator.Required(FieldPassword, password).MinLen(FieldPassword, password, MinPasswordLength)
	validator.Required(FieldDisplayName, displayName).MaxLen(FieldDisplayName, displayName, 100)
	validator.OneOf(FieldRole, string(role), string(sec.RoleUser), string(sec.RoleOrganizer))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	passwordHash, err := sec.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		Phone:        phone,
		Role:         role,
		// Organizer accounts await administrator approval.
		IsApproved: role != sec.RoleOrganizer,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// # Authentication

/*
Login verifies credentials and issues a token pair.

Description: The access token is a short-lived RS256 JWT carrying the
requester identity (subject id, role, approval flag); the refresh token is a
random opaque value whose hash keys a Redis session.

Parameters:
  - ctx: context.Context
  - email, password: credentials
  - userAgent, ipAddress: session metadata

Returns:
  - *User: The authenticated account
  - *TokenPair: Access + refresh tokens
  - error: UNAUTHORIZED on bad credentials, storage errors otherwise
*/
func (service *Service) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*User, *TokenPair, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		// Uniform message: never reveal whether the email exists.
		return nil, nil, apperr.Unauthorized("Invalid email or password")
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, apperr.Unauthorized("Invalid email or password")
	}

	pair, err := service.issueTokens(ctx, user, userAgent, ipAddress)
	if err != nil {
		return nil, nil, err
	}

	if err := service.users.TouchLastLogin(ctx, user.ID); err != nil {
		// Best-effort bookkeeping.
		service.logger.WarnContext(ctx, "last_login_touch_failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.InfoContext(ctx, "user_logged_in", slog.String("user_id", user.ID))
	return user, pair, nil
}

/*
Refresh exchanges a valid refresh token for a fresh token pair.

Description: The presented token is hashed and looked up in the session
store; a hit rotates the session — the old one is revoked and a new one
created — so a stolen refresh token can be used at most once.

Parameters:
  - ctx: context.Context
  - refreshToken: string (opaque value from login)
  - userAgent, ipAddress: session metadata for the rotated session

Returns:
  - *TokenPair: Fresh access + refresh tokens
  - error: UNAUTHORIZED on unknown/expired tokens
*/
func (service *Service) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*TokenPair, error) {
	tokenHash := hashToken(refreshToken)

	session, err := service.sessions.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}

	user, err := service.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Account no longer exists")
	}

	// Rotation: the presented token is burned regardless of what follows.
	if err := service.sessions.Revoke(ctx, tokenHash); err != nil {
		return nil, err
	}

	return service.issueTokens(ctx, user, userAgent, ipAddress)
}

// Logout revokes the session behind a refresh token. Unknown tokens are a
// successful no-op.
func (service *Service) Logout(ctx context.Context, refreshToken string) error {
	return service.sessions.Revoke(ctx, hashToken(refreshToken))
}

// Me returns the account behind an authenticated subject id.
func (service *Service) Me(ctx context.Context, userID string) (*User, error) {
	return service.users.FindByID(ctx, userID)
}

// # Organizer Approval

/*
ApproveOrganizer flips the approval flag of an organizer account.

Description: Administrator-only. Approval unlocks the catalog for the
organizer; revoking approval bars them again without touching their records.

Parameters:
  - ctx: context.Context
  - userID: string (target account)
  - approved: bool

Returns:
  - error: NOT_FOUND, validation failures, or storage errors
*/
func (service *Service) ApproveOrganizer(ctx context.Context, userID string, approved bool) error {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != sec.RoleOrganizer {
		return apperr.ValidationError("Only organizer accounts have an approval state")
	}

	if user.IsApproved == approved {
		return nil
	}

	if err := service.users.SetApproved(ctx, userID, approved); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "organizer_approval_changed",
		slog.String("user_id", userID),
		slog.Bool("approved", approved),
	)
	return nil
}

// # Token Plumbing

// issueTokens signs an access token and opens a refresh session.
func (service *Service) issueTokens(ctx context.Context, user *User, userAgent, ipAddress string) (*TokenPair, error) {
	accessToken, err := service.tokens.GenerateAccessToken(
		user.ID, user.DisplayName, string(user.Role), user.IsApproved, constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: time.Now().Add(constants.RefreshTokenTTL),
		CreatedAt: time.Now(),
	}
	if err := service.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(constants.AccessTokenTTL.Seconds()),
	}, nil
}

// newRefreshToken produces a cryptographically random opaque token.
func newRefreshToken() (string, error) {
	buffer := make([]byte, RefreshTokenLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("auth: failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// hashToken derives the storage key for a refresh token. Only the hash is
// ever persisted.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
