// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/database/schema"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/dberr"
)

// postgresUserRepository implements [UserRepository] using pgx.
type postgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository constructs a PostgreSQL backed account store.
func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

// userColumns is the shared SELECT column list for account lookups.
func userColumns() string {
	t := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Email, t.Password, t.Role, t.IsApproved,
		t.DisplayName, t.Phone, t.LastLoginAt, t.CreatedAt, t.UpdatedAt)
}

// scanUser maps one account row into the domain shape.
func scanUser(scan func(dest ...any) error) (*User, error) {
	user := &User{}
	err := scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.IsApproved,
		&user.DisplayName, &user.Phone, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID returns the account with the given ID.
func (repository *postgresUserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1",
		userColumns(), schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, id).Scan)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// FindByEmail returns the account with the given email (case-insensitive).
func (repository *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE LOWER(%s) = LOWER($1)",
		userColumns(), schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(ctx, query, email).Scan)
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// Create persists a brand-new user account.
func (repository *postgresUserRepository) Create(ctx context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.Email, t.Password, t.Role, t.IsApproved, t.DisplayName, t.Phone,
		t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		user.ID, user.Email, user.PasswordHash, string(user.Role), user.IsApproved,
		user.DisplayName, user.Phone,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	return dberr.Wrap(err, "User")
}

// SetApproved flips the organizer approval flag.
func (repository *postgresUserRepository) SetApproved(ctx context.Context, userID string, approved bool) error {
	t := schema.UserAccount
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1",
		t.Table, t.IsApproved, t.UpdatedAt, t.ID)

	cmd, err := repository.pool.Exec(ctx, query, userID, approved)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// TouchLastLogin records a successful authentication timestamp.
func (repository *postgresUserRepository) TouchLastLogin(ctx context.Context, userID string) error {
	t := schema.UserAccount
	query := fmt.Sprintf("UPDATE %s SET %s = NOW() WHERE %s = $1",
		t.Table, t.LastLoginAt, t.ID)

	_, err := repository.pool.Exec(ctx, query, userID)
	return dberr.Wrap(err, "User")
}
