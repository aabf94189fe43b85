// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - pgx.ErrNoRows            → NOT_FOUND
//   - context deadline/cancel  → BACKEND_UNAVAILABLE (retriable)
//   - connection failures      → BACKEND_UNAVAILABLE (retriable)
//   - unique violations        → CONFLICT
//   - anything else            → INTERNAL_ERROR
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// Timeouts and cancellations surface as retriable unavailability.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.Unavailable(err)
	}

	// Connection-level failures (dial errors, broken pool connections).
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return apperr.Unavailable(err)
	}

	// Constraint violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return apperr.Conflict(resource + " already exists")
		case "23503": // foreign_key_violation
			return apperr.ValidationError(resource + " references a missing record")
		case "57014": // query_canceled (statement_timeout)
			return apperr.Unavailable(err)
		}
	}

	return apperr.Internal(fmt.Errorf("dberr: %s: %w", resource, err))
}
