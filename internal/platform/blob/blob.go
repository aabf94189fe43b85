// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

/*
Package blob abstracts object storage for activity images.

The catalog core only needs two capabilities: upload a file under a logical
path and get back a retrievable URL, and delete a previously returned URL.
The concrete implementation speaks the S3-compatible REST surface of the
hosted storage service over plain HTTP.

Core Responsibilities:

  - Upload: PUT an object, return its public URL.
  - Delete: remove an object by its public URL.
  - Isolation: callers never see HTTP details, only the [Store] interface.
*/
package blob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
)

// Store is the object-storage contract consumed by the catalog.
type Store interface {
	// Upload stores the object under objectPath and returns its public URL.
	Upload(ctx context.Context, objectPath string, contentType string, body io.Reader) (string, error)

	// Delete removes the object identified by its public URL.
	Delete(ctx context.Context, publicURL string) error
}

// requestTimeout bounds every round trip to the storage service.
const requestTimeout = 15 * time.Second

// S3Store talks to an S3-compatible REST endpoint.
//
// # Layout
//
// Objects live at {endpoint}/object/{bucket}/{objectPath} and are publicly
// readable at {endpoint}/object/public/{bucket}/{objectPath}.
type S3Store struct {
	endpoint string
	bucket   string
	token    string
	client   *http.Client
}

// NewS3Store creates a blob store client for the given endpoint and bucket.
func NewS3Store(endpoint string, bucket string, token string) *S3Store {
	return &S3Store{
		endpoint: strings.TrimRight(endpoint, "/"),
		bucket:   bucket,
		token:    token,
		client:   &http.Client{Timeout: requestTimeout},
	}
}

// Upload implements [Store].
//
// A failed upload propagates as BACKEND_UNAVAILABLE so the caller can fail the
// whole create/update before any catalog row is written.
func (s *S3Store) Upload(ctx context.Context, objectPath string, contentType string, body io.Reader) (string, error) {
	uploadURL := fmt.Sprintf("%s/object/%s/%s", s.endpoint, s.bucket, objectPath)

	request, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("blob: failed to build upload request: %w", err))
	}
	request.Header.Set("Content-Type", contentType)
	request.Header.Set("Authorization", "Bearer "+s.token)

	response, err := s.client.Do(request)
	if err != nil {
		return "", apperr.Unavailable(fmt.Errorf("blob: upload round trip failed: %w", err))
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", apperr.Unavailable(fmt.Errorf("blob: upload rejected with status %d", response.StatusCode))
	}

	return s.PublicURL(objectPath), nil
}

// Delete implements [Store].
func (s *S3Store) Delete(ctx context.Context, publicURL string) error {
	objectPath, ok := s.objectPathFromURL(publicURL)
	if !ok {
		// Foreign or malformed URL. Nothing we can reclaim.
		return nil
	}

	deleteURL := fmt.Sprintf("%s/object/%s/%s", s.endpoint, s.bucket, objectPath)

	request, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return apperr.Internal(fmt.Errorf("blob: failed to build delete request: %w", err))
	}
	request.Header.Set("Authorization", "Bearer "+s.token)

	response, err := s.client.Do(request)
	if err != nil {
		return apperr.Unavailable(fmt.Errorf("blob: delete round trip failed: %w", err))
	}
	defer response.Body.Close()

	// 404 means the object is already gone, which is the desired end state.
	if response.StatusCode != http.StatusNotFound && (response.StatusCode < 200 || response.StatusCode >= 300) {
		return apperr.Unavailable(fmt.Errorf("blob: delete rejected with status %d", response.StatusCode))
	}

	return nil
}

// PublicURL returns the retrievable URL for an object path in this bucket.
func (s *S3Store) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", s.endpoint, s.bucket, objectPath)
}

// objectPathFromURL reverses [S3Store.PublicURL].
func (s *S3Store) objectPathFromURL(publicURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/object/public/%s/", s.endpoint, s.bucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	objectPath := strings.TrimPrefix(publicURL, prefix)
	return objectPath, objectPath != ""
}

// NoopStore satisfies [Store] without talking to any storage service.
//
// It backs local development without credentials and unit tests.
type NoopStore struct{}

// Upload returns a deterministic placeholder URL.
func (NoopStore) Upload(_ context.Context, objectPath string, _ string, body io.Reader) (string, error) {
	// Drain so multipart readers are not left half-consumed.
	_, _ = io.Copy(io.Discard, body)
	return "noop://" + objectPath, nil
}

// Delete does nothing.
func (NoopStore) Delete(context.Context, string) error { return nil }
