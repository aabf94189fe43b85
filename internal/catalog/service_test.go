// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/catalog"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/pkg/pagination"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/pkg/pointer"
)

// # Fakes

// fakeRepository is an in-memory [catalog.Repository] that records calls so
// tests can assert which store operations were (not) issued.
type fakeRepository struct {
	activities map[string]*catalog.Activity
	tagMatches []string

	selectCalls    int
	lastPredicates []catalog.Predicate
	setStateCalls  int
	purgeCalls     int

	tagLookupErr  error
	tagReplaceErr error
	updateErr     error
}

func newFakeRepository(activities ...*catalog.Activity) *fakeRepository {
	repo := &fakeRepository{activities: map[string]*catalog.Activity{}}
	for _, activity := range activities {
		repo.activities[activity.ID] = activity
	}
	return repo
}

func (r *fakeRepository) Select(_ context.Context, predicates []catalog.Predicate, _ catalog.Sort, _, _ int) ([]*catalog.Activity, int, error) {
	r.selectCalls++
	r.lastPredicates = predicates

	all := make([]*catalog.Activity, 0, len(r.activities))
	for _, activity := range r.activities {
		all = append(all, activity)
	}
	return all, len(all), nil
}

func (r *fakeRepository) FindByID(_ context.Context, id string) (*catalog.Activity, error) {
	activity, ok := r.activities[id]
	if !ok {
		return nil, apperr.NotFound("Activity")
	}
	copied := *activity
	return &copied, nil
}

func (r *fakeRepository) FindBySlug(_ context.Context, slug string) (*catalog.Activity, error) {
	for _, activity := range r.activities {
		if activity.Slug == slug {
			copied := *activity
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("Activity")
}

func (r *fakeRepository) Insert(_ context.Context, activity *catalog.Activity) error {
	r.activities[activity.ID] = activity
	return nil
}

func (r *fakeRepository) UpdateFields(_ context.Context, id string, update *catalog.ActivityUpdate) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	activity, ok := r.activities[id]
	if !ok {
		return apperr.NotFound("Activity")
	}
	if update.Title != nil {
		activity.Title = *update.Title
	}
	if update.Price != nil {
		activity.Price = update.Price
	}
	if update.StartsAt != nil {
		activity.StartsAt = update.StartsAt
	}
	if update.EndsAt != nil {
		activity.EndsAt = update.EndsAt
	}
	if update.ClearPrice {
		activity.Price = nil
	}
	if update.ClearCoordinates {
		activity.Latitude, activity.Longitude = nil, nil
	}
	if update.ClearStarts {
		activity.StartsAt = nil
	}
	if update.ClearEnds {
		activity.EndsAt = nil
	}
	if update.ClearMinParticipants {
		activity.MinParticipants = nil
	}
	if update.ClearMaxParticipants {
		activity.MaxParticipants = nil
	}
	if update.ClearMinAge {
		activity.MinAge = nil
	}
	if update.ClearMaxAge {
		activity.MaxAge = nil
	}
	return nil
}

func (r *fakeRepository) ReplaceTags(_ context.Context, activityID string, tagIDs []int) error {
	if r.tagReplaceErr != nil {
		return r.tagReplaceErr
	}
	if activity, ok := r.activities[activityID]; ok {
		activity.TagIDs = tagIDs
	}
	return nil
}

func (r *fakeRepository) SetImageURL(_ context.Context, id string, imageURL string) error {
	if activity, ok := r.activities[id]; ok {
		activity.ImageURL = &imageURL
	}
	return nil
}

func (r *fakeRepository) SetDeletionState(_ context.Context, id string, state catalog.DeletionState) error {
	r.setStateCalls++
	if activity, ok := r.activities[id]; ok {
		activity.DeletionState = state
	}
	return nil
}

func (r *fakeRepository) SetModerationState(_ context.Context, id string, state catalog.ModerationState) error {
	r.setStateCalls++
	if activity, ok := r.activities[id]; ok {
		activity.ModerationState = state
	}
	return nil
}

func (r *fakeRepository) Purge(_ context.Context, id string) error {
	r.purgeCalls++
	delete(r.activities, id)
	return nil
}

func (r *fakeRepository) ActivityIDsWithTags(_ context.Context, _ []int) ([]string, error) {
	if r.tagLookupErr != nil {
		return nil, r.tagLookupErr
	}
	return r.tagMatches, nil
}

// fakeBlobStore records uploads and deletes.
type fakeBlobStore struct {
	uploads   []string
	deletes   []string
	deleteErr error
}

func (b *fakeBlobStore) Upload(_ context.Context, objectPath string, _ string, _ io.Reader) (string, error) {
	b.uploads = append(b.uploads, objectPath)
	return "https://blob.test/" + objectPath, nil
}

func (b *fakeBlobStore) Delete(_ context.Context, publicURL string) error {
	b.deletes = append(b.deletes, publicURL)
	return b.deleteErr
}

func newTestService(repo *fakeRepository, blobs *fakeBlobStore) *catalog.Service {
	if blobs == nil {
		blobs = &fakeBlobStore{}
	}
	return catalog.NewService(repo, blobs, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newActivity(id, ownerID string) *catalog.Activity {
	return &catalog.Activity{
		ID:              id,
		Title:           "Chess club",
		Description:     "Weekly chess evenings for all levels.",
		CategoryID:      "cat-1",
		ActivityType:    "club",
		Location:        "Helsinki",
		OwnerID:         ownerID,
		Slug:            "chess-club-" + id,
		DeletionState:   catalog.DeletionActive,
		ModerationState: catalog.ModerationApproved,
	}
}

const activityID = "0191b2a0-0000-7000-8000-00000000aaaa"

// # Listing

/*
TestService_List_TagShortCircuit verifies that an empty tag resolution
returns an empty page without issuing the main query.
*/
func TestService_List_TagShortCircuit(t *testing.T) {
	repo := newFakeRepository(newActivity(activityID, "org-1"))
	repo.tagMatches = nil
	service := newTestService(repo, nil)

	result, err := service.List(context.Background(), anonymous, catalog.ViewPublic,
		catalog.Filter{TagIDs: []int{7}}, pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Empty(t, result.Activities)
	assert.Zero(t, result.Total)
	assert.False(t, result.DegradedTagFilter)
	assert.Zero(t, repo.selectCalls, "main query must not be issued")
}

/*
TestService_List_TagResolutionFoldedIn verifies a successful resolution is
appended as an id inclusion predicate.
*/
func TestService_List_TagResolutionFoldedIn(t *testing.T) {
	repo := newFakeRepository(newActivity(activityID, "org-1"))
	repo.tagMatches = []string{activityID}
	service := newTestService(repo, nil)

	_, err := service.List(context.Background(), anonymous, catalog.ViewPublic,
		catalog.Filter{TagIDs: []int{7}}, pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	require.Equal(t, 1, repo.selectCalls)

	last := repo.lastPredicates[len(repo.lastPredicates)-1]
	assert.Equal(t, catalog.FieldID, last.Field)
	assert.Equal(t, catalog.OpIn, last.Op)
}

/*
TestService_List_TagFailurePolicy covers both failure modes: strict
propagation by default, flagged degradation on opt-in.
*/
func TestService_List_TagFailurePolicy(t *testing.T) {
	t.Run("strict_default_propagates", func(t *testing.T) {
		repo := newFakeRepository()
		repo.tagLookupErr = apperr.Unavailable(errors.New("association backend down"))
		service := newTestService(repo, nil)

		_, err := service.List(context.Background(), anonymous, catalog.ViewPublic,
			catalog.Filter{TagIDs: []int{7}}, pagination.Params{Page: 1, Limit: 20})

		require.Error(t, err)
		assert.True(t, apperr.As(err).Retriable)
		assert.Zero(t, repo.selectCalls)
	})

	t.Run("opt_in_degrades_flagged", func(t *testing.T) {
		repo := newFakeRepository(newActivity(activityID, "org-1"))
		repo.tagLookupErr = apperr.Unavailable(errors.New("association backend down"))
		service := newTestService(repo, nil)

		result, err := service.List(context.Background(), anonymous, catalog.ViewPublic,
			catalog.Filter{TagIDs: []int{7}, AllowDegradedTagFilter: true},
			pagination.Params{Page: 1, Limit: 20})

		require.NoError(t, err)
		assert.True(t, result.DegradedTagFilter)
		assert.Equal(t, 1, repo.selectCalls, "listing proceeds without the tag filter")
	})
}

/*
TestService_List_VisibilityPrepended verifies the mandatory predicates lead
the composed list.
*/
func TestService_List_VisibilityPrepended(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	_, err := service.List(context.Background(), anonymous, catalog.ViewPublic,
		catalog.Filter{CategoryID: "cat-1"}, pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(repo.lastPredicates), 3)
	assert.Equal(t, catalog.FieldDeletion, repo.lastPredicates[0].Field)
	assert.Equal(t, catalog.FieldModeration, repo.lastPredicates[1].Field)
}

/*
TestService_List_DeniedView verifies denials surface before any store call.
*/
func TestService_List_DeniedView(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	_, err := service.List(context.Background(), plainUser, catalog.ViewTrash,
		catalog.Filter{}, pagination.Params{Page: 1, Limit: 20})

	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	assert.Zero(t, repo.selectCalls)
}

// # Single Record

/*
TestService_Get_MasksDenialAsNotFound verifies invisible records are
indistinguishable from missing ones.
*/
func TestService_Get_MasksDenialAsNotFound(t *testing.T) {
	pending := newActivity(activityID, "org-1")
	pending.ModerationState = catalog.ModerationPending
	service := newTestService(newFakeRepository(pending), nil)

	_, err := service.Get(context.Background(), anonymous, activityID)
	assert.True(t, apperr.IsCode(err, "NOT_FOUND"), "got %v", err)

	// The owner still sees it.
	got, err := service.Get(context.Background(), organizer, activityID)
	require.NoError(t, err)
	assert.Equal(t, activityID, got.ID)
}

/*
TestService_Get_BySlug verifies the identifier format picks the lookup path.
*/
func TestService_Get_BySlug(t *testing.T) {
	activity := newActivity(activityID, "org-1")
	service := newTestService(newFakeRepository(activity), nil)

	got, err := service.Get(context.Background(), anonymous, activity.Slug)
	require.NoError(t, err)
	assert.Equal(t, activityID, got.ID)
}

// # Creation

/*
TestService_Create_ForcesLifecycleEntry verifies caller-supplied states are
overridden: everything enters pending and active.
*/
func TestService_Create_ForcesLifecycleEntry(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	activity := newActivity("", "")
	activity.ModerationState = catalog.ModerationApproved
	activity.DeletionState = catalog.DeletionTrashed

	created, degraded, err := service.Create(context.Background(), organizer, activity)
	require.NoError(t, err)
	assert.False(t, degraded)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, organizer.SubjectID, created.OwnerID)
	assert.Equal(t, catalog.ModerationPending, created.ModerationState)
	assert.Equal(t, catalog.DeletionActive, created.DeletionState)
	assert.NotEmpty(t, created.Slug)
	assert.NotEmpty(t, created.ShortDescription)
}

/*
TestService_CreateGetRoundTrip verifies that a created activity read back by
its returned id matches the input field for field, modulo the server-assigned
identity and forced lifecycle states.
*/
func TestService_CreateGetRoundTrip(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	starts := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	input := &catalog.Activity{
		Title:            "Junior chess camp",
		Description:      "A week of chess for beginners, boards provided.",
		ShortDescription: "Chess camp for beginners",
		CategoryID:       "cat-1",
		ActivityType:     "camp",
		Location:         "Helsinki",
		Address:          pointer.To("Puistokatu 4"),
		Latitude:         pointer.To(60.17),
		Longitude:        pointer.To(24.94),
		Price:            pointer.To(25.0),
		Currency:         "EUR",
		StartsAt:         pointer.To(starts),
		EndsAt:           pointer.To(starts.Add(5 * 24 * time.Hour)),
		MinParticipants:  pointer.To(4),
		MaxParticipants:  pointer.To(16),
		MinAge:           pointer.To(7),
		MaxAge:           pointer.To(12),
		ContactEmail:     pointer.To("camp@example.com"),
		ContactPhone:     pointer.To("+358401234567"),
		ExternalLink:     pointer.To("https://example.com/chess-camp"),
		TagIDs:           []int{1, 3},
	}

	created, degraded, err := service.Create(context.Background(), organizer, input)
	require.NoError(t, err)
	require.False(t, degraded)

	got, err := service.Get(context.Background(), organizer, created.ID)
	require.NoError(t, err)

	// Server-assigned fields first.
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, organizer.SubjectID, got.OwnerID)
	assert.NotEmpty(t, got.Slug)
	assert.Equal(t, catalog.ModerationPending, got.ModerationState)
	assert.Equal(t, catalog.DeletionActive, got.DeletionState)

	// Everything the caller supplied must come back unchanged.
	assert.Equal(t, "Junior chess camp", got.Title)
	assert.Equal(t, "A week of chess for beginners, boards provided.", got.Description)
	assert.Equal(t, "Chess camp for beginners", got.ShortDescription)
	assert.Equal(t, "cat-1", got.CategoryID)
	assert.Equal(t, "camp", got.ActivityType)
	assert.Equal(t, "Helsinki", got.Location)
	assert.Equal(t, pointer.To("Puistokatu 4"), got.Address)
	assert.Equal(t, pointer.To(60.17), got.Latitude)
	assert.Equal(t, pointer.To(24.94), got.Longitude)
	assert.Equal(t, pointer.To(25.0), got.Price)
	assert.Equal(t, "EUR", got.Currency)
	assert.Equal(t, pointer.To(starts), got.StartsAt)
	assert.Equal(t, pointer.To(starts.Add(5*24*time.Hour)), got.EndsAt)
	assert.Equal(t, pointer.To(4), got.MinParticipants)
	assert.Equal(t, pointer.To(16), got.MaxParticipants)
	assert.Equal(t, pointer.To(7), got.MinAge)
	assert.Equal(t, pointer.To(12), got.MaxAge)
	assert.Equal(t, pointer.To("camp@example.com"), got.ContactEmail)
	assert.Equal(t, pointer.To("+358401234567"), got.ContactPhone)
	assert.Equal(t, pointer.To("https://example.com/chess-camp"), got.ExternalLink)
	assert.Equal(t, []int{1, 3}, got.TagIDs)
}

/*
TestService_Create_TagFailureIsDegradedSuccess verifies the documented
partial-success policy: the base record stays, the result is flagged.
*/
func TestService_Create_TagFailureIsDegradedSuccess(t *testing.T) {
	repo := newFakeRepository()
	repo.tagReplaceErr = apperr.Unavailable(errors.New("junction write failed"))
	service := newTestService(repo, nil)

	activity := newActivity("", "")
	activity.TagIDs = []int{1, 2}

	created, degraded, err := service.Create(context.Background(), organizer, activity)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Contains(t, repo.activities, created.ID, "base record must not be rolled back")
}

/*
TestService_Create_Denied verifies the role gate and that validation runs
before any write.
*/
func TestService_Create_Denied(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, nil)

	_, _, err := service.Create(context.Background(), plainUser, newActivity("", ""))
	assert.True(t, apperr.IsCode(err, "FORBIDDEN"))

	_, _, err = service.Create(context.Background(), organizer, &catalog.Activity{})
	assert.True(t, apperr.IsCode(err, "VALIDATION_ERROR"))
	assert.Empty(t, repo.activities)
}

// # Updates

/*
TestService_Update_OwnershipEnforced verifies a non-owner organizer gets an
ownership denial and the record stays unchanged.
*/
func TestService_Update_OwnershipEnforced(t *testing.T) {
	repo := newFakeRepository(newActivity(activityID, "org-1"))
	service := newTestService(repo, nil)

	other := catalog.Identity{SubjectID: "org-9", Role: "organizer", Approved: true}
	_, _, err := service.Update(context.Background(), other, activityID,
		&catalog.ActivityUpdate{Title: pointer.To("hijacked")})

	assert.True(t, apperr.IsCode(err, "NOT_OWNER"))
	assert.Equal(t, "Chess club", repo.activities[activityID].Title)
}

/*
TestService_Update_ClearPrice verifies the explicit price clearing channel.
*/
func TestService_Update_ClearPrice(t *testing.T) {
	activity := newActivity(activityID, "org-1")
	activity.Price = pointer.To(12.50)
	repo := newFakeRepository(activity)
	service := newTestService(repo, nil)

	updated, degraded, err := service.Update(context.Background(), organizer, activityID,
		&catalog.ActivityUpdate{ClearPrice: true})

	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Nil(t, updated.Price)
}

/*
TestService_Update_ClearOptionalFields verifies the explicit-clear channel
for the remaining nullable non-string attributes: a set optional value can
be removed again, and a clear flag wins over a value supplied alongside it.
*/
func TestService_Update_ClearOptionalFields(t *testing.T) {
	starts := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	activity := newActivity(activityID, "org-1")
	activity.Latitude = pointer.To(60.17)
	activity.Longitude = pointer.To(24.94)
	activity.StartsAt = pointer.To(starts)
	activity.EndsAt = pointer.To(starts.Add(2 * time.Hour))
	activity.MinParticipants = pointer.To(4)
	activity.MaxParticipants = pointer.To(16)
	activity.MinAge = pointer.To(7)
	activity.MaxAge = pointer.To(12)

	repo := newFakeRepository(activity)
	service := newTestService(repo, nil)

	updated, degraded, err := service.Update(context.Background(), organizer, activityID,
		&catalog.ActivityUpdate{
			ClearCoordinates:     true,
			ClearStarts:          true,
			ClearEnds:            true,
			ClearMinParticipants: true,
			ClearMaxParticipants: true,
			ClearMinAge:          true,
			ClearMaxAge:          true,
		})

	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Nil(t, updated.Latitude)
	assert.Nil(t, updated.Longitude)
	assert.Nil(t, updated.StartsAt)
	assert.Nil(t, updated.EndsAt)
	assert.Nil(t, updated.MinParticipants)
	assert.Nil(t, updated.MaxParticipants)
	assert.Nil(t, updated.MinAge)
	assert.Nil(t, updated.MaxAge)

	// A clear flag wins over a value supplied for the same field.
	later := starts.Add(24 * time.Hour)
	updated, _, err = service.Update(context.Background(), organizer, activityID,
		&catalog.ActivityUpdate{StartsAt: &later, ClearStarts: true})
	require.NoError(t, err)
	assert.Nil(t, updated.StartsAt)
}

// # Lifecycle Transitions

/*
TestService_SoftDelete_Idempotent verifies the repeat is a successful no-op
with no state write.
*/
func TestService_SoftDelete_Idempotent(t *testing.T) {
	repo := newFakeRepository(newActivity(activityID, "org-1"))
	service := newTestService(repo, nil)

	require.NoError(t, service.SoftDelete(context.Background(), organizer, activityID))
	assert.Equal(t, 1, repo.setStateCalls)
	assert.Equal(t, catalog.DeletionTrashed, repo.activities[activityID].DeletionState)

	// Second call: no-op, no additional write.
	require.NoError(t, service.SoftDelete(context.Background(), organizer, activityID))
	assert.Equal(t, 1, repo.setStateCalls)
}

/*
TestService_Restore_Idempotent mirrors the soft-delete idempotence for the
reverse transition.
*/
func TestService_Restore_Idempotent(t *testing.T) {
	trashed := newActivity(activityID, "org-1")
	trashed.DeletionState = catalog.DeletionTrashed
	repo := newFakeRepository(trashed)
	service := newTestService(repo, nil)

	require.NoError(t, service.Restore(context.Background(), organizer, activityID))
	assert.Equal(t, catalog.DeletionActive, repo.activities[activityID].DeletionState)
	assert.Equal(t, 1, repo.setStateCalls)

	require.NoError(t, service.Restore(context.Background(), organizer, activityID))
	assert.Equal(t, 1, repo.setStateCalls)
}

/*
TestService_Purge covers the two-step guard, image reclamation, and that a
blob failure never blocks record removal.
*/
func TestService_Purge(t *testing.T) {
	t.Run("active_record_rejected", func(t *testing.T) {
		repo := newFakeRepository(newActivity(activityID, "org-1"))
		service := newTestService(repo, nil)

		err := service.Purge(context.Background(), organizer, activityID)
		assert.True(t, apperr.IsCode(err, "ILLEGAL_TRANSITION"))
		assert.Zero(t, repo.purgeCalls)
		assert.Contains(t, repo.activities, activityID)
	})

	t.Run("trashed_record_removed_with_image", func(t *testing.T) {
		trashed := newActivity(activityID, "org-1")
		trashed.DeletionState = catalog.DeletionTrashed
		trashed.ImageURL = pointer.To("https://blob.test/org-1/img.jpg")
		repo := newFakeRepository(trashed)
		blobs := &fakeBlobStore{}
		service := newTestService(repo, blobs)

		require.NoError(t, service.Purge(context.Background(), organizer, activityID))
		assert.Equal(t, 1, repo.purgeCalls)
		assert.Equal(t, []string{"https://blob.test/org-1/img.jpg"}, blobs.deletes)
		assert.NotContains(t, repo.activities, activityID)
	})

	t.Run("blob_failure_is_best_effort", func(t *testing.T) {
		trashed := newActivity(activityID, "org-1")
		trashed.DeletionState = catalog.DeletionTrashed
		trashed.ImageURL = pointer.To("https://blob.test/org-1/img.jpg")
		repo := newFakeRepository(trashed)
		blobs := &fakeBlobStore{deleteErr: errors.New("storage gone")}
		service := newTestService(repo, blobs)

		require.NoError(t, service.Purge(context.Background(), organizer, activityID))
		assert.Equal(t, 1, repo.purgeCalls, "record removal is the primary guarantee")
	})
}

/*
TestService_Approve covers the admin gate, both directions, and idempotence.
*/
func TestService_Approve(t *testing.T) {
	t.Run("admin_only", func(t *testing.T) {
		repo := newFakeRepository(newActivity(activityID, "org-1"))
		service := newTestService(repo, nil)

		err := service.Approve(context.Background(), organizer, activityID, true)
		assert.True(t, apperr.IsCode(err, "FORBIDDEN"))
	})

	t.Run("approve_and_retract", func(t *testing.T) {
		pending := newActivity(activityID, "org-1")
		pending.ModerationState = catalog.ModerationPending
		repo := newFakeRepository(pending)
		service := newTestService(repo, nil)

		require.NoError(t, service.Approve(context.Background(), admin, activityID, true))
		assert.Equal(t, catalog.ModerationApproved, repo.activities[activityID].ModerationState)

		// Idempotent repeat: no extra write.
		writes := repo.setStateCalls
		require.NoError(t, service.Approve(context.Background(), admin, activityID, true))
		assert.Equal(t, writes, repo.setStateCalls)

		// Retraction back to pending.
		require.NoError(t, service.Approve(context.Background(), admin, activityID, false))
		assert.Equal(t, catalog.ModerationPending, repo.activities[activityID].ModerationState)
	})
}

// # Images

/*
TestService_UploadImage verifies upload, URL recording, and the best-effort
release of a replaced image.
*/
func TestService_UploadImage(t *testing.T) {
	activity := newActivity(activityID, "org-1")
	activity.ImageURL = pointer.To("https://blob.test/org-1/old.jpg")
	repo := newFakeRepository(activity)
	blobs := &fakeBlobStore{}
	service := newTestService(repo, blobs)

	imageURL, err := service.UploadImage(context.Background(), organizer, activityID,
		"new photo.jpg", "image/jpeg", strings.NewReader("fake-image-bytes"))

	require.NoError(t, err)
	assert.NotEmpty(t, imageURL)
	require.NotNil(t, repo.activities[activityID].ImageURL)
	assert.Equal(t, imageURL, *repo.activities[activityID].ImageURL)
	assert.Equal(t, []string{"https://blob.test/org-1/old.jpg"}, blobs.deletes)
}
