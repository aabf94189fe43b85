// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/blob"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/validate"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/pkg/pagination"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/pkg/slug"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/pkg/uuid"
)

// # Catalog Access Facade

// Service is the catalog access facade: the public operations that combine
// predicate building, tag resolution, visibility injection, and lifecycle
// validation into requests against the backing store.
//
// The service is request-scoped and stateless between calls; every operation
// takes the requester identity explicitly rather than reading ambient state.
type Service struct {
	repo   Repository
	blobs  blob.Store
	logger *slog.Logger
}

// NewService constructs the catalog facade.
func NewService(repo Repository, blobs blob.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		blobs:  blobs,
		logger: logger,
	}
}

// ListResult is a page of activities plus its total count.
type ListResult struct {
	Activities []*Activity
	Total      int

	// DegradedTagFilter is set when tag resolution failed and the caller had
	// opted into proceeding without the tag filter. The page may then contain
	// more than was asked for; the calling layer surfaces this as a
	// degraded-success, never as a silent normal result.
	DegradedTagFilter bool
}

// # Listing

/*
List retrieves a filtered, paginated page of activities for a view.

Description: The composition pipeline of the access layer:

 1. The visibility policy yields the view's mandatory predicates (or denies).
 2. The predicate builder lowers the caller's filter.
 3. Mandatory and built predicates are merged, visibility first.
 4. Tag filters resolve through the association table; an empty resolution
    short-circuits to an empty page without issuing the main query.
 5. The composed query runs against the store with clamped pagination.

Tag resolution failures propagate as retriable errors by default; callers may
opt into degraded listing via Filter.AllowDegradedTagFilter, in which case the
failure is logged and the result flagged.

Parameters:
  - ctx: context.Context
  - requester: Identity
  - view: ViewKind (selects the visibility branch)
  - filter: Filter (caller-supplied criteria)
  - page: pagination.Params

Returns:
  - *ListResult: The page, total count, and degraded flag
  - error: Denials, translation failures, or backend errors
*/
func (service *Service) List(ctx context.Context, requester Identity, view ViewKind, filter Filter, page pagination.Params) (*ListResult, error) {

	// ── 1. Visibility ─────────────────────────────────────────────────────
	mandatory, err := ListPredicates(requester, view)
	if err != nil {
		return nil, err
	}

	// ── 2-3. Predicate lowering & merge ───────────────────────────────────
	predicates := Merge(mandatory, Build(filter))

	// ── 4. Tag resolution (dependent lookup) ──────────────────────────────
	result := &ListResult{}
	if len(filter.TagIDs) > 0 {
		matchingIDs, err := service.repo.ActivityIDsWithTags(ctx, filter.TagIDs)
		if err != nil {
			if !filter.AllowDegradedTagFilter {
				return nil, err
			}
			// Lenient mode: proceed without the tag filter, flagged.
			service.logger.WarnContext(ctx, "tag_resolution_degraded",
				slog.Any("tag_ids", filter.TagIDs),
				slog.String("error", err.Error()),
			)
			result.DegradedTagFilter = true
		} else {
			if len(matchingIDs) == 0 {
				// Short-circuit: no activity carries any requested tag.
				// The main query is never issued.
				return result, nil
			}
			predicates = append(predicates, In(FieldID, matchingIDs))
		}
	}

	// ── 5. Main query ─────────────────────────────────────────────────────
	page = page.Clamp()
	activities, total, err := service.repo.Select(ctx, predicates, SortFromFilter(filter), page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	result.Activities = activities
	result.Total = total
	return result, nil
}

// # Single Record

/*
Get fetches a single activity by UUID or URL slug.

Description: Existence is confirmed before ownership is evaluated. Records
the requester may not see are surfaced as not-found to avoid leaking
existence, but the underlying denial (not owner, unapproved account) is kept
in the diagnostic log so support can tell the two cases apart.

Parameters:
  - ctx: context.Context
  - requester: Identity
  - idOrSlug: string (UUID or slug)

Returns:
  - *Activity: The record, if visible to the requester
  - error: NOT_FOUND for both missing and masked-invisible records
*/
func (service *Service) Get(ctx context.Context, requester Identity, idOrSlug string) (*Activity, error) {
	activity, err := service.findByIdentifier(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeRead(requester, activity); err != nil {
		// The record exists but is invisible to this requester. Mask as
		// not-found externally; keep the real denial in diagnostics.
		service.logger.InfoContext(ctx, "activity_read_masked",
			slog.String("activity_id", activity.ID),
			slog.String("subject_id", requester.SubjectID),
			slog.String("denial", apperr.As(err).Code),
		)
		return nil, apperr.NotFound("Activity")
	}

	return activity, nil
}

// findByIdentifier picks the lookup strategy from the identifier format.
func (service *Service) findByIdentifier(ctx context.Context, idOrSlug string) (*Activity, error) {
	if uuid.IsValid(idOrSlug) {
		return service.repo.FindByID(ctx, idOrSlug)
	}
	return service.repo.FindBySlug(ctx, idOrSlug)
}

// # Creation

/*
Create persists a new activity owned by the requester.

Description: Required-field validation runs before any write. Moderation and
deletion state are forced to pending/active regardless of caller-supplied
values — there is no way to create pre-approved or pre-trashed content. Tag
associations are written in a second step after the base record succeeds; a
tag write failure does NOT roll the base record back (documented
partial-success policy) and is reported through the degraded flag.

Parameters:
  - ctx: context.Context
  - requester: Identity (must be an approved organizer or administrator)
  - activity: *Activity (caller-supplied attributes; id/slug/states assigned here)

Returns:
  - *Activity: The persisted record
  - bool: true when tag associations failed after the base write (degraded success)
  - error: Denials, validation failures, or backend errors
*/
func (service *Service) Create(ctx context.Context, requester Identity, activity *Activity) (*Activity, bool, error) {
	if err := AuthorizeCreate(requester); err != nil {
		return nil, false, err
	}

	if err := validateActivity(activity); err != nil {
		return nil, false, err
	}

	// Server-assigned identity and derived attributes
	activity.ID = uuid.New()
	activity.OwnerID = requester.SubjectID
	activity.Slug = slug.From(activity.Title)
	activity.DeriveShortDescription()

	// Forced lifecycle entry states
	activity.ModerationState = ModerationPending
	activity.DeletionState = DeletionActive

	if err := service.repo.Insert(ctx, activity); err != nil {
		return nil, false, err
	}

	service.logger.InfoContext(ctx, "activity_created",
		slog.String("activity_id", activity.ID),
		slog.String("owner_id", activity.OwnerID),
		slog.String("title", activity.Title),
	)

	// Second step: tag associations. Failure leaves the base record in place.
	degraded := false
	if len(activity.TagIDs) > 0 {
		if err := service.repo.ReplaceTags(ctx, activity.ID, activity.TagIDs); err != nil {
			service.logger.WarnContext(ctx, "activity_tag_write_failed",
				slog.String("activity_id", activity.ID),
				slog.String("error", err.Error()),
			)
			degraded = true
			activity.TagIDs = nil
		}
	}

	return activity, degraded, nil
}

// validateActivity enforces the create-time field constraints.
func validateActivity(activity *Activity) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, activity.Title).MaxLen(FieldTitle, activity.Title, 200)
	validator.Required(FieldDescription, activity.Description)
	validator.Required(FieldType, activity.ActivityType)
	validator.Required(FieldCategoryID, activity.CategoryID)
	validator.Required(FieldLocation, activity.Location)

	if activity.Latitude != nil {
		validator.FloatRange(FieldLatitude, *activity.Latitude, -90, 90)
	}
	if activity.Longitude != nil {
		validator.FloatRange(FieldLongitude, *activity.Longitude, -180, 180)
	}
	if activity.Price != nil {
		validator.NonNegative(FieldPrice, *activity.Price)
	}
	if activity.ContactEmail != nil && *activity.ContactEmail != "" {
		validator.Email(FieldContactEmail, *activity.ContactEmail)
	}
	if activity.MinAge != nil && activity.MaxAge != nil {
		validator.Custom(FieldMaxAge, *activity.MaxAge < *activity.MinAge, "Must not be below min_age")
	}
	if activity.StartsAt != nil && activity.EndsAt != nil {
		validator.Custom(FieldEndsAt, activity.EndsAt.Before(*activity.StartsAt), "Must not be before starts_at")
	}

	return validator.Err()
}

// # Updates

/*
Update applies a partial update to an activity the requester may mutate.

Description: The target is fetched first (existence before ownership), the
mutation is authorized, the supplied fields are validated, then applied as a
single field-by-field merge. A supplied tag list fully replaces the prior
association set; like on create, a tag write failure after a successful base
update is a degraded success, not a rollback.

Parameters:
  - ctx: context.Context
  - requester: Identity
  - id: string (activity UUID)
  - update: *ActivityUpdate

Returns:
  - *Activity: The re-fetched, updated record
  - bool: true when tag replacement failed after the base update
  - error: Denials, validation failures, or backend errors
*/
func (service *Service) Update(ctx context.Context, requester Identity, id string, update *ActivityUpdate) (*Activity, bool, error) {
	activity, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if err := AuthorizeMutation(requester, activity); err != nil {
		return nil, false, err
	}

	if err := validateUpdate(update); err != nil {
		return nil, false, err
	}

	if !update.IsEmpty() {
		if err := service.repo.UpdateFields(ctx, id, update); err != nil {
			return nil, false, err
		}
	}

	degraded := false
	if update.TagIDs != nil {
		if err := service.repo.ReplaceTags(ctx, id, update.TagIDs); err != nil {
			service.logger.WarnContext(ctx, "activity_tag_write_failed",
				slog.String("activity_id", id),
				slog.String("error", err.Error()),
			)
			degraded = true
		}
	}

	service.logger.InfoContext(ctx, "activity_updated",
		slog.String("activity_id", id),
		slog.String("subject_id", requester.SubjectID),
	)

	updated, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, degraded, err
	}
	return updated, degraded, nil
}

// validateUpdate enforces field constraints on the supplied subset only.
func validateUpdate(update *ActivityUpdate) error {
	validator := &validate.Validator{}

	if update.Title != nil {
		validator.Required(FieldTitle, *update.Title).MaxLen(FieldTitle, *update.Title, 200)
	}
	if update.Description != nil {
		validator.Required(FieldDescription, *update.Description)
	}
	if update.CategoryID != nil {
		validator.Required(FieldCategoryID, *update.CategoryID)
	}
	if update.ActivityType != nil {
		validator.Required(FieldType, *update.ActivityType)
	}
	if update.Location != nil {
		validator.Required(FieldLocation, *update.Location)
	}
	if update.Latitude != nil {
		validator.FloatRange(FieldLatitude, *update.Latitude, -90, 90)
	}
	if update.Longitude != nil {
		validator.FloatRange(FieldLongitude, *update.Longitude, -180, 180)
	}
	if update.Price != nil {
		validator.NonNegative(FieldPrice, *update.Price)
	}
	if update.ContactEmail != nil && *update.ContactEmail != "" {
		validator.Email(FieldContactEmail, *update.ContactEmail)
	}

	return validator.Err()
}

// # Lifecycle Transitions

/*
SoftDelete moves an activity to the trash (active → trashed).

Description: Idempotent — soft-deleting an already trashed record is a
successful no-op, never an error. Rejection of a pending submission is this
same operation: there is no separate "rejected" state.
*/
func (service *Service) SoftDelete(ctx context.Context, requester Identity, id string) error {
	activity, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeMutation(requester, activity); err != nil {
		return err
	}

	transition, err := ValidateSoftDelete(activity.DeletionState)
	if err != nil {
		return err
	}
	if transition == TransitionNoop {
		return nil
	}

	if err := service.repo.SetDeletionState(ctx, id, DeletionTrashed); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "activity_trashed",
		slog.String("activity_id", id),
		slog.String("subject_id", requester.SubjectID),
	)
	return nil
}

// Restore brings a trashed activity back (trashed → active). Idempotent.
func (service *Service) Restore(ctx context.Context, requester Identity, id string) error {
	activity, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeMutation(requester, activity); err != nil {
		return err
	}

	transition, err := ValidateRestore(activity.DeletionState)
	if err != nil {
		return err
	}
	if transition == TransitionNoop {
		return nil
	}

	if err := service.repo.SetDeletionState(ctx, id, DeletionActive); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "activity_restored",
		slog.String("activity_id", id),
		slog.String("subject_id", requester.SubjectID),
	)
	return nil
}

/*
Purge permanently removes a trashed activity.

Description: Only legal from the trash; purging an active record is an
illegal transition and performs no write. Before the record is removed its
image is released through the blob store — best-effort: a cleanup failure is
logged and swallowed, record removal is the primary guarantee. Tag
associations are removed with the record in one transaction. Purge is
terminal and irreversible.
*/
func (service *Service) Purge(ctx context.Context, requester Identity, id string) error {
	activity, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeMutation(requester, activity); err != nil {
		return err
	}

	if err := ValidatePurge(activity.DeletionState); err != nil {
		return err
	}

	// Storage reclamation first, best-effort.
	if activity.ImageURL != nil && *activity.ImageURL != "" {
		if err := service.blobs.Delete(ctx, *activity.ImageURL); err != nil {
			service.logger.WarnContext(ctx, "purge_image_cleanup_failed",
				slog.String("activity_id", id),
				slog.String("image_url", *activity.ImageURL),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := service.repo.Purge(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "activity_purged",
		slog.String("activity_id", id),
		slog.String("subject_id", requester.SubjectID),
	)
	return nil
}

/*
Approve sets the moderation dimension of an activity (administrators only).

Description: approved=true clears a pending submission for the public
catalog; approved=false retracts a mistaken approval back to pending. The
soft-delete dimension is never touched. Setting the state it already has is
an idempotent no-op.
*/
func (service *Service) Approve(ctx context.Context, requester Identity, id string, approved bool) error {
	if err := requireAdmin(requester); err != nil {
		return err
	}

	activity, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	target := ModerationPending
	if approved {
		target = ModerationApproved
	}

	transition, err := ValidateModeration(activity.ModerationState, target)
	if err != nil {
		return err
	}
	if transition == TransitionNoop {
		return nil
	}

	if err := service.repo.SetModerationState(ctx, id, target); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "activity_moderated",
		slog.String("activity_id", id),
		slog.String("moderation_state", string(target)),
		slog.String("subject_id", requester.SubjectID),
	)
	return nil
}

// # Image Handling

/*
UploadImage stores a new image for an activity and records its URL.

Description: Synchronous and failure-propagating — a failed upload fails the
whole operation before the catalog row is touched. A previously stored image
is released best-effort after the new URL is recorded.

Parameters:
  - ctx: context.Context
  - requester: Identity
  - id: string (activity UUID)
  - filename: string (used for the object path extension)
  - contentType: string
  - file: io.Reader (image bytes)

Returns:
  - string: The stored image URL
  - error: Denials, upload failures, or backend errors
*/
func (service *Service) UploadImage(ctx context.Context, requester Identity, id string, filename string, contentType string, file io.Reader) (string, error) {
	activity, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := AuthorizeMutation(requester, activity); err != nil {
		return "", err
	}

	objectPath := fmt.Sprintf("%s/%s-%s", activity.OwnerID, id, slug.From(filename))
	imageURL, err := service.blobs.Upload(ctx, objectPath, contentType, file)
	if err != nil {
		return "", err
	}

	if err := service.repo.SetImageURL(ctx, id, imageURL); err != nil {
		return "", err
	}

	// Release the replaced image, best-effort.
	if activity.ImageURL != nil && *activity.ImageURL != "" && *activity.ImageURL != imageURL {
		if err := service.blobs.Delete(ctx, *activity.ImageURL); err != nil {
			service.logger.WarnContext(ctx, "image_replace_cleanup_failed",
				slog.String("activity_id", id),
				slog.String("image_url", *activity.ImageURL),
				slog.String("error", err.Error()),
			)
		}
	}

	service.logger.InfoContext(ctx, "activity_image_uploaded",
		slog.String("activity_id", id),
		slog.String("image_url", imageURL),
	)
	return imageURL, nil
}
