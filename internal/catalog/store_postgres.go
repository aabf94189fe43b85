// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/apperr"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/database/schema"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements [Repository] using pgx.
//
// It owns the only mapping between logical field names and physical columns;
// nothing above this layer ever sees SQL or column names.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed activity store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// columnFor maps logical predicate/sort fields to physical columns on the
// activity table (aliased "a" in every query).
var columnFor = map[string]string{
	FieldID:          schema.CatalogActivity.ID,
	FieldTitle:       schema.CatalogActivity.Title,
	FieldDescription: schema.CatalogActivity.Description,
	FieldCategoryID:  schema.CatalogActivity.CategoryID,
	FieldType:        schema.CatalogActivity.ActivityType,
	FieldLocation:    schema.CatalogActivity.Location,
	FieldPrice:       schema.CatalogActivity.Price,
	FieldStartsAt:    schema.CatalogActivity.StartsAt,
	FieldOwnerID:     schema.CatalogActivity.OwnerID,
	FieldModeration:  schema.CatalogActivity.ModerationState,
	FieldDeletion:    schema.CatalogActivity.DeletionState,
	FieldCreatedAt:   schema.CatalogActivity.CreatedAt,
	FieldUpdatedAt:   schema.CatalogActivity.UpdatedAt,
}

// # Predicate Translation

/*
translatePredicates lowers a backend-neutral predicate list into a SQL WHERE
fragment with positional arguments.

Description: Each predicate becomes one condition joined by AND; OR-groups
become a parenthesized disjunction. The owner-name field has no column on the
activity table and lowers to an EXISTS probe against the account table.

Parameters:
  - predicates: []Predicate
  - args: []any (existing positional arguments, appended to)

Returns:
  - string: The WHERE fragment (without the "WHERE" keyword), "" if empty
  - []any: The extended argument list
  - error: Translation failures (unknown field/operator)
*/
func translatePredicates(predicates []Predicate, args []any) (string, []any, error) {
	if len(predicates) == 0 {
		return "", args, nil
	}

	conditions := make([]string, 0, len(predicates))
	for _, predicate := range predicates {
		condition, extendedArgs, err := translateOne(predicate, args)
		if err != nil {
			return "", nil, err
		}
		conditions = append(conditions, condition)
		args = extendedArgs
	}

	return strings.Join(conditions, " AND "), args, nil
}

// translateOne lowers a single predicate (or OR-group) to SQL.
func translateOne(predicate Predicate, args []any) (string, []any, error) {

	// OR-group: parenthesized disjunction of the members
	if len(predicate.Or) > 0 {
		members := make([]string, 0, len(predicate.Or))
		for _, member := range predicate.Or {
			condition, extendedArgs, err := translateOne(member, args)
			if err != nil {
				return "", nil, err
			}
			members = append(members, condition)
			args = extendedArgs
		}
		return "(" + strings.Join(members, " OR ") + ")", args, nil
	}

	// Owner display name lives on the account table, not the activity row.
	if predicate.Field == FieldOwnerName {
		if predicate.Op != OpILike {
			return "", nil, fmt.Errorf("catalog: operator %q not supported for %s", predicate.Op, FieldOwnerName)
		}
		args = append(args, "%"+fmt.Sprintf("%v", predicate.Value)+"%")
		condition := fmt.Sprintf(
			"EXISTS (SELECT 1 FROM %s u WHERE u.%s = a.%s AND u.%s ILIKE $%d)",
			schema.UserAccount.Table, schema.UserAccount.ID, schema.CatalogActivity.OwnerID,
			schema.UserAccount.DisplayName, len(args),
		)
		return condition, args, nil
	}

	column, ok := columnFor[predicate.Field]
	if !ok {
		return "", nil, fmt.Errorf("catalog: unknown predicate field %q", predicate.Field)
	}

	switch predicate.Op {
	case OpEq:
		args = append(args, predicate.Value)
		return fmt.Sprintf("a.%s = $%d", column, len(args)), args, nil
	case OpNeq:
		args = append(args, predicate.Value)
		return fmt.Sprintf("a.%s <> $%d", column, len(args)), args, nil
	case OpILike:
		args = append(args, "%"+fmt.Sprintf("%v", predicate.Value)+"%")
		return fmt.Sprintf("a.%s ILIKE $%d", column, len(args)), args, nil
	case OpGte:
		args = append(args, predicate.Value)
		return fmt.Sprintf("a.%s >= $%d", column, len(args)), args, nil
	case OpLte:
		args = append(args, predicate.Value)
		return fmt.Sprintf("a.%s <= $%d", column, len(args)), args, nil
	case OpIn:
		values, ok := predicate.Value.([]any)
		if !ok {
			return "", nil, fmt.Errorf("catalog: in-predicate on %q requires a value list", predicate.Field)
		}
		args = append(args, toTextArray(values))
		return fmt.Sprintf("a.%s = ANY($%d)", column, len(args)), args, nil
	}

	return "", nil, fmt.Errorf("catalog: unknown predicate operator %q", predicate.Op)
}

// toTextArray renders an any-typed value list as strings for ANY($n) binding.
func toTextArray(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprintf("%v", v)
	}
	return out
}

// # Row Mapping

// activityColumns is the shared SELECT column list, aliased "a", with the
// aggregated tag ids appended.
func activityColumns() string {
	t := schema.CatalogActivity
	columns := t.Columns()
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = "a." + column
	}

	tagAgg := fmt.Sprintf(
		"COALESCE((SELECT array_agg(at.%s ORDER BY at.%s) FROM %s at WHERE at.%s = a.%s), '{}')",
		schema.ActivityTag.TagID, schema.ActivityTag.TagID,
		schema.ActivityTag.Table, schema.ActivityTag.ActivityID, schema.CatalogActivity.ID,
	)

	return strings.Join(qualified, ", ") + ", " + tagAgg
}

// scanActivity maps one storage row into the domain shape. This is the single
// place raw rows are touched; everything above works with [Activity].
func scanActivity(row pgx.Row) (*Activity, error) {
	activity := &Activity{}
	err := row.Scan(
		&activity.ID, &activity.Title, &activity.Description, &activity.ShortDescription,
		&activity.CategoryID, &activity.ActivityType, &activity.Location, &activity.Address,
		&activity.Latitude, &activity.Longitude, &activity.Price, &activity.Currency,
		&activity.ImageURL, &activity.StartsAt, &activity.EndsAt,
		&activity.MinParticipants, &activity.MaxParticipants, &activity.MinAge, &activity.MaxAge,
		&activity.ContactEmail, &activity.ContactPhone, &activity.ExternalLink,
		&activity.OwnerID, &activity.Slug, &activity.ModerationState, &activity.DeletionState,
		&activity.CreatedAt, &activity.UpdatedAt, &activity.TagIDs,
	)
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// # Repository Implementation

/*
Select returns the activities matching all predicates plus the total count.

Description: Uses COUNT(*) OVER() to retrieve the total match count in the
same round trip, and a correlated array_agg sub-select to hydrate tag ids
without an N+1 pattern.

Parameters:
  - ctx: context.Context
  - predicates: []Predicate (visibility + filter, already merged)
  - sort: Sort (whitelisted logical field + direction)
  - limit, offset: pagination window

Returns:
  - []*Activity: The page of matching activities
  - int: Total count before pagination
  - error: Translation or database errors
*/
func (repository *postgresRepository) Select(ctx context.Context, predicates []Predicate, sort Sort, limit, offset int) ([]*Activity, int, error) {
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(fmt.Sprintf(
		"SELECT %s, COUNT(*) OVER() AS total_count FROM %s a",
		activityColumns(), schema.CatalogActivity.Table,
	))

	where, args, err := translatePredicates(predicates, args)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	if where != "" {
		queryBuilder.WriteString(" WHERE " + where)
	}

	// Sorting: fall back to the default for anything not whitelisted.
	sortColumn, ok := columnFor[sort.Field]
	if !ok {
		sortColumn = schema.CatalogActivity.CreatedAt
	}
	direction := "ASC"
	if sort.Desc {
		direction = "DESC"
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY a.%s %s, a.%s", sortColumn, direction, schema.CatalogActivity.ID))

	args = append(args, limit, offset)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))

	rows, err := repository.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "Activity")
	}
	defer rows.Close()

	var activities []*Activity
	var total int
	for rows.Next() {
		activity := &Activity{}
		err := rows.Scan(
			&activity.ID, &activity.Title, &activity.Description, &activity.ShortDescription,
			&activity.CategoryID, &activity.ActivityType, &activity.Location, &activity.Address,
			&activity.Latitude, &activity.Longitude, &activity.Price, &activity.Currency,
			&activity.ImageURL, &activity.StartsAt, &activity.EndsAt,
			&activity.MinParticipants, &activity.MaxParticipants, &activity.MinAge, &activity.MaxAge,
			&activity.ContactEmail, &activity.ContactPhone, &activity.ExternalLink,
			&activity.OwnerID, &activity.Slug, &activity.ModerationState, &activity.DeletionState,
			&activity.CreatedAt, &activity.UpdatedAt, &activity.TagIDs,
			&total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "Activity")
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Activity")
	}

	return activities, total, nil
}

// FindByID fetches a single activity regardless of lifecycle state.
func (repository *postgresRepository) FindByID(ctx context.Context, id string) (*Activity, error) {
	query := fmt.Sprintf("SELECT %s FROM %s a WHERE a.%s = $1",
		activityColumns(), schema.CatalogActivity.Table, schema.CatalogActivity.ID)

	activity, err := scanActivity(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Activity")
	}
	return activity, nil
}

// FindBySlug fetches a single activity by its URL slug.
func (repository *postgresRepository) FindBySlug(ctx context.Context, slug string) (*Activity, error) {
	query := fmt.Sprintf("SELECT %s FROM %s a WHERE a.%s = $1",
		activityColumns(), schema.CatalogActivity.Table, schema.CatalogActivity.Slug)

	activity, err := scanActivity(repository.pool.QueryRow(ctx, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "Activity")
	}
	return activity, nil
}

// Insert persists a new activity and fills its server-assigned timestamps.
func (repository *postgresRepository) Insert(ctx context.Context, activity *Activity) error {
	t := schema.CatalogActivity
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s, %s, %s
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, NOW(), NOW()
		)
		RETURNING %s, %s
	`,
		t.Table,
		t.ID, t.Title, t.Description, t.ShortDescription, t.CategoryID,
		t.ActivityType, t.Location, t.Address, t.Latitude, t.Longitude,
		t.Price, t.Currency, t.ImageURL, t.StartsAt, t.EndsAt,
		t.MinParticipants, t.MaxParticipants, t.MinAge, t.MaxAge, t.ContactEmail,
		t.ContactPhone, t.ExternalLink, t.OwnerID, t.Slug, t.ModerationState, t.DeletionState,
		t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.pool.QueryRow(ctx, query,
		activity.ID, activity.Title, activity.Description, activity.ShortDescription, activity.CategoryID,
		activity.ActivityType, activity.Location, activity.Address, activity.Latitude, activity.Longitude,
		activity.Price, activity.Currency, activity.ImageURL, activity.StartsAt, activity.EndsAt,
		activity.MinParticipants, activity.MaxParticipants, activity.MinAge, activity.MaxAge, activity.ContactEmail,
		activity.ContactPhone, activity.ExternalLink, activity.OwnerID, activity.Slug,
		string(activity.ModerationState), string(activity.DeletionState),
	).Scan(&activity.CreatedAt, &activity.UpdatedAt)

	return dberr.Wrap(err, "Activity")
}

/*
UpdateFields applies a partial update to an activity.

Description: The SET clause is assembled dynamically from the non-nil pointer
fields of the update shape; omitted fields are never mentioned in the
statement, while Clear* flags lower to explicit NULL assignments. The
updated-at timestamp is bumped unconditionally. Tag replacement is not
handled here — it goes through [Repository.ReplaceTags].

Parameters:
  - ctx: context.Context
  - id: string (activity UUID)
  - update: *ActivityUpdate

Returns:
  - error: NOT_FOUND if the id resolves to no record, database errors otherwise
*/
func (repository *postgresRepository) UpdateFields(ctx context.Context, id string, update *ActivityUpdate) error {
	t := schema.CatalogActivity

	var assignments []string
	args := []any{id}

	assign := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		assign(t.Title, *update.Title)
	}
	if update.Description != nil {
		assign(t.Description, *update.Description)
	}
	if update.ShortDescription != nil {
		assign(t.ShortDescription, *update.ShortDescription)
	}
	if update.CategoryID != nil {
		assign(t.CategoryID, *update.CategoryID)
	}
	if update.ActivityType != nil {
		assign(t.ActivityType, *update.ActivityType)
	}
	if update.Location != nil {
		assign(t.Location, *update.Location)
	}
	if update.Address != nil {
		assign(t.Address, *update.Address)
	}
	// Clear* flags win over a value supplied for the same field.
	clearColumn := func(column string) {
		assignments = append(assignments, column+" = NULL")
	}

	if update.ClearCoordinates {
		clearColumn(t.Latitude)
		clearColumn(t.Longitude)
	} else {
		if update.Latitude != nil {
			assign(t.Latitude, *update.Latitude)
		}
		if update.Longitude != nil {
			assign(t.Longitude, *update.Longitude)
		}
	}
	if update.ClearPrice {
		clearColumn(t.Price)
	} else if update.Price != nil {
		assign(t.Price, *update.Price)
	}
	if update.Currency != nil {
		assign(t.Currency, *update.Currency)
	}
	if update.ClearStarts {
		clearColumn(t.StartsAt)
	} else if update.StartsAt != nil {
		assign(t.StartsAt, *update.StartsAt)
	}
	if update.ClearEnds {
		clearColumn(t.EndsAt)
	} else if update.EndsAt != nil {
		assign(t.EndsAt, *update.EndsAt)
	}
	if update.ClearMinParticipants {
		clearColumn(t.MinParticipants)
	} else if update.MinParticipants != nil {
		assign(t.MinParticipants, *update.MinParticipants)
	}
	if update.ClearMaxParticipants {
		clearColumn(t.MaxParticipants)
	} else if update.MaxParticipants != nil {
		assign(t.MaxParticipants, *update.MaxParticipants)
	}
	if update.ClearMinAge {
		clearColumn(t.MinAge)
	} else if update.MinAge != nil {
		assign(t.MinAge, *update.MinAge)
	}
	if update.ClearMaxAge {
		clearColumn(t.MaxAge)
	} else if update.MaxAge != nil {
		assign(t.MaxAge, *update.MaxAge)
	}
	if update.ContactEmail != nil {
		assign(t.ContactEmail, *update.ContactEmail)
	}
	if update.ContactPhone != nil {
		assign(t.ContactPhone, *update.ContactPhone)
	}
	if update.ExternalLink != nil {
		assign(t.ExternalLink, *update.ExternalLink)
	}

	// Always bump the modification timestamp.
	assignments = append(assignments, t.UpdatedAt+" = NOW()")

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1",
		t.Table, strings.Join(assignments, ", "), t.ID)

	cmd, err := repository.pool.Exec(ctx, query, args...)
	if err != nil {
		return dberr.Wrap(err, "Activity")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Activity")
	}
	return nil
}

/*
ReplaceTags replaces the full tag association set of an activity.

Description: Delete-all-then-reinsert inside one transaction, batching the
inserts through [pgx.Batch] to keep the junction rewrite to two round trips.

Parameters:
  - ctx: context.Context
  - activityID: string
  - tagIDs: []int (empty clears all associations)

Returns:
  - error: Database errors (foreign key violations map to validation errors)
*/
func (repository *postgresRepository) ReplaceTags(ctx context.Context, activityID string, tagIDs []int) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "ActivityTag")
	}
	defer tx.Rollback(ctx)

	deleteQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ActivityTag.Table, schema.ActivityTag.ActivityID)
	if _, err := tx.Exec(ctx, deleteQuery, activityID); err != nil {
		return dberr.Wrap(err, "ActivityTag")
	}

	if len(tagIDs) > 0 {
		insertQuery := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			schema.ActivityTag.Table, schema.ActivityTag.ActivityID, schema.ActivityTag.TagID)

		batch := &pgx.Batch{}
		for _, tagID := range tagIDs {
			batch.Queue(insertQuery, activityID, tagID)
		}

		results := tx.SendBatch(ctx, batch)
		for range tagIDs {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return dberr.Wrap(err, "ActivityTag")
			}
		}
		if err := results.Close(); err != nil {
			return dberr.Wrap(err, "ActivityTag")
		}
	}

	return dberr.Wrap(tx.Commit(ctx), "ActivityTag")
}

// SetImageURL records the blob reference for an activity's image.
func (repository *postgresRepository) SetImageURL(ctx context.Context, id string, imageURL string) error {
	return repository.setState(ctx, id, schema.CatalogActivity.ImageURL, imageURL)
}

// SetDeletionState writes the soft-delete dimension and bumps updated-at.
func (repository *postgresRepository) SetDeletionState(ctx context.Context, id string, state DeletionState) error {
	return repository.setState(ctx, id, schema.CatalogActivity.DeletionState, string(state))
}

// SetModerationState writes the moderation dimension and bumps updated-at.
func (repository *postgresRepository) SetModerationState(ctx context.Context, id string, state ModerationState) error {
	return repository.setState(ctx, id, schema.CatalogActivity.ModerationState, string(state))
}

// setState is the shared single-column lifecycle write.
func (repository *postgresRepository) setState(ctx context.Context, id string, column string, state string) error {
	t := schema.CatalogActivity
	query := fmt.Sprintf("UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1",
		t.Table, column, t.UpdatedAt, t.ID)

	cmd, err := repository.pool.Exec(ctx, query, id, state)
	if err != nil {
		return dberr.Wrap(err, "Activity")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Activity")
	}
	return nil
}

/*
Purge permanently removes an activity and its tag associations.

Description: Both deletes run in one transaction so a crash can never leave
orphaned junction rows. Blob cleanup is the facade's concern, not the store's.

Parameters:
  - ctx: context.Context
  - id: string

Returns:
  - error: NOT_FOUND if the record no longer exists, database errors otherwise
*/
func (repository *postgresRepository) Purge(ctx context.Context, id string) error {
	tx, err := repository.pool.Begin(ctx)
	if err != nil {
		return dberr.Wrap(err, "Activity")
	}
	defer tx.Rollback(ctx)

	tagQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.ActivityTag.Table, schema.ActivityTag.ActivityID)
	if _, err := tx.Exec(ctx, tagQuery, id); err != nil {
		return dberr.Wrap(err, "ActivityTag")
	}

	recordQuery := fmt.Sprintf("DELETE FROM %s WHERE %s = $1",
		schema.CatalogActivity.Table, schema.CatalogActivity.ID)
	cmd, err := tx.Exec(ctx, recordQuery, id)
	if err != nil {
		return dberr.Wrap(err, "Activity")
	}
	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("Activity")
	}

	return dberr.Wrap(tx.Commit(ctx), "Activity")
}

// ActivityIDsWithTags resolves the deduplicated ids of activities carrying at
// least one of the given tags.
func (repository *postgresRepository) ActivityIDsWithTags(ctx context.Context, tagIDs []int) ([]string, error) {
	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s = ANY($1)",
		schema.ActivityTag.ActivityID, schema.ActivityTag.Table, schema.ActivityTag.TagID)

	rows, err := repository.pool.Query(ctx, query, tagIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "ActivityTag")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "ActivityTag")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "ActivityTag")
	}

	return ids, nil
}
