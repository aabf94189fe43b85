// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package reference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/database/schema"
	"github.com/mariacedersten/Ohjelmistokehitysprojekti-2-sub000/internal/platform/dberr"
)

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed reference store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// ListCategories returns every category ordered by name.
func (repository *postgresRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	t := schema.RefCategory
	query := fmt.Sprintf("SELECT %s, %s, %s, %s FROM %s ORDER BY %s ASC",
		t.ID, t.Name, t.Icon, t.Description, t.Table, t.Name)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Category")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Icon, &category.Description); err != nil {
			return nil, dberr.Wrap(err, "Category")
		}
		categories = append(categories, category)
	}

	return categories, dberr.Wrap(rows.Err(), "Category")
}

// ListTags returns every tag ordered by name.
func (repository *postgresRepository) ListTags(ctx context.Context) ([]*Tag, error) {
	t := schema.RefTag
	query := fmt.Sprintf("SELECT %s, %s, %s FROM %s ORDER BY %s ASC",
		t.ID, t.Name, t.Color, t.Table, t.Name)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Tag")
	}
	defer rows.Close()

	var tags []*Tag
	for rows.Next() {
		tag := &Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, dberr.Wrap(err, "Tag")
		}
		tags = append(tags, tag)
	}

	return tags, dberr.Wrap(rows.Err(), "Tag")
}

// ListActivityTypes returns every activity type ordered by name.
func (repository *postgresRepository) ListActivityTypes(ctx context.Context) ([]*ActivityType, error) {
	t := schema.RefActivityType
	query := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s ASC",
		t.ID, t.Name, t.Table, t.Name)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "ActivityType")
	}
	defer rows.Close()

	var types []*ActivityType
	for rows.Next() {
		activityType := &ActivityType{}
		if err := rows.Scan(&activityType.ID, &activityType.Name); err != nil {
			return nil, dberr.Wrap(err, "ActivityType")
		}
		types = append(types, activityType)
	}

	return types, dberr.Wrap(rows.Err(), "ActivityType")
}
