// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package reference

import "context"

// Repository is the read-only storage contract for reference data.
type Repository interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	ListTags(ctx context.Context) ([]*Tag, error)
	ListActivityTypes(ctx context.Context) ([]*ActivityType, error)
}
