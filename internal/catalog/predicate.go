// Copyright (c) 2026 Puuha. All rights reserved.
// Author: dev@puuha.app

package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// # Predicate Model

// Operator is a backend-neutral comparison operator.
type Operator string

const (
	// OpEq matches exact equality.
	OpEq Operator = "eq"
	// OpNeq matches inequality.
	OpNeq Operator = "neq"
	// OpILike matches a case-insensitive substring.
	OpILike Operator = "ilike"
	// OpGte matches greater-than-or-equal (inclusive lower bound).
	OpGte Operator = "gte"
	// OpLte matches less-than-or-equal (inclusive upper bound).
	OpLte Operator = "lte"
	// OpIn matches membership in an explicit value list.
	OpIn Operator = "in"
)

// Predicate is a single field/operator/value condition, or an OR-group.
//
// When Or is non-empty, Field/Op/Value are ignored and the predicate matches
// if any member of the group matches. Groups do not nest.
type Predicate struct {
	Field string
	Op    Operator
	Value any
	Or    []Predicate
}

// Key returns a stable identity for deduplication. Two predicates with the
// same key are logically identical.
func (p Predicate) Key() string {
	if len(p.Or) > 0 {
		keys := make([]string, len(p.Or))
		for i, member := range p.Or {
			keys[i] = member.Key()
		}
		sort.Strings(keys)
		return "or(" + strings.Join(keys, "|") + ")"
	}
	return fmt.Sprintf("%s:%s:%v", p.Field, p.Op, p.Value)
}

// # Predicate Construction

// Eq builds an equality predicate.
func Eq(field string, value any) Predicate {
	return Predicate{Field: field, Op: OpEq, Value: value}
}

// Neq builds an inequality predicate.
func Neq(field string, value any) Predicate {
	return Predicate{Field: field, Op: OpNeq, Value: value}
}

// Contains builds a case-insensitive substring predicate.
func Contains(field string, value string) Predicate {
	return Predicate{Field: field, Op: OpILike, Value: value}
}

// Gte builds an inclusive lower-bound predicate.
func Gte(field string, value any) Predicate {
	return Predicate{Field: field, Op: OpGte, Value: value}
}

// Lte builds an inclusive upper-bound predicate.
func Lte(field string, value any) Predicate {
	return Predicate{Field: field, Op: OpLte, Value: value}
}

// In builds a membership predicate over an explicit value list.
func In[T any](field string, values []T) Predicate {
	anyValues := make([]any, len(values))
	for i, v := range values {
		anyValues[i] = v
	}
	return Predicate{Field: field, Op: OpIn, Value: anyValues}
}

// AnyOf builds an OR-group from the given member predicates.
func AnyOf(members ...Predicate) Predicate {
	return Predicate{Or: members}
}

// # Builder

/*
Build lowers a [Filter] into an ordered, deduplicated predicate list.

Description: The lowering is deterministic — the same logical filter always
produces the same predicate list, independent of call order or prior calls.
This keeps caching and testing tractable.

Lowering rules:
  - Free-text search expands into an OR-group matching title, description,
    location, and organizer display name by substring.
  - FreeOnly short-circuits to "price equals zero" and ignores the min/max
    bounds entirely; otherwise both bounds apply independently (inclusive).
  - Tag filtering is NOT lowered here: it requires a dependent lookup and is
    folded in by the facade after resolution (see [Service.List]).

Parameters:
  - filter: Filter (caller-supplied search criteria)

Returns:
  - []Predicate: Ordered, deduplicated predicate list (possibly empty)
*/
func Build(filter Filter) []Predicate {
	var predicates []Predicate

	// Free-text search OR-group
	if query := strings.TrimSpace(filter.Query); query != "" {
		predicates = append(predicates, AnyOf(
			Contains(FieldTitle, query),
			Contains(FieldDescription, query),
			Contains(FieldLocation, query),
			Contains(FieldOwnerName, query),
		))
	}

	// Exact reference filters
	if filter.CategoryID != "" {
		predicates = append(predicates, Eq(FieldCategoryID, filter.CategoryID))
	}
	if filter.ActivityType != "" {
		predicates = append(predicates, Eq(FieldType, filter.ActivityType))
	}

	// Location substring
	if location := strings.TrimSpace(filter.Location); location != "" {
		predicates = append(predicates, Contains(FieldLocation, location))
	}

	// Price: free-only wins over any explicit bounds
	if filter.FreeOnly {
		predicates = append(predicates, Eq(FieldPrice, float64(0)))
	} else {
		if filter.PriceMin != nil {
			predicates = append(predicates, Gte(FieldPrice, *filter.PriceMin))
		}
		if filter.PriceMax != nil {
			predicates = append(predicates, Lte(FieldPrice, *filter.PriceMax))
		}
	}

	return dedupe(predicates)
}

/*
Merge prepends mandatory visibility predicates to a built filter list.

Description: Mandatory predicates always come first so the composed list
reads visibility-then-filters, and duplicates between the two sources are
collapsed (first occurrence wins). The result is again deterministic.

Parameters:
  - mandatory: []Predicate (from the visibility policy, never caller-supplied)
  - built: []Predicate (output of [Build])

Returns:
  - []Predicate: The merged, deduplicated list
*/
func Merge(mandatory, built []Predicate) []Predicate {
	merged := make([]Predicate, 0, len(mandatory)+len(built))
	merged = append(merged, mandatory...)
	merged = append(merged, built...)
	return dedupe(merged)
}

// dedupe removes logically identical predicates, keeping first occurrences
// and preserving order.
func dedupe(predicates []Predicate) []Predicate {
	if len(predicates) < 2 {
		return predicates
	}

	seen := make(map[string]struct{}, len(predicates))
	result := predicates[:0]
	for _, p := range predicates {
		key := p.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, p)
	}
	return result
}
