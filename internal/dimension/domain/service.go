package domain

import (
	"context"

	"gorm.io/gorm"
)

// Counts reports how many dimension rows a resolver created during its run.
type Counts struct {
	Users       int
	Technicians int
	Locations   int
	States      int
}

// Resolver maps natural keys to dimension identifiers for one run.
//
// Attribute policy is first-seen-wins: once a natural key exists, later
// observations return the existing identifier and never overwrite the
// stored attributes. Name-keyed dimensions fold case and whitespace
// before lookup, so "Austin" and " austin " resolve to one row.
//
// Empty keys resolve to nil, which loads as an absent foreign key.
type Resolver interface {
	ResolveUser(ctx context.Context, id, name string) (*string, error)
	ResolveTechnician(ctx context.Context, id, name string) (*string, error)
	ResolveLocation(ctx context.Context, name string) (*int64, error)
	ResolveState(ctx context.Context, name string) (*int64, error)
	Counts() Counts
}

// Factory builds a resolver scoped to one run's transaction. Lookup
// caches are read-through against the store, never shared across runs.
type Factory interface {
	ForTrx(tx *gorm.DB) Resolver
}
