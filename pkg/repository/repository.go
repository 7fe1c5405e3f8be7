package repository

import "context"

// Repository is a minimal generic store over a single model type. A
// zero-valued query matches nothing special; populated fields become
// equality predicates.
type Repository[T any] interface {
	FindOne(ctx context.Context, query *T) (*T, error)
	Create(ctx context.Context, resource *T) error
	Count(ctx context.Context, query *T) (int64, error)
}
