package data

import "context"

// Repository is append-and-amend storage: rows are created once and updated in
// place, never removed.
type Repository[T any, ID comparable] interface {
	FindOne(ctx context.Context, id ID) (T, error)
	FindAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, entity T) (T, error)
	Update(ctx context.Context, entity T) (T, error)
}
