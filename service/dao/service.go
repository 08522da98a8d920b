package dao

import (
	"context"
)

// Service abstracts persistence for a single entity type. Implementations
// must be safe for concurrent use across identities and requests; the
// generic in-memory store under dao/store is the default, relational
// implementations plug in through the same contract.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}

// Mutator extends Service with an atomic read-modify-write primitive.
// Update applies fn to the stored record under the store's write lock so
// that guarded state transitions (compare-and-set style) cannot interleave
// with concurrent writers.
type Mutator[K comparable, T any] interface {
	Update(ctx context.Context, id K, fn func(*T) error) error
}
