package repositories

import (
	"context"
	"time"
)

// Backend names the physical store that served an operation.
type Backend string

const (
	BackendPrimary  Backend = "primary"
	BackendFallback Backend = "fallback"
)

// Record is a storable entity keyed by a string id. Touched returns a copy
// with UpdatedAt (and a zero CreatedAt) set to now.
type Record[T any] interface {
	RecordID() string
	Touched(now time.Time) T
}

// Store is one physical backend for records of type T. Get, Replace and
// Delete report a missing id as domain.NotFoundError.
type Store[T any] interface {
	Backend() Backend
	Insert(ctx context.Context, rec T) error
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context) ([]T, error)
	Replace(ctx context.Context, rec T) error
	Delete(ctx context.Context, id string) error
	IDs(ctx context.Context) ([]string, error)
}
