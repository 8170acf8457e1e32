package ports

import "context"

// CrudRepository is the generic keyed store behind a catalog entity family.
// It exists exactly once and is instantiated per entity type.
type CrudRepository[E any] interface {
	FindAll(ctx context.Context) ([]E, error)
	FindByID(ctx context.Context, id string) (E, error)
	// Insert persists a new record and returns it with the store-assigned ID.
	Insert(ctx context.Context, record E) (E, error)
	Update(ctx context.Context, id string, record E) (E, error)
	Delete(ctx context.Context, id string) error
}

// CrudService exposes plain create/read/update/delete use cases for one
// entity family.
type CrudService[E any] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, record E) (E, error)
	Update(ctx context.Context, id string, record E) (E, error)
	Delete(ctx context.Context, id string) error
}
