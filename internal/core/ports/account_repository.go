package ports

import (
	"context"

	"github.com/fullstack/libreria-system/internal/core/domain"
)

// AccountRepository abstracts the keyed account store.
//
// Email lookups are case-insensitive. Insert and Update must translate a
// store-level unique-index rejection on the normalized email into a
// *domain.ConflictError: the index is the authoritative uniqueness guard,
// the in-service pre-check only narrows the race window.
type AccountRepository interface {
	FindAll(ctx context.Context) ([]domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByRole(ctx context.Context, role string) ([]domain.Account, error)
	// Insert persists a new account and returns it with the store-assigned ID.
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// Update replaces all mutable fields of the account identified by account.ID.
	Update(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
}
