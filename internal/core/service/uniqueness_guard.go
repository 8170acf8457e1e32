package service

import (
	"context"
	"errors"

	"github.com/fullstack/libreria-system/internal/core/domain"
	"github.com/fullstack/libreria-system/internal/core/ports"
)

// UniquenessGuard enforces at-most-one account per normalized email.
//
// The check-then-act sequence here is not atomic against the store; the
// unique index on the email column remains the final authority and the
// repository surfaces its rejection as the same Conflict. The guard exists
// to fail fast before hashing and inserting.
type UniquenessGuard struct {
	repo ports.AccountRepository
}

func NewUniquenessGuard(repo ports.AccountRepository) *UniquenessGuard {
	return &UniquenessGuard{repo: repo}
}

// CheckAvailable returns nil when no other account holds the candidate
// email. excludingID is the id of the account being updated, or empty on
// creation.
func (g *UniquenessGuard) CheckAvailable(ctx context.Context, email, excludingID string) error {
	existing, err := g.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if excludingID != "" && existing.ID == excludingID {
		return nil
	}
	return &domain.ConflictError{Email: email}
}
