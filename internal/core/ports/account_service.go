package ports

import (
	"context"
	"time"

	"github.com/fullstack/libreria-system/internal/core/domain"
)

// AccountDraft carries caller-supplied fields for create, register and
// update operations, prior to store assignment of an identifier.
type AccountDraft struct {
	FullName string
	Email    string
	// Password is the plaintext password. It is hashed before persistence
	// and never stored. Ignored by Update.
	Password     string
	Phone        string
	RegisterDate time.Time // zero value means "stamp now"
	Role         string
}

// ProfileDraft carries the partial fields of a profile update. Name and
// phone always overwrite; role and password only when non-empty. Email is
// never mutated through this path.
type ProfileDraft struct {
	FullName string
	Phone    string
	Role     string
	Password string
}

// AccountService defines the account management use cases.
type AccountService interface {
	List(ctx context.Context) ([]domain.Account, error)
	ListByRole(ctx context.Context, role string) ([]domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, draft AccountDraft) (*domain.Account, error)
	Update(ctx context.Context, id string, draft AccountDraft) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
	// Register is the self-service signup path: the password is always
	// hashed and the register date stamped at registration time.
	Register(ctx context.Context, draft AccountDraft) (*domain.Account, error)
	// Authenticate verifies the credentials and returns the matching
	// account. It fails with domain.ErrNotFound for an unknown email and
	// domain.ErrInvalidCredentials for a password mismatch; the transport
	// layer is expected to conflate the two.
	Authenticate(ctx context.Context, email, password string) (*domain.Account, error)
	// Recover rotates the account's password to a random temporary one and
	// returns the plaintext for one-time delivery to the caller.
	Recover(ctx context.Context, email string) (string, error)
	UpdateProfile(ctx context.Context, id string, draft ProfileDraft) (*domain.Account, error)
}

// CredentialHasher is the one-way password hashing contract. Verify must
// compare in time independent of where a mismatch occurs.
type CredentialHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
