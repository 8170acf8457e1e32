package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fullstack/libreria-system/internal/core/domain"
	"github.com/fullstack/libreria-system/internal/core/ports"
)

// tempPasswordBytes yields an 8-character hex temporary password on recovery.
const tempPasswordBytes = 4

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{9,15}$`)
)

// dummyHash is compared against when authentication hits an unknown email,
// so the response time does not reveal whether the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AccountService orchestrates account lifecycle operations, applying the
// uniqueness guard and the credential hasher where passwords are involved.
type AccountService struct {
	repo   ports.AccountRepository
	guard  *UniquenessGuard
	hasher ports.CredentialHasher
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, hasher ports.CredentialHasher, logger zerolog.Logger) *AccountService {
	return &AccountService{
		repo:   repo,
		guard:  NewUniquenessGuard(repo),
		hasher: hasher,
		logger: logger,
	}
}

func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.FindAll(ctx)
}

func (s *AccountService) ListByRole(ctx context.Context, role string) ([]domain.Account, error) {
	return s.repo.FindByRole(ctx, role)
}

func (s *AccountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AccountService) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
}

// Create inserts a new account through the administrative path. The
// plaintext password is hashed before it ever reaches the repository.
func (s *AccountService) Create(ctx context.Context, draft ports.AccountDraft) (*domain.Account, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}
	if err := s.guard.CheckAvailable(ctx, draft.Email, ""); err != nil {
		return nil, err
	}

	account, err := s.buildAccount(draft)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, account)
	if err != nil {
		s.logger.Error().Err(err).Str("email", draft.Email).Msg("failed to create account")
		return nil, err
	}

	s.logger.Info().Str("id", created.ID).Str("email", created.Email).Msg("account created")
	return created, nil
}

// Update replaces all mutable fields of an existing account. The password
// hash is never touched here; password changes go through UpdateProfile.
func (s *AccountService) Update(ctx context.Context, id string, draft ports.AccountDraft) (*domain.Account, error) {
	if err := validateUpdateDraft(draft); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// The guard only runs when the email actually changes, so an update
	// that keeps the email can never conflict with itself.
	if !strings.EqualFold(existing.Email, draft.Email) {
		if err := s.guard.CheckAvailable(ctx, draft.Email, id); err != nil {
			return nil, err
		}
	}

	existing.FullName = draft.FullName
	existing.Email = draft.Email
	existing.Phone = draft.Phone
	if !draft.RegisterDate.IsZero() {
		existing.RegisterDate = draft.RegisterDate
	}
	existing.Role = draft.Role

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("account updated")
	return updated, nil
}

func (s *AccountService) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.NotFoundError{Resource: "account", Key: id}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("id", id).Msg("account deleted")
	return nil
}

// Register is the self-service signup path. It behaves like Create but
// always stamps the register date at registration time.
func (s *AccountService) Register(ctx context.Context, draft ports.AccountDraft) (*domain.Account, error) {
	draft.RegisterDate = time.Now().UTC()
	created, err := s.Create(ctx, draft)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("id", created.ID).Str("role", created.Role).Msg("account registered")
	return created, nil
}

// Authenticate loads the account by email and verifies the password.
// An unknown email surfaces as NotFound and a mismatch as
// InvalidCredentials; a dummy hash comparison keeps both paths on the
// same timing profile.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))

	hash := dummyHash
	if err == nil {
		hash = account.PasswordHash
	}
	ok := s.hasher.Verify(password, hash)

	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Warn().Str("email", email).Msg("authentication failed")
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("id", account.ID).Str("role", account.Role).Msg("account authenticated")
	return account, nil
}

// Recover rotates the stored hash to a fresh temporary password and
// returns the plaintext for one-time display. The previous password stops
// authenticating as soon as the rotation is persisted.
func (s *AccountService) Recover(ctx context.Context, email string) (string, error) {
	account, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return "", err
	}

	temp, err := generateTempPassword()
	if err != nil {
		return "", err
	}
	hash, err := s.hasher.Hash(temp)
	if err != nil {
		return "", err
	}

	account.PasswordHash = hash
	if _, err := s.repo.Update(ctx, account); err != nil {
		return "", err
	}

	s.logger.Info().Str("id", account.ID).Msg("temporary password issued")
	return temp, nil
}

// UpdateProfile overwrites name and phone, keeps the role unless the draft
// supplies one, and replaces the password hash only for a non-blank new
// password. The email is not reachable through this path.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, draft ports.ProfileDraft) (*domain.Account, error) {
	if err := validateProfileDraft(draft); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.FullName = draft.FullName
	existing.Phone = draft.Phone
	if draft.Role != "" {
		existing.Role = draft.Role
	}
	if strings.TrimSpace(draft.Password) != "" {
		hash, err := s.hasher.Hash(draft.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("profile updated")
	return updated, nil
}

func (s *AccountService) buildAccount(draft ports.AccountDraft) (*domain.Account, error) {
	hash, err := s.hasher.Hash(draft.Password)
	if err != nil {
		return nil, err
	}

	registerDate := draft.RegisterDate
	if registerDate.IsZero() {
		registerDate = time.Now().UTC()
	}

	return &domain.Account{
		FullName:     draft.FullName,
		Email:        draft.Email,
		PasswordHash: hash,
		Phone:        draft.Phone,
		RegisterDate: registerDate,
		Role:         draft.Role,
	}, nil
}

// validateDraft checks every field of a create or register draft and
// reports all offending fields in a single ValidationError.
func validateDraft(draft ports.AccountDraft) error {
	fields := draftFieldErrors(draft)

	if draft.Password == "" {
		fields["password"] = "password is required"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// validateUpdateDraft applies the same field rules as validateDraft minus
// the password, which updates never carry.
func validateUpdateDraft(draft ports.AccountDraft) error {
	if fields := draftFieldErrors(draft); len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// validateProfileDraft checks the partial profile fields. Role and password
// are optional here; the phone keeps its digits-only rule.
func validateProfileDraft(draft ports.ProfileDraft) error {
	fields := make(map[string]string)

	name := strings.TrimSpace(draft.FullName)
	switch {
	case name == "":
		fields["full_name"] = "full name is required"
	case len(name) < 10 || len(name) > 100:
		fields["full_name"] = "full name must be between 10 and 100 characters"
	}

	if draft.Phone != "" && !phonePattern.MatchString(draft.Phone) {
		fields["phone"] = "phone must contain between 9 and 15 digits"
	}

	if draft.Role != "" && !domain.ValidRole(draft.Role) {
		fields["role"] = "role must be one of ADMIN, LIBRARIAN or CLIENT"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func draftFieldErrors(draft ports.AccountDraft) map[string]string {
	fields := make(map[string]string)

	name := strings.TrimSpace(draft.FullName)
	switch {
	case name == "":
		fields["full_name"] = "full name is required"
	case len(name) < 10 || len(name) > 100:
		fields["full_name"] = "full name must be between 10 and 100 characters"
	}

	switch {
	case strings.TrimSpace(draft.Email) == "":
		fields["email"] = "email is required"
	case len(draft.Email) > 120 || !emailPattern.MatchString(draft.Email):
		fields["email"] = "email is not a valid address"
	}

	if draft.Phone != "" && !phonePattern.MatchString(draft.Phone) {
		fields["phone"] = "phone must contain between 9 and 15 digits"
	}

	if !draft.RegisterDate.IsZero() && draft.RegisterDate.After(time.Now()) {
		fields["register_date"] = "register date cannot be in the future"
	}

	switch {
	case draft.Role == "":
		fields["role"] = "role is required"
	case !domain.ValidRole(draft.Role):
		fields["role"] = "role must be one of ADMIN, LIBRARIAN or CLIENT"
	}

	return fields
}

// generateTempPassword returns a fixed-length random token suitable for
// one-time delivery.
func generateTempPassword() (string, error) {
	b := make([]byte, tempPasswordBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
