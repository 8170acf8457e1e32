package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the failure kinds the transport layer maps to HTTP
// status codes. Typed errors below match them through errors.Is so callers
// can test the kind without losing the offending key.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// NotFoundError reports that no record exists for the given key.
type NotFoundError struct {
	Resource string // "account", "book"
	Key      string // id or email that was looked up
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError reports a uniqueness violation on an account email.
type ConflictError struct {
	Email string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// ValidationError carries one message per offending field. Every failing
// field is reported at once, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
