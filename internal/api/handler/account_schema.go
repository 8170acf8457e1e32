package handler

import "time"

// --- Request types ---

// createAccountRequest is the payload for both the administrative create
// and the self-service register endpoints. The password travels in
// plaintext exactly once and is hashed before persistence.
type createAccountRequest struct {
	FullName     string     `json:"full_name"     validate:"required,min=10,max=100"`
	Email        string     `json:"email"         validate:"required,email,max=120"`
	Password     string     `json:"password"      validate:"required"`
	Phone        string     `json:"phone"         validate:"omitempty,number,min=9,max=15"`
	RegisterDate *time.Time `json:"register_date" validate:"omitempty"`
	Role         string     `json:"role"          validate:"required,oneof=ADMIN LIBRARIAN CLIENT"`
}

// updateAccountRequest replaces all mutable fields. It deliberately has no
// password field: password changes only go through the profile endpoint.
type updateAccountRequest struct {
	FullName     string     `json:"full_name"     validate:"required,min=10,max=100"`
	Email        string     `json:"email"         validate:"required,email,max=120"`
	Phone        string     `json:"phone"         validate:"omitempty,number,min=9,max=15"`
	RegisterDate *time.Time `json:"register_date" validate:"omitempty"`
	Role         string     `json:"role"          validate:"required,oneof=ADMIN LIBRARIAN CLIENT"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// profileRequest carries the partial profile update. Role and password are
// optional; empty values keep the stored ones.
type profileRequest struct {
	FullName string `json:"full_name" validate:"required,min=10,max=100"`
	Phone    string `json:"phone"     validate:"omitempty,number,min=9,max=15"`
	Role     string `json:"role"      validate:"omitempty,oneof=ADMIN LIBRARIAN CLIENT"`
	Password string `json:"password"`
}
