package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// LoginRequest represents the admin login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Admin is the authenticated editor returned on login.
type Admin struct {
	Email string `json:"email"`
}

// LoginResponse carries the signed bearer token for the admin API.
type LoginResponse struct {
	Admin     Admin     `json:"admin"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
