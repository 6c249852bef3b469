package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/pastry-blog/internal/config"
	"github.com/jonathan/pastry-blog/internal/logging"
	"github.com/jonathan/pastry-blog/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	auth       *config.AuthConfig
	jwtService *JWTService
	validator  *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(auth *config.AuthConfig, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		jwtService: jwtService,
		validator:  validator.New(),
	}
}

// Login checks the admin credentials and issues a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	if !h.auth.VerifyAdmin(req.Email, req.Password) {
		logging.Ctx(r.Context()).Warn().Str("email", req.Email).Msg("admin login failed")
		err := &ErrInvalidCredentials{}
		writeError(w, HTTPStatus(err), err.Error())
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(h.auth.AdminEmail)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to generate token")
		writeError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	logging.Ctx(r.Context()).Info().Str("email", h.auth.AdminEmail).Msg("admin logged in")
	writeJSON(w, http.StatusOK, types.LoginResponse{
		Admin:     types.Admin{Email: h.auth.AdminEmail},
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

// extractValidationErrors extracts a user-friendly error message from validator errors.
func extractValidationErrors(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		if len(validationErrors) > 0 {
			// Return first validation error for simplicity
			ve := validationErrors[0]
			return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
		}
	}
	return "validation error: invalid request"
}
