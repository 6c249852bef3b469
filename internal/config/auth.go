package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt cost bounds accepted from BCRYPT_COST.
const (
	MinBcryptCost     = 10
	MaxBcryptCost     = 14
	DefaultBcryptCost = 12
)

// AuthConfig holds the settings of the admin login: the single admin
// account, how its password is hashed and how long issued tokens live.
type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	AdminEmail        string
	AdminPasswordHash string
	BcryptCost        int
	Pepper            string // optional global secret appended before hashing
}

// NewAuthConfig reads JWT_SECRET, JWT_EXPIRATION_HOURS (default 24),
// ADMIN_EMAIL, ADMIN_PASSWORD_HASH, BCRYPT_COST (default 12) and
// PASSWORD_PEPPER.
func NewAuthConfig() (*AuthConfig, error) {
	hours := GetEnvString("JWT_EXPIRATION_HOURS", "24")
	expirationHours, err := parsePositiveInt(hours)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
	}

	cost, err := parsePositiveInt(GetEnvString("BCRYPT_COST", strconv.Itoa(DefaultBcryptCost)))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg := &AuthConfig{
		JWTSecret:         GetEnvString("JWT_SECRET", ""),
		TokenTTL:          time.Duration(expirationHours) * time.Hour,
		AdminEmail:        strings.ToLower(strings.TrimSpace(GetEnvString("ADMIN_EMAIL", ""))),
		AdminPasswordHash: GetEnvString("ADMIN_PASSWORD_HASH", ""),
		BcryptCost:        cost,
		Pepper:            GetEnvString("PASSWORD_PEPPER", ""),
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AdminEnabled reports whether the admin surface can be served.
func (c *AuthConfig) AdminEnabled() bool {
	return c.JWTSecret != "" && c.AdminEmail != "" && c.AdminPasswordHash != ""
}

// normalize validates the configuration.
func (c *AuthConfig) normalize() error {
	if c.TokenTTL < time.Hour {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %s", c.TokenTTL)
	}
	if c.BcryptCost < MinBcryptCost || c.BcryptCost > MaxBcryptCost {
		return fmt.Errorf("bcrypt cost out of range: %d (must be %d-%d)", c.BcryptCost, MinBcryptCost, MaxBcryptCost)
	}
	if (c.AdminEmail == "") != (c.AdminPasswordHash == "") {
		return fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH must be set together")
	}
	if c.AdminEmail != "" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when an admin account is configured")
	}
	return nil
}

// HashPassword hashes a password using bcrypt (with optional pepper).
func (c *AuthConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash (with optional pepper).
func (c *AuthConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+c.Pepper)) == nil
}

// VerifyAdmin checks a login attempt against the configured admin account.
// The password is always compared so that a wrong email costs as much as a
// wrong password.
func (c *AuthConfig) VerifyAdmin(email, password string) bool {
	hash := c.AdminPasswordHash
	if hash == "" {
		return false
	}
	emailOK := strings.EqualFold(strings.TrimSpace(email), c.AdminEmail)
	passwordOK := c.VerifyPassword(password, hash)
	return emailOK && passwordOK
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be positive, got %d", n)
	}
	return n, nil
}
