package types

import "errors"

// Sentinel errors shared by the content stores.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)
