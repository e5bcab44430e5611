package repository

import "errors"

var (
	ErrDuplicateCode     = errors.New("duplicate product code")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNoTenantPath      = errors.New("could not determine storage path")
)
