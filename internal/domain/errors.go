package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was hit.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput marks a rejected change; prior state is left untouched.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden indicates the caller lacks the role for the operation.
	ErrForbidden = errors.New("forbidden")
)
