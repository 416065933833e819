package domain

import "errors"

var (
	// ErrPermissionDenied means the caller's role or ownership does not allow
	// the operation. The operation has no effect.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrNotFound means the referenced record does not exist (or is hidden
	// from the caller).
	ErrNotFound = errors.New("not found")

	// ErrAlreadyProcessed means a decision was attempted on a permission
	// request that already reached a terminal status.
	ErrAlreadyProcessed = errors.New("request already processed")

	// ErrValidation means the submitted fields are missing or malformed.
	ErrValidation = errors.New("validation failed")
)
