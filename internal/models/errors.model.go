package models

import "errors"

var (
	// ErrSheetNotFound means the addressed table handle could not be
	// resolved; no partial write happens after it.
	ErrSheetNotFound = errors.New("sheet not found")

	// ErrRecordNotFound is the distinct outcome of a lookup-then-update
	// that matched nothing. It is never reported as success.
	ErrRecordNotFound = errors.New("record not found")

	// ErrLockTimeout means the global write lock was not acquired within
	// the configured bound; no write was attempted.
	ErrLockTimeout = errors.New("write lock acquisition timed out")

	// ErrValidation marks a required-field failure detected before any
	// store access or lock acquisition.
	ErrValidation = errors.New("validation failed")
)
