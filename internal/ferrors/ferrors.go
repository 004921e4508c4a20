// Package ferrors declares the sentinel errors shared across FlexSearch's
// index lifecycle, write pipeline, and query compiler.
package ferrors

import "errors"

var (
	ErrIndexAlreadyExists  = errors.New("index already exists")
	ErrIndexNotFound       = errors.New("index not found")
	ErrIndexIsOffline      = errors.New("index is offline")
	ErrIndexIsOpening      = errors.New("index is opening")
	ErrRegistrationMissing = errors.New("index registration missing")
	ErrOpeningIndexWriter  = errors.New("failed opening index writer")

	ErrVersionMismatch = errors.New("version mismatch")
	ErrMissingID       = errors.New("missing id")

	ErrUnknownField         = errors.New("unknown field")
	ErrStoreOnlyField       = errors.New("field is store-only")
	ErrUnknownQueryOperator = errors.New("unknown query operator")
	ErrInvalidCondition     = errors.New("invalid condition")
	ErrUnknownSearchProfile = errors.New("unknown search profile")
	ErrValidationFailed     = errors.New("validation failed")
)
