// Package errors provides error handling for shapeshare.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for CLI users
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := lang.WriteStruct(w, s); err != nil {
//	    return errors.Wrapf(err, "failed to write struct %s", s.ID.Original)
//	}
//
//	// Classify generation failures
//	if errors.Is(err, errors.ErrNotImplemented) {
//	    // backend lacks the capability
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapOnce     = crdb.UnwrapOnce
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Assertions and panics
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for generation failures.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrUnsupportedType indicates a special type has no representation in the target language
	ErrUnsupportedType = New("unsupported type")

	// ErrNotImplemented indicates a backend lacks a contract capability (constants, imports)
	ErrNotImplemented = New("not implemented")

	// ErrInvalidConfig indicates a backend or CLI configuration precondition was violated
	ErrInvalidConfig = New("invalid configuration")

	// ErrInvalidModel indicates a model document is malformed or structurally inconsistent
	ErrInvalidModel = New("invalid model")
)

// IsUnsupportedTypeError checks if an error is or wraps ErrUnsupportedType
func IsUnsupportedTypeError(err error) bool {
	return err != nil && Is(err, ErrUnsupportedType)
}

// IsNotImplementedError checks if an error is or wraps ErrNotImplemented
func IsNotImplementedError(err error) bool {
	return err != nil && Is(err, ErrNotImplemented)
}

// IsInvalidConfigError checks if an error is or wraps ErrInvalidConfig
func IsInvalidConfigError(err error) bool {
	return err != nil && Is(err, ErrInvalidConfig)
}

// IsInvalidModelError checks if an error is or wraps ErrInvalidModel
func IsInvalidModelError(err error) bool {
	return err != nil && Is(err, ErrInvalidModel)
}

// NewUnsupportedTypeError reports that backend has no representation for kind.
func NewUnsupportedTypeError(backend, kind string) error {
	return WithHintf(
		Wrapf(ErrUnsupportedType, "%s: special type %s", backend, kind),
		"override the field type for %s or change the origin type", backend,
	)
}

// NewNotImplementedError reports that backend does not implement capability.
func NewNotImplementedError(backend, capability string) error {
	return Wrapf(ErrNotImplemented, "%s: %s", backend, capability)
}

// NewInvalidConfigError creates an invalid-configuration error with a formatted message
func NewInvalidConfigError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidConfig, Newf(format, args...).Error())
}

// NewInvalidModelError creates an invalid-model error with a formatted message
func NewInvalidModelError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidModel, Newf(format, args...).Error())
}
