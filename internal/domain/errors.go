package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a required scan-input field missing at the index
// boundary. Always surfaced to the caller, never retried.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// PersistenceError wraps an underlying storage fault. The index surfaces it;
// the scanner downgrades it to a per-file skip.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ReferentialError reports a hash upsert against a file id that does not
// exist. This is a caller bug, not a storage fault.
type ReferentialError struct {
	FileID int64
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("no file record with id %d", e.FileID)
}

// UnsupportedFormatError reports an unknown report encoding. The report
// writer never falls back to a default.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported report format: %q", e.Format)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsReferential reports whether err is a ReferentialError.
func IsReferential(err error) bool {
	var re *ReferentialError
	return errors.As(err, &re)
}

// IsUnsupportedFormat reports whether err is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var fe *UnsupportedFormatError
	return errors.As(err, &fe)
}
