package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := error(&ValidationError{Field: "path"})
	if !IsValidation(err) {
		t.Fatal("IsValidation should match a ValidationError")
	}
	if !strings.Contains(err.Error(), "path") {
		t.Fatalf("message %q should name the field", err.Error())
	}
	if IsReferential(err) || IsUnsupportedFormat(err) {
		t.Fatal("classifiers must not cross-match")
	}
}

func TestPersistenceErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&PersistenceError{Op: "upsert_file", Err: cause})

	if !errors.Is(err, cause) {
		t.Fatal("PersistenceError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "upsert_file") {
		t.Fatalf("message %q should name the operation", err.Error())
	}
}

func TestClassifiersMatchThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("scan aborted: %w", &ReferentialError{FileID: 42})
	if !IsReferential(wrapped) {
		t.Fatal("IsReferential should see through fmt.Errorf wrapping")
	}

	wrapped = fmt.Errorf("report failed: %w", &UnsupportedFormatError{Format: "xml"})
	if !IsUnsupportedFormat(wrapped) {
		t.Fatal("IsUnsupportedFormat should see through fmt.Errorf wrapping")
	}
	if !strings.Contains(wrapped.Error(), "xml") {
		t.Fatalf("message %q should name the format", wrapped.Error())
	}
}

func TestClassifiersRejectPlainErrors(t *testing.T) {
	err := errors.New("something else")
	if IsValidation(err) || IsReferential(err) || IsUnsupportedFormat(err) {
		t.Fatal("plain errors must not classify")
	}
}
