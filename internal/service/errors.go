package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
	ErrReaderNil  = errors.New("reader is nil")

	ErrFileRequired       = errors.New("no file sent")
	ErrFilenameEmpty      = errors.New("no file selected")
	ErrFileTypeNotAllowed = errors.New("file type not allowed, use PDF, JPG or PNG")
	ErrTitleRequired      = errors.New("title is required")
	ErrContentRequired    = errors.New("comment content is required")
	ErrFileTooLarge       = errors.New("file exceeds the upload size limit")

	// ErrPartialDelete marks a delete that left some of its effects in place.
	ErrPartialDelete = errors.New("document partially deleted")
)

// ValidationError reports rejected client input. Err is one of the sentinel errors above and
// its text is safe to show to the caller.
type ValidationError struct {
	Code string
	Err  error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(code string, err error) error {
	return &ValidationError{Code: code, Err: err}
}

// PartialDeleteError describes a delete plan that failed after an irreversible step took effect,
// or whose compensations did not all succeed. Completed lists the steps whose effects remain.
type PartialDeleteError struct {
	DocumentID string
	Completed  []string
	Failed     string
	Err        error
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("document %s partially deleted: step %q failed after [%s]: %v",
		e.DocumentID, e.Failed, strings.Join(e.Completed, ", "), e.Err)
}

func (e *PartialDeleteError) Unwrap() []error { return []error{ErrPartialDelete, e.Err} }
