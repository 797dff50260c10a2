package form

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("form not found")
	ErrVersionDeleted      = errors.New("form version is deleted")
	ErrWindowNotOpen       = errors.New("form is not open for submissions yet")
	ErrWindowClosed        = errors.New("form is closed for submissions")
	ErrUnauthorized        = errors.New("form requires an authenticated submitter")
	ErrDuplicateSubmission = errors.New("submitter has already answered this form")
	ErrAlreadyDeleted      = errors.New("form is already deleted")
	ErrNotDeleted          = errors.New("form is not deleted")
	ErrConcurrencyConflict = errors.New("form was modified concurrently, reload and retry")

	// ErrHeadInTrash is a conflict that retrying cannot resolve: a newer
	// version exists but is soft-deleted.
	ErrHeadInTrash = fmt.Errorf("%w: a newer version is in the trash, restore or permanently delete it first", ErrConcurrencyConflict)

	ErrForbidden             = errors.New("not allowed to modify this form")
	ErrInvalidWindow         = errors.New("end_at must be after start_at")
	ErrInvalidQuestion       = errors.New("invalid question definition")
	ErrInvalidAnswer         = errors.New("answer references a question outside this form")
	ErrMissingRequiredAnswer = errors.New("required question left unanswered")
)
