// Package services defines the business logic for contact submissions and
// the staff reporting built on top of them. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"fmt"

	"github.com/renacod/backend/internal/validation"
)

var (
	// ErrContactNotFound indicates that the requested contact does not exist.
	ErrContactNotFound = errors.New("contact not found")

	// ErrBadRequest is the parent of every malformed-request error below.
	ErrBadRequest = errors.New("bad request")

	// ErrNoContactIDs is returned by BulkUpdate when the id list is empty.
	ErrNoContactIDs = fmt.Errorf("%w: contact ids are required", ErrBadRequest)

	// ErrNoValidUpdates is returned by BulkUpdate when no allow-listed field
	// is set.
	ErrNoValidUpdates = fmt.Errorf("%w: no valid updates provided", ErrBadRequest)
)

// ValidationError carries every field-level rejection for one request.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string { return e.Fields.Error() }

func invalid(fields validation.FieldErrors) error {
	return &ValidationError{Fields: fields}
}
