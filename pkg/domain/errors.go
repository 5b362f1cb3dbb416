package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError so transports can map it to a status code.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindConflict     ErrorKind = "conflict"
	KindUpload       ErrorKind = "upload"
	KindInternal     ErrorKind = "internal"
)

// DomainError is a structured failure surfaced to callers.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewValidationError reports a missing or malformed input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// NewNotFoundError reports that entity with the given id does not exist.
func NewNotFoundError(entity, id string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("%s with id %s not found", entity, id)}
}

// NewUnauthorizedError reports a missing or insufficient caller identity.
func NewUnauthorizedError(message string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Message: message}
}

// NewForbiddenError reports an authenticated caller acting outside their rights.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Kind: KindForbidden, Message: message}
}

// NewConflictError reports a uniqueness or state conflict.
func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// NewUploadError wraps a media host failure.
func NewUploadError(message string, err error) *DomainError {
	return &DomainError{Kind: KindUpload, Message: message, Err: err}
}

// KindOf returns the kind of the first DomainError in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool   { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
func IsUpload(err error) bool       { return KindOf(err) == KindUpload }
