package usecase

import "errors"

const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION"
	CodeProvider   = "PROVIDER"
	CodeStore      = "STORE"
)

// DomainError is a failure the caller can act on: a missing entity, a bad
// request, a provider that rejected us.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewNotFound(msg string) *DomainError {
	return &DomainError{Code: CodeNotFound, Message: msg}
}

func NewValidation(msg string) *DomainError {
	return &DomainError{Code: CodeValidation, Message: msg}
}

func NewProviderFailure(msg string) *DomainError {
	return &DomainError{Code: CodeProvider, Message: msg}
}

func IsNotFound(err error) bool   { return hasCode(err, CodeNotFound) }
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }
func IsProvider(err error) bool   { return hasCode(err, CodeProvider) }

func hasCode(err error, code string) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}

// TechnicalError is an infrastructure failure (durable storage, marshal).
// It is logged and surfaced as an internal error, never swallowed.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func NewStoreFailure(msg string) *TechnicalError {
	return &TechnicalError{Code: CodeStore, Message: msg}
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
