package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/emzola/bookstore/internal/validator"
)

var (
	ErrFailedValidation     = errors.New("failed validation")
	ErrRecordNotFound       = errors.New("record not found")
	ErrEditConflict         = errors.New("edit conflict")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrContentTooLarge      = errors.New("content too large")
	ErrBadRequest           = errors.New("bad request")
	ErrNotPermitted         = errors.New("not permitted")
	ErrStorageNotConfigured = errors.New("object storage not configured")
)

// ValidationError carries the field errors of a rejected request.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Errors[k]
	}
	return "failed validation: " + strings.Join(parts, "; ")
}

// Is makes every ValidationError match ErrFailedValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrFailedValidation
}

// failedValidation wraps the errors collected by v.
func failedValidation(v *validator.Validator) error {
	return &ValidationError{Errors: v.Errors}
}

// fieldError reports a single invalid field.
func fieldError(key, message string) error {
	v := validator.New()
	v.AddError(key, message)
	return failedValidation(v)
}
