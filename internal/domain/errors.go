package domain

import (
	"errors"
	"fmt"
)

// Error types for domain-specific errors
type ErrorType string

const (
	ErrorTypeInput  ErrorType = "input"
	ErrorTypeParse  ErrorType = "parse"
	ErrorTypeRaster ErrorType = "raster"
	ErrorTypeFetch  ErrorType = "fetch"
	ErrorTypeConfig ErrorType = "config"
	ErrorTypeIO     ErrorType = "io"
)

// DomainError represents a domain-specific error with context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewError creates a new domain error
func NewError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func InputError(message string, err error) *DomainError {
	return NewError(ErrorTypeInput, message, err)
}

func ParseError(message string, err error) *DomainError {
	return NewError(ErrorTypeParse, message, err)
}

func RasterError(message string, err error) *DomainError {
	return NewError(ErrorTypeRaster, message, err)
}

func FetchError(message string, err error) *DomainError {
	return NewError(ErrorTypeFetch, message, err)
}

func ConfigError(message string, err error) *DomainError {
	return NewError(ErrorTypeConfig, message, err)
}

func IOError(message string, err error) *DomainError {
	return NewError(ErrorTypeIO, message, err)
}

// IsClientError reports whether err belongs to the client-input class:
// bad or missing request bytes, or a remote URL supplied by the caller
// that could not be resolved. Everything else is internal.
func IsClientError(err error) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return de.Type == ErrorTypeInput || de.Type == ErrorTypeFetch
}
