package internal

import (
	"fmt"
)

// ErrorType represents the type of cache error
type ErrorType int

const (
	// ErrorTypeKeyDerivation indicates a cache key could not be derived from props
	ErrorTypeKeyDerivation ErrorType = iota
	// ErrorTypeTemplateMismatch indicates the current props' tokenizable shape
	// does not match the shape of a stored template
	ErrorTypeTemplateMismatch
	// ErrorTypeConfig indicates malformed caching configuration
	ErrorTypeConfig
	// ErrorTypeNotFound indicates a cache miss or key not found
	ErrorTypeNotFound
	// ErrorTypeSerialization indicates JSON marshaling/unmarshaling error
	ErrorTypeSerialization
	// ErrorTypeValidation indicates input validation failure
	ErrorTypeValidation
	// ErrorTypeConnection indicates a Redis connection error
	ErrorTypeConnection
	// ErrorTypeTimeout indicates a timeout during cache operation
	ErrorTypeTimeout
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeKeyDerivation:
		return "KEY_DERIVATION"
	case ErrorTypeTemplateMismatch:
		return "TEMPLATE_MISMATCH"
	case ErrorTypeConfig:
		return "CONFIG"
	case ErrorTypeNotFound:
		return "NOT_FOUND"
	case ErrorTypeSerialization:
		return "SERIALIZATION"
	case ErrorTypeValidation:
		return "VALIDATION"
	case ErrorTypeConnection:
		return "CONNECTION"
	case ErrorTypeTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// CacheError represents a cache-specific error with context
type CacheError struct {
	Type    ErrorType
	Key     string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *CacheError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache error [%s] for key '%s': %s", e.Type.String(), e.Key, e.Message)
	}
	return fmt.Sprintf("cache error [%s]: %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying cause error
func (e *CacheError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error type
func (e *CacheError) Is(target error) bool {
	if t, ok := target.(*CacheError); ok {
		return e.Type == t.Type
	}
	return false
}

// NewCacheError creates a new CacheError
func NewCacheError(errType ErrorType, key, message string, cause error) *CacheError {
	return &CacheError{
		Type:    errType,
		Key:     key,
		Message: message,
		Cause:   cause,
	}
}

// NewKeyDerivationError creates a key derivation error for a property path
func NewKeyDerivationError(path, message string, cause error) *CacheError {
	return NewCacheError(ErrorTypeKeyDerivation, path, message, cause)
}

// NewTemplateMismatchError creates a template shape mismatch error
func NewTemplateMismatchError(key, message string) *CacheError {
	return NewCacheError(ErrorTypeTemplateMismatch, key, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *CacheError {
	return NewCacheError(ErrorTypeConfig, "", message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(key string) *CacheError {
	return NewCacheError(ErrorTypeNotFound, key, "key not found in cache", nil)
}

// NewSerializationError creates a serialization error
func NewSerializationError(key, message string, cause error) *CacheError {
	return NewCacheError(ErrorTypeSerialization, key, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *CacheError {
	return NewCacheError(ErrorTypeValidation, "", message, cause)
}

// NewConnectionError creates a connection-specific cache error
func NewConnectionError(message string, cause error) *CacheError {
	return NewCacheError(ErrorTypeConnection, "", message, cause)
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(key, message string, cause error) *CacheError {
	return NewCacheError(ErrorTypeTimeout, key, message, cause)
}

// IsKeyDerivationError checks if the error is a key derivation error
func IsKeyDerivationError(err error) bool {
	if cacheErr, ok := err.(*CacheError); ok {
		return cacheErr.Type == ErrorTypeKeyDerivation
	}
	return false
}

// IsTemplateMismatchError checks if the error is a template mismatch error
func IsTemplateMismatchError(err error) bool {
	if cacheErr, ok := err.(*CacheError); ok {
		return cacheErr.Type == ErrorTypeTemplateMismatch
	}
	return false
}

// IsConfigError checks if the error is a configuration error
func IsConfigError(err error) bool {
	if cacheErr, ok := err.(*CacheError); ok {
		return cacheErr.Type == ErrorTypeConfig
	}
	return false
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	if cacheErr, ok := err.(*CacheError); ok {
		return cacheErr.Type == ErrorTypeNotFound
	}
	return false
}

// IsConnectionError checks if the error is a connection error
func IsConnectionError(err error) bool {
	if cacheErr, ok := err.(*CacheError); ok {
		return cacheErr.Type == ErrorTypeConnection
	}
	return false
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	if cacheErr, ok := err.(*CacheError); ok {
		return cacheErr.Type == ErrorTypeValidation
	}
	return false
}
