package cache

import (
	"github.com/kengibson1111/go-ssr-render-cache/internal"
)

// Public aliases for the error taxonomy so callers never import internal.

// CacheError represents a cache-specific error with context
type CacheError = internal.CacheError

// CacheErrorType represents the type of cache error
type CacheErrorType = internal.ErrorType

const (
	// CacheErrorTypeKeyDerivation indicates a cache key could not be derived
	CacheErrorTypeKeyDerivation = internal.ErrorTypeKeyDerivation
	// CacheErrorTypeTemplateMismatch indicates a template shape mismatch
	CacheErrorTypeTemplateMismatch = internal.ErrorTypeTemplateMismatch
	// CacheErrorTypeConfig indicates malformed caching configuration
	CacheErrorTypeConfig = internal.ErrorTypeConfig
	// CacheErrorTypeNotFound indicates a cache miss or key not found
	CacheErrorTypeNotFound = internal.ErrorTypeNotFound
	// CacheErrorTypeSerialization indicates a serialization error
	CacheErrorTypeSerialization = internal.ErrorTypeSerialization
	// CacheErrorTypeValidation indicates input validation failure
	CacheErrorTypeValidation = internal.ErrorTypeValidation
	// CacheErrorTypeConnection indicates a Redis connection error
	CacheErrorTypeConnection = internal.ErrorTypeConnection
	// CacheErrorTypeTimeout indicates a timeout during a cache operation
	CacheErrorTypeTimeout = internal.ErrorTypeTimeout
)

// IsKeyDerivationError checks if the error is a key derivation error
func IsKeyDerivationError(err error) bool {
	return internal.IsKeyDerivationError(err)
}

// IsTemplateMismatchError checks if the error is a template mismatch error
func IsTemplateMismatchError(err error) bool {
	return internal.IsTemplateMismatchError(err)
}

// IsConfigError checks if the error is a configuration error
func IsConfigError(err error) bool {
	return internal.IsConfigError(err)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return internal.IsNotFoundError(err)
}

// IsConnectionError checks if the error is a connection error
func IsConnectionError(err error) bool {
	return internal.IsConnectionError(err)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return internal.IsValidationError(err)
}
