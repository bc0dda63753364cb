package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrConfiguration indicates invalid configuration: bad chunking
	// parameters, a non-positive k, or an explicitly requested provider
	// with no usable credential. Fatal, never retried.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrInvalidInput indicates malformed or invalid input, such as an
	// empty question.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndex indicates a vector store operation failed: the store is
	// unreachable or a collection operation errored. Fatal during
	// ingestion; queries degrade to zero retrieved results instead.
	ErrIndex = errors.New("vector index unavailable")

	// ErrProvider is the base error all ProviderError values match.
	ErrProvider = errors.New("provider request failed")
)

// ProviderErrorKind classifies an embedding or generation failure.
type ProviderErrorKind string

// Provider failure classes.
const (
	// ProviderErrorAuth is a rejected or missing credential. Fatal.
	ProviderErrorAuth ProviderErrorKind = "auth"

	// ProviderErrorQuota is an exhausted quota or rate limit. Fatal.
	ProviderErrorQuota ProviderErrorKind = "quota"

	// ProviderErrorNetwork is a transport failure or timeout. Retryable.
	ProviderErrorNetwork ProviderErrorKind = "network"

	// ProviderErrorMalformed is an unparseable or unexpected response.
	ProviderErrorMalformed ProviderErrorKind = "malformed"
)

// ProviderError describes a failed call to an embedding or generation
// backend. It is never silently swallowed: callers either retry
// (network class) or surface it.
type ProviderError struct {
	// Provider is the backend name ("openai", "google", "offline").
	Provider string

	// Op is the failed operation ("embed", "generate", "ping").
	Op string

	// Kind is the failure class.
	Kind ProviderErrorKind

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Provider, e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Provider, e.Op, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrProvider, so that
// errors.Is(err, ErrProvider) matches any provider failure.
func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// Retryable reports whether the failure is transient. Only the network
// class is retried; auth and quota failures repeat deterministically.
func (e *ProviderError) Retryable() bool {
	return e.Kind == ProviderErrorNetwork
}

// NewProviderError builds a classified provider failure.
func NewProviderError(provider, op string, kind ProviderErrorKind, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, Kind: kind, Err: err}
}
