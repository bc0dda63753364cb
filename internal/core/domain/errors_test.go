package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderError_Error(t *testing.T) {
	err := NewProviderError("openai", "embed", ProviderErrorNetwork, errors.New("connection refused"))
	assert.Contains(t, err.Error(), "openai")
	assert.Contains(t, err.Error(), "embed")
	assert.Contains(t, err.Error(), "network")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestProviderError_MatchesBaseError(t *testing.T) {
	err := NewProviderError("google", "generate", ProviderErrorAuth, errors.New("401"))
	assert.True(t, errors.Is(err, ErrProvider))
	assert.False(t, errors.Is(err, ErrIndex))
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewProviderError("openai", "generate", ProviderErrorMalformed, cause)
	assert.True(t, errors.Is(err, cause))
}

func TestProviderError_Retryable(t *testing.T) {
	tests := []struct {
		kind      ProviderErrorKind
		retryable bool
	}{
		{ProviderErrorNetwork, true},
		{ProviderErrorAuth, false},
		{ProviderErrorQuota, false},
		{ProviderErrorMalformed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := NewProviderError("openai", "embed", tt.kind, nil)
			assert.Equal(t, tt.retryable, err.Retryable())
		})
	}
}

func TestRefusalSentence_IsNotAnErrorMessage(t *testing.T) {
	// Failures must stay distinguishable from a graceful refusal.
	for _, err := range []error{ErrConfiguration, ErrInvalidInput, ErrIndex, ErrProvider} {
		require.NotEqual(t, RefusalSentence, err.Error())
	}
}
