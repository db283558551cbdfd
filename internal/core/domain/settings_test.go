package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, 200, s.Chunking.Overlap())
	assert.Equal(t, "", s.Chunking.Separators[len(s.Chunking.Separators)-1])
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero chunk size", func(s *Settings) { s.Chunking.Size = 0 }},
		{"overlap ratio too large", func(s *Settings) { s.Chunking.OverlapRatio = 1.0 }},
		{"unknown embedding provider", func(s *Settings) { s.Embedding.Provider = "acme" }},
		{"unknown completion provider", func(s *Settings) { s.Completion.Provider = "acme" }},
		{"openai embedding without key", func(s *Settings) { s.Embedding.Provider = AIProviderOpenAI }},
		{"openai completion without key", func(s *Settings) { s.Completion.Provider = AIProviderOpenAI }},
		{"negative embedding rate limit", func(s *Settings) { s.Embedding.RateLimit = -1 }},
		{"zero top_k", func(s *Settings) { s.Search.TopK = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAIProvider(t *testing.T) {
	assert.True(t, AIProviderOllama.IsValid())
	assert.True(t, AIProviderOpenAI.IsValid())
	assert.False(t, AIProvider("gemini").IsValid())

	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
}
