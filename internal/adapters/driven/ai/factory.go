// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/custodia-labs/docvault-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/docvault-cli/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/custodia-labs/docvault-cli/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/docvault-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/docvault-cli/internal/core/domain"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding service selected by the
// settings.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider: %s",
			domain.ErrInvalidInput, settings.Provider)
	}
}

// CreateCompletionService creates the completion service selected by
// the settings.
func CreateCompletionService(settings domain.CompletionSettings) (driven.CompletionService, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewCompletionService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewCompletionService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("%w: unsupported completion provider: %s",
			domain.ErrInvalidInput, settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity before returning it.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateCompletionService creates a completion service and
// validates connectivity before returning it.
func CreateAndValidateCompletionService(settings domain.CompletionSettings) (driven.CompletionService, error) {
	svc, err := CreateCompletionService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrCompletionUnavailable, err)
	}
	return svc, nil
}
