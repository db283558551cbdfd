package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/docvault-cli/internal/core/domain"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docvault-cli/internal/logger"
)

// Ensure Assistant implements the interface.
var _ driving.ChatService = (*Assistant)(nil)

// noContextMessage is injected as context when retrieval finds
// nothing relevant.
const noContextMessage = "No relevant information found in the knowledge base."

// fallbackSystemPrompt is used when no prompt store is configured or
// the chat_system prompt cannot be loaded.
const fallbackSystemPrompt = `You are a retrieval assistant answering questions from an indexed document collection.
Answer only from the context you are given. If the context does not contain the answer, say so.`

// Assistant is the conversational retrieval orchestrator. Each query
// retrieves the top-k chunks for the question, packs them into the
// system message together with the assistant instructions, and sends
// the conversation to the completion service.
//
// An Assistant owns a single conversation and is not safe for
// concurrent Query calls.
type Assistant struct {
	search       driving.SearchService
	completer    driven.CompletionService
	prompts      driven.PromptStore
	conversation *domain.Conversation
	topK         int
	temperature  float64
}

// NewAssistant creates a chat service with a fresh conversation.
// The prompt store is optional; without it the embedded fallback
// instructions are used.
func NewAssistant(search driving.SearchService, completer driven.CompletionService, prompts driven.PromptStore, settings domain.Settings) *Assistant {
	return &Assistant{
		search:       search,
		completer:    completer,
		prompts:      prompts,
		conversation: domain.NewConversation(),
		topK:         settings.Search.TopK,
		temperature:  settings.Completion.Temperature,
	}
}

// Query answers a question from retrieved context plus conversation
// history. The human and assistant turns are appended only on
// success; any failure leaves the history untouched.
func (a *Assistant) Query(ctx context.Context, question string) (string, error) {
	logger.Section("Chat Query")
	logger.Debug("Conversation %s: %q", a.conversation.ID, question)

	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	if a.completer == nil {
		return "", fmt.Errorf("%w: no completion service configured", domain.ErrCompletionUnavailable)
	}

	results, err := a.search.Search(ctx, question, domain.SearchOptions{TopK: a.topK})
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	messages := a.buildMessages(question, formatContext(results))

	answer, err := a.completer.Chat(ctx, messages, driven.ChatOptions{
		Temperature: a.temperature,
	})
	if err != nil {
		return "", err
	}

	a.conversation.Append(domain.RoleHuman, question)
	a.conversation.Append(domain.RoleAssistant, answer)
	logger.Debug("Conversation %s: %d turns", a.conversation.ID, len(a.conversation.Turns))

	return answer, nil
}

// Reset clears the conversation, starting a fresh session. Stored
// documents are not affected.
func (a *Assistant) Reset() {
	a.conversation = domain.NewConversation()
	logger.Info("Chat history has been reset")
}

// History returns a copy of the conversation turns so far.
func (a *Assistant) History() []domain.Turn {
	turns := make([]domain.Turn, len(a.conversation.Turns))
	copy(turns, a.conversation.Turns)
	return turns
}

// buildMessages assembles the chat request: system instructions with
// the retrieved context, the conversation history, then the question.
func (a *Assistant) buildMessages(question, contextBlock string) []driven.ChatMessage {
	system := fmt.Sprintf(
		"%s\n\nThe context below contains information to help answer the question:\n\n%s",
		a.systemPrompt(), contextBlock)

	messages := make([]driven.ChatMessage, 0, len(a.conversation.Turns)+2)
	messages = append(messages, driven.ChatMessage{Role: "system", Content: system})

	for _, turn := range a.conversation.Turns {
		role := "user"
		if turn.Role == domain.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, driven.ChatMessage{Role: role, Content: turn.Content})
	}

	return append(messages, driven.ChatMessage{Role: "user", Content: question})
}

// systemPrompt loads the assistant instructions, falling back to the
// embedded default.
func (a *Assistant) systemPrompt() string {
	if a.prompts == nil {
		return fallbackSystemPrompt
	}
	prompt, err := a.prompts.Load(driven.PromptChatSystem)
	if err != nil {
		logger.Warn("Loading chat prompt failed: %v", err)
		return fallbackSystemPrompt
	}
	return prompt
}

// formatContext renders retrieved chunks as a numbered context block.
func formatContext(results []domain.SearchResult) string {
	if len(results) == 0 {
		return noContextMessage
	}

	blocks := make([]string, len(results))
	for i, result := range results {
		blocks[i] = fmt.Sprintf("[Document %d]\nSource: %s\nRelevance: %.2f\nContent:\n%s\n",
			i+1, result.Collection, result.Score, strings.TrimSpace(result.Content))
	}
	return strings.Join(blocks, "\n")
}
