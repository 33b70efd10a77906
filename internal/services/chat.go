package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sentinel/sentinel-backend/internal/providers"
	"github.com/sentinel/sentinel-backend/internal/session"
)

// EmptyMessageReply is returned for blank input without touching the
// provider or the session history.
const EmptyMessageReply = "Please type a question."

// ChatService runs one chat round-trip per request: load history, append
// the user turn, call the completion provider with the immutable system
// prompt, record the reply, persist.
type ChatService struct {
	provider     providers.Provider
	store        session.HistoryStore
	systemPrompt string
	model        string
	maxTokens    int
	historyLimit int
	logger       *logrus.Logger
}

// NewChatService creates a new chat service. historyLimit caps the turns
// kept per session; zero means unbounded.
func NewChatService(provider providers.Provider, store session.HistoryStore, systemPrompt, model string, maxTokens, historyLimit int, logger *logrus.Logger) *ChatService {
	return &ChatService{
		provider:     provider,
		store:        store,
		systemPrompt: systemPrompt,
		model:        model,
		maxTokens:    maxTokens,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// HandleMessage processes one user message for the given session and
// returns the assistant reply. Provider failures never surface as errors:
// they become the assistant's turn, prefixed with "Error:". The returned
// error covers history-store failures only.
func (s *ChatService) HandleMessage(ctx context.Context, sessionID, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return EmptyMessageReply, nil
	}

	history, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}

	history = append(history, session.Turn{Role: session.RoleUser, Content: message})
	history = s.truncate(history)

	reply := s.complete(ctx, sessionID, history)

	history = append(history, session.Turn{Role: session.RoleAssistant, Content: reply})
	history = s.truncate(history)

	if err := s.store.Put(ctx, sessionID, history); err != nil {
		return "", fmt.Errorf("failed to save history: %w", err)
	}

	return reply, nil
}

// ResetSession discards the session's accumulated history.
func (s *ChatService) ResetSession(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

// complete calls the provider with the system prompt plus the full
// history. Any failure is downgraded to a reply string.
func (s *ChatService) complete(ctx context.Context, sessionID string, history []session.Turn) string {
	messages := make([]providers.Message, 0, len(history)+1)
	messages = append(messages, providers.Message{
		Role:    session.RoleSystem,
		Content: s.systemPrompt,
	})
	for _, turn := range history {
		messages = append(messages, providers.Message{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	start := time.Now()
	resp, err := s.provider.Complete(ctx, providers.CompletionRequest{
		Messages:  messages,
		Model:     s.model,
		MaxTokens: s.maxTokens,
	})
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"error":      err,
		}).Warn("Completion request failed")
		return fmt.Sprintf("Error: %s", err.Error())
	}
	if len(resp.Choices) == 0 {
		s.logger.WithField("session_id", sessionID).Warn("Completion response had no choices")
		return "Error: empty response from model"
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"latency_ms": time.Since(start).Milliseconds(),
		"turns":      len(history),
	}).Info("Completion request succeeded")

	return resp.Choices[0].Message.Content
}

// truncate keeps the most recent historyLimit turns.
func (s *ChatService) truncate(history []session.Turn) []session.Turn {
	if s.historyLimit <= 0 || len(history) <= s.historyLimit {
		return history
	}
	return history[len(history)-s.historyLimit:]
}
