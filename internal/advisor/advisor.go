package advisor

import (
	"context"
	"log/slog"
)

// FallbackMessage is returned whenever the external service fails.
const FallbackMessage = "⚠️ The advisor is temporarily unavailable. Try again later."

// Service is the failure-absorbing advisory surface the bot talks to.
// It never returns an error: any client failure collapses into the fixed
// fallback message, so a dead advisory service can never break a dialog.
type Service struct {
	client Client
	logger *slog.Logger
}

// NewService wraps a Client. logger may be nil.
func NewService(client Client, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, logger: logger}
}

// Advise relays the prompt and returns either the advisory text or the
// fallback message.
func (s *Service) Advise(ctx context.Context, prompt string) string {
	text, err := s.client.Advise(ctx, prompt)
	if err != nil {
		s.logger.Warn("advisory call failed", "error", err)
		return FallbackMessage
	}
	return text
}
