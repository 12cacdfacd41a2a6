// Package llm provides text-completion clients for the assistant.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/config"
)

// ErrMissingAPIKey is returned by a client whose provider needs a credential that was not configured.
var ErrMissingAPIKey = errors.New("API key not configured")

// Client completes a prompt with the given model and returns the generated text.
type Client interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// maxErrorBody caps how much of an error response is kept in the returned error.
const maxErrorBody = 512

// NewClient builds the client for cfg.Provider, rate limited when requests_per_minute is set.
// Requests have no deadline of their own unless cfg.Timeout is set.
func NewClient(cfg *config.LLMConfig, logger *zap.Logger) (Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	var c Client
	switch cfg.Provider {
	case config.ProviderGemini, "":
		c = NewGeminiClient(cfg.ResolveAPIKey(),
			WithGeminiBaseURL(cfg.BaseURL),
			WithGeminiHTTPClient(httpClient),
		)
	case config.ProviderOllama:
		c = NewOllamaClient(
			WithOllamaBaseURL(cfg.BaseURL),
			WithOllamaHTTPClient(httpClient),
		)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}

	if cfg.RequestsPerMinute > 0 {
		c = NewRateLimited(c, cfg.RequestsPerMinute, cfg.Burst, WithRateLimitLogger(logger))
	}
	return c, nil
}
