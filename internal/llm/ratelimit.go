package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimited wraps a Client with a token-bucket limit on outgoing requests.
type RateLimited struct {
	next    Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// RateLimitOption configures a RateLimited client.
type RateLimitOption func(*RateLimited)

// WithRateLimitLogger sets the logger used to report throttled calls.
func WithRateLimitLogger(logger *zap.Logger) RateLimitOption {
	return func(r *RateLimited) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRateLimited limits next to rpm requests per minute with the given burst.
// An rpm of 0 or less disables limiting.
func NewRateLimited(next Client, rpm, burst int, opts ...RateLimitOption) *RateLimited {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	if rpm > 0 {
		limit = rate.Limit(float64(rpm) / 60.0)
	}
	r := &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Complete waits for a token, then delegates. Waiting honours ctx cancellation.
func (r *RateLimited) Complete(ctx context.Context, model, prompt string) (string, error) {
	if r.limiter.Tokens() < 1 {
		r.logger.Debug("llm request throttled", zap.Float64("limit_per_second", float64(r.limiter.Limit())))
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Complete(ctx, model, prompt)
}
