// Package assistant assembles prompts from vault notes, calls the text-completion
// service and parses replies into result records.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/category"
	"github.com/hyperjump/vaultwise/internal/config"
	"github.com/hyperjump/vaultwise/internal/llm"
	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/internal/ranking"
	"github.com/hyperjump/vaultwise/internal/sampling"
	"github.com/hyperjump/vaultwise/internal/tokens"
	"github.com/hyperjump/vaultwise/internal/vault"
	"github.com/hyperjump/vaultwise/pkg/utils"
)

// Operation prefixes used when wrapping errors.
const (
	opCategorize = "categorization failed"
	opSummarize  = "summarization failed"
	opAnalyze    = "pattern analysis failed"
	opAsk        = "q&a failed"
	opReport     = "batch processing failed"
)

// Assistant runs the vault operations. It is safe for concurrent use; the only shared
// state is the category cache.
type Assistant struct {
	client  llm.Client
	model   string
	cfg     config.AssistantConfig
	reader  *vault.Reader
	cache   *category.Cache
	scorer  *ranking.Scorer
	sampler *sampling.Sampler
	counter tokens.Counter
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithConfig sets context-selection and sampling limits. Zero values use defaults.
func WithConfig(cfg config.AssistantConfig) Option {
	return func(a *Assistant) {
		a.cfg = cfg
	}
}

// WithReader sets the vault reader.
func WithReader(r *vault.Reader) Option {
	return func(a *Assistant) {
		a.reader = r
	}
}

// WithCache sets the category cache. Without it a cache is built from the other options.
func WithCache(c *category.Cache) Option {
	return func(a *Assistant) {
		a.cache = c
	}
}

// WithCounter sets the token counter used for Q&A context size.
func WithCounter(c tokens.Counter) Option {
	return func(a *Assistant) {
		a.counter = c
	}
}

// WithClock sets the clock used for report timestamps and importance sampling.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) {
		a.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Assistant) {
		a.logger = utils.OrNop(logger)
	}
}

// New creates an Assistant that completes prompts with client using model.
func New(client llm.Client, model string, opts ...Option) *Assistant {
	a := &Assistant{
		client:  client,
		model:   model,
		counter: tokens.CharCounter{},
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.cfg.ApplyDefaults()
	if a.reader == nil {
		a.reader = vault.NewReader(vault.WithLogger(a.logger))
	}
	a.scorer = ranking.NewScorer(&ranking.RankingConfig{
		MaxResults:      a.cfg.QAMaxNotes,
		FallbackResults: a.cfg.QAFallbackNotes,
		KeywordRegex:    a.cfg.KeywordRegex,
	})
	a.sampler = sampling.NewSampler(sampling.WithClock(a.now))
	if a.cache == nil {
		enricher := category.NewEnricher(a.reader, client, model,
			category.WithSampling(a.cfg.CategorySamples, a.cfg.CategoryDepth, a.cfg.CategorySampleChars),
			category.WithEnricherLogger(a.logger),
		)
		a.cache = category.NewCache(a.reader, enricher,
			category.WithTTL(a.cfg.CategoryTTL),
			category.WithClock(a.now),
			category.WithLogger(a.logger),
		)
	}
	return a
}

// Cache returns the category cache, so long-running hosts can invalidate it.
func (a *Assistant) Cache() *category.Cache {
	return a.cache
}

// Categories returns the vault's enriched categories. With refresh, the cache is
// invalidated first so the list is rebuilt regardless of its age.
func (a *Assistant) Categories(ctx context.Context, vaultPath string, refresh bool) ([]models.VaultCategory, error) {
	if err := requirePath("vault path", vaultPath); err != nil {
		return nil, err
	}
	if refresh {
		a.cache.Invalidate()
	}
	return a.cache.GetCategories(ctx, vaultPath)
}

// complete sends prompt to the model. Failures other than cancellation are classified as
// external-service errors.
func (a *Assistant) complete(ctx context.Context, prompt string) (string, error) {
	a.logger.Debug("sending prompt", zap.String("model", a.model), zap.Int("chars", len(prompt)))
	reply, err := a.client.Complete(ctx, a.model, prompt)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %w", models.ErrExternalService, err)
	}
	return strings.TrimSpace(reply), nil
}

func requirePath(what, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: %s is required", models.ErrInvalidInput, what)
	}
	return nil
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// IsClientError reports whether err was caused by the caller's input rather than by the
// vault contents or an external service.
func IsClientError(err error) bool {
	return errors.Is(err, models.ErrInvalidInput) || errors.Is(err, models.ErrNotFound)
}
