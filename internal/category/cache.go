package category

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/vaultwise/internal/models"
	"github.com/hyperjump/vaultwise/internal/vault"
	"github.com/hyperjump/vaultwise/pkg/utils"
)

// DefaultTTL is how long an enriched category list is served before it is rebuilt.
const DefaultTTL = time.Hour

// Cache memoizes the enriched category list of one vault. Reads rebuild synchronously when
// the stored list is missing, expired or belongs to another vault. There is no background
// refresh. Concurrent stale reads may each rebuild; the stored list is always replaced whole.
type Cache struct {
	reader   *vault.Reader
	enricher *Enricher
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger

	mu         sync.Mutex
	categories []models.VaultCategory
	vaultPath  string
	refreshed  time.Time
	valid      bool
	generation uint64
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets the time-to-live of a stored list.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock sets the clock used for staleness checks.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = utils.OrNop(logger)
	}
}

// NewCache creates an empty cache.
func NewCache(reader *vault.Reader, enricher *Enricher, opts ...CacheOption) *Cache {
	c := &Cache{
		reader:   reader,
		enricher: enricher,
		ttl:      DefaultTTL,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetCategories returns the categories of vaultPath, rebuilding them when the stored
// list is not fresh. The returned slice is a copy.
func (c *Cache) GetCategories(ctx context.Context, vaultPath string) ([]models.VaultCategory, error) {
	vaultPath = filepath.Clean(vaultPath)

	c.mu.Lock()
	if c.freshLocked(vaultPath) {
		out := cloneCategories(c.categories)
		c.mu.Unlock()
		return out, nil
	}
	gen := c.generation
	c.mu.Unlock()

	c.logger.Info("discovering vault categories", zap.String("vault", vaultPath))
	discovered, err := Discover(c.reader, vaultPath)
	if err != nil {
		return nil, err
	}
	enriched, err := c.enricher.Enrich(ctx, discovered)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// An Invalidate during the rebuild means this result may predate the change that
	// triggered it, so it is returned but not stored.
	if c.generation == gen {
		c.categories = enriched
		c.vaultPath = vaultPath
		c.refreshed = c.now()
		c.valid = true
	}
	c.mu.Unlock()

	c.logger.Info("category analysis complete", zap.Int("categories", len(enriched)))
	return cloneCategories(enriched), nil
}

// Invalidate clears the stored list so the next GetCategories rebuilds.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = nil
	c.vaultPath = ""
	c.refreshed = time.Time{}
	c.valid = false
	c.generation++
}

// IsValid reports whether a stored list exists and is within the TTL.
func (c *Cache) IsValid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.valid && c.now().Sub(c.refreshed) <= c.ttl
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

func (c *Cache) freshLocked(vaultPath string) bool {
	return c.valid && c.vaultPath == vaultPath && c.now().Sub(c.refreshed) <= c.ttl
}

func cloneCategories(in []models.VaultCategory) []models.VaultCategory {
	out := make([]models.VaultCategory, len(in))
	copy(out, in)
	return out
}
