// Package tokens estimates the token size of prompt context.
package tokens

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"
)

// DefaultEncoding is the BPE encoding used for counting.
const DefaultEncoding = "cl100k_base"

// Counter counts tokens in text.
type Counter interface {
	Count(text string) int
}

// CharCounter estimates one token per four bytes, rounded up.
type CharCounter struct{}

// Count implements Counter.
func (CharCounter) Count(text string) int {
	return (len(text) + 3) / 4
}

type encoder interface {
	Encode(text string, allowedSpecial []string, disallowedSpecial []string) []int
}

// BPECounter counts tokens with a tiktoken encoding. The encoding is loaded on first use;
// if it cannot be loaded (for example offline, before the BPE ranks are cached), counting
// falls back to CharCounter.
type BPECounter struct {
	encoding string
	logger   *zap.Logger
	load     func(name string) (encoder, error)

	once sync.Once
	enc  encoder
}

// Option configures a BPECounter.
type Option func(*BPECounter)

// WithLogger sets the logger used to report a failed encoding load.
func WithLogger(logger *zap.Logger) Option {
	return func(c *BPECounter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEncoding selects a tiktoken encoding by name.
func WithEncoding(name string) Option {
	return func(c *BPECounter) {
		c.encoding = name
	}
}

// NewBPECounter creates a counter. Nothing is loaded until Preload or the first Count.
func NewBPECounter(opts ...Option) *BPECounter {
	c := &BPECounter{
		encoding: DefaultEncoding,
		logger:   zap.NewNop(),
		load: func(name string) (encoder, error) {
			return tiktoken.GetEncoding(name)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Preload loads the encoding now instead of on the first Count. The first load may
// download the BPE ranks, so long-running hosts call it at startup.
func (c *BPECounter) Preload() {
	c.once.Do(func() {
		enc, err := c.load(c.encoding)
		if err != nil {
			c.logger.Warn("token encoding unavailable, estimating from length",
				zap.String("encoding", c.encoding), zap.Error(err))
			return
		}
		c.enc = enc
	})
}

// Count implements Counter.
func (c *BPECounter) Count(text string) int {
	c.Preload()
	if c.enc == nil {
		return CharCounter{}.Count(text)
	}
	return len(c.enc.Encode(text, nil, nil))
}
