package ranking

// DefaultStopWords are question words dropped before keyword scoring.
var DefaultStopWords = []string{"what", "when", "where", "which", "about", "this", "that", "with", "from", "have", "been"}

// RankingConfig holds all configuration for relevance ranking.
type RankingConfig struct {
	TitleWeight      int      `yaml:"title_weight"`       // default: 10
	BodyWeight       int      `yaml:"body_weight"`        // default: 1
	MinKeywordLength int      `yaml:"min_keyword_length"` // default: 4
	MaxResults       int      `yaml:"max_results"`        // default: 20
	FallbackResults  int      `yaml:"fallback_results"`   // default: 10
	StopWords        []string `yaml:"stop_words"`
	KeywordRegex     bool     `yaml:"keyword_regex"` // default: false (keywords matched literally)
}

// DefaultRankingConfig returns the default ranking configuration.
func DefaultRankingConfig() *RankingConfig {
	c := &RankingConfig{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero values with defaults.
func (c *RankingConfig) ApplyDefaults() {
	if c.TitleWeight == 0 {
		c.TitleWeight = 10
	}
	if c.BodyWeight == 0 {
		c.BodyWeight = 1
	}
	if c.MinKeywordLength == 0 {
		c.MinKeywordLength = 4
	}
	if c.MaxResults == 0 {
		c.MaxResults = 20
	}
	if c.FallbackResults == 0 {
		c.FallbackResults = 10
	}
	if c.StopWords == nil {
		c.StopWords = append([]string(nil), DefaultStopWords...)
	}
}
