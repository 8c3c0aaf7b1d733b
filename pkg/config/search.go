package config

import "time"

// SearchConfig configures the external track search
type SearchConfig struct {
	YtDlpPath string `env:"YTDLP_PATH" env-default:"yt-dlp"`
	Limit     int    `env:"SEARCH_LIMIT" env-default:"20"`
	Timeout   string `env:"SEARCH_TIMEOUT" env-default:"PT20S"`

	// Consecutive failures that open the breaker, and how long it stays open
	BreakerThreshold int    `env:"SEARCH_BREAKER_THRESHOLD" env-default:"5"`
	BreakerTimeout   string `env:"SEARCH_BREAKER_TIMEOUT" env-default:"PT30S"`

	// RedisAddr enables the result cache when set
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" env-default:"0"`
	CacheTTL      string `env:"SEARCH_CACHE_TTL" env-default:"PT1H"`
}

// ParseTimeout parses the per-search timeout
func (s SearchConfig) ParseTimeout() (time.Duration, error) {
	return ParseDuration(s.Timeout)
}

// ParseBreakerTimeout parses how long the open breaker rejects searches
func (s SearchConfig) ParseBreakerTimeout() (time.Duration, error) {
	return ParseDuration(s.BreakerTimeout)
}

// ParseCacheTTL parses the result cache TTL
func (s SearchConfig) ParseCacheTTL() (time.Duration, error) {
	return ParseDuration(s.CacheTTL)
}

func (s SearchConfig) validate() ValidationErrors {
	errs := CollectErrors(
		RequireNonEmpty("YTDLP_PATH", s.YtDlpPath),
		RequirePositive("SEARCH_LIMIT", s.Limit),
		RequireDuration("SEARCH_TIMEOUT", s.Timeout),
		RequirePositive("SEARCH_BREAKER_THRESHOLD", s.BreakerThreshold),
		RequireDuration("SEARCH_BREAKER_TIMEOUT", s.BreakerTimeout),
	)
	if s.RedisAddr != "" {
		errs = append(errs, CollectErrors(RequireDuration("SEARCH_CACHE_TTL", s.CacheTTL))...)
	}
	return errs
}
