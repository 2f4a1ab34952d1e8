package model

import "time"

// Config is the complete veristat configuration
type Config struct {
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Temporal    TemporalConfig    `yaml:"temporal" mapstructure:"temporal"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// SearchConfig controls the web-search provider
type SearchConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"` // override for testing
	MaxResults        int           `yaml:"max_results" mapstructure:"max_results"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// LLMConfig holds the generative-service configuration
type LLMConfig struct {
	Provider   string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model      string `yaml:"model" mapstructure:"model"`
	APIKey     string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL    string `yaml:"base_url" mapstructure:"base_url"`
	Timeout    int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens  int    `yaml:"max_tokens" mapstructure:"max_tokens"`
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// CacheConfig controls search-result caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// TemporalConfig controls the temporal relevance check
type TemporalConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// ConcurrencyConfig controls parallelism
type ConcurrencyConfig struct {
	DetailWorkers int `yaml:"detail_workers" mapstructure:"detail_workers"` // parallel detail verifications per article
	BatchWorkers  int `yaml:"batch_workers" mapstructure:"batch_workers"`   // parallel claims in batch mode
}

// OutputConfig controls reporting
type OutputConfig struct {
	Verbose  bool     `yaml:"verbose" mapstructure:"verbose"`
	Language Language `yaml:"language" mapstructure:"language"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MaxResults:        10,
			Timeout:           20 * time.Second,
			UserAgent:         "Veristat/0.1 (+https://github.com/veristat/veristat)",
			MaxBodyBytes:      2_000_000,
			RequestsPerSecond: 1,
			BurstSize:         3,
			RespectRobots:     true,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Timeout:   60,
			MaxTokens: 1000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.veristat/cache at startup
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   6 * time.Hour,
		},
		Temporal: TemporalConfig{
			Enabled: true,
		},
		Concurrency: ConcurrencyConfig{
			DetailWorkers: 2,
			BatchWorkers:  4,
		},
		Output: OutputConfig{
			Language: LanguageZhTW,
		},
	}
}
