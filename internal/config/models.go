package config

// APIConfig holds Perplexity API configuration
type APIConfig struct {
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url"`            // Optional, for API-compatible test endpoints
	Model             string `mapstructure:"model"`               // Model for the standard tools
	DeepResearchModel string `mapstructure:"deep_research_model"` // Model for deep research
	Timeout           int    `mapstructure:"timeout"`             // HTTP timeout in seconds
}

// CacheConfig holds similarity cache configuration
type CacheConfig struct {
	Enabled    bool    `mapstructure:"enabled"`     // Enable the in-memory similarity cache
	Threshold  float64 `mapstructure:"threshold"`   // Minimum score treated as a hit
	MaxEntries int     `mapstructure:"max_entries"` // Maximum entries kept in memory
	Dimensions int     `mapstructure:"dimensions"`  // Embedding vector width
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	LogDir         string `mapstructure:"log_dir"`
	FileLevel      string `mapstructure:"file_level"`    // debug, info, warn, error
	ConsoleLevel   string `mapstructure:"console_level"` // debug, info, warn, error
	ConsoleEnabled bool   `mapstructure:"console_enabled"`
}

// ServerConfig is the top-level configuration for the server process
type ServerConfig struct {
	API           APIConfig     `mapstructure:"api"`
	Cache         CacheConfig   `mapstructure:"cache"`
	Logging       LoggingConfig `mapstructure:"logging"`
	MaxConcurrent int           `mapstructure:"max_concurrent"` // Concurrent tool executions
	PromptsDir    string        `mapstructure:"prompts_dir"`    // Optional prompt template overrides
}

// DefaultServerConfig returns the built-in defaults
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		API: APIConfig{
			BaseURL:           "https://api.perplexity.ai",
			Model:             "sonar-reasoning-pro",
			DeepResearchModel: "sonar-deep-research",
			Timeout:           180,
		},
		Cache: CacheConfig{
			Enabled:    false,
			Threshold:  0.95,
			MaxEntries: 1000,
			Dimensions: 256,
		},
		Logging: LoggingConfig{
			LogDir:         ".perplexity/logs",
			FileLevel:      "info",
			ConsoleLevel:   "warn",
			ConsoleEnabled: true,
		},
		MaxConcurrent: 4,
	}
}
