package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/user/perplexity-mcp/internal/errors"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvPrefix("PERPLEXITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return &Loader{v: v}
}

// Load resolves the server configuration.
// Precedence: CLI overrides > ./.perplexity/config.yaml > ~/.perplexity-mcp.yaml > environment > defaults
func (l *Loader) Load(cliOverrides map[string]interface{}) (*ServerConfig, error) {
	l.setDefaults()

	if err := l.loadGlobalConfig(); err != nil {
		return nil, err
	}

	if err := l.loadProjectConfig(); err != nil {
		return nil, err
	}

	for key, value := range cliOverrides {
		l.v.Set(key, value)
	}

	cfg := DefaultServerConfig()
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapError(err, "Failed to parse configuration", errors.ExitConfigError)
	}

	// The credential is not nested under the env prefix scheme: honor the
	// documented PERPLEXITY_API_KEY variable directly.
	if cfg.API.APIKey == "" {
		cfg.API.APIKey = os.Getenv("PERPLEXITY_API_KEY")
	}

	return &cfg, nil
}

func (l *Loader) setDefaults() {
	def := DefaultServerConfig()
	l.v.SetDefault("api.base_url", def.API.BaseURL)
	l.v.SetDefault("api.model", def.API.Model)
	l.v.SetDefault("api.deep_research_model", def.API.DeepResearchModel)
	l.v.SetDefault("api.timeout", def.API.Timeout)
	l.v.SetDefault("cache.enabled", def.Cache.Enabled)
	l.v.SetDefault("cache.threshold", def.Cache.Threshold)
	l.v.SetDefault("cache.max_entries", def.Cache.MaxEntries)
	l.v.SetDefault("cache.dimensions", def.Cache.Dimensions)
	l.v.SetDefault("logging.log_dir", def.Logging.LogDir)
	l.v.SetDefault("logging.file_level", def.Logging.FileLevel)
	l.v.SetDefault("logging.console_level", def.Logging.ConsoleLevel)
	l.v.SetDefault("logging.console_enabled", def.Logging.ConsoleEnabled)
	l.v.SetDefault("max_concurrent", def.MaxConcurrent)
}

// loadGlobalConfig loads configuration from ~/.perplexity-mcp.yaml
func (l *Loader) loadGlobalConfig() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil // Not a fatal error
	}

	globalConfig := filepath.Join(homeDir, ".perplexity-mcp.yaml")
	if _, err := os.Stat(globalConfig); err != nil {
		return nil // File doesn't exist, skip
	}

	l.v.SetConfigFile(globalConfig)
	if err := l.v.ReadInConfig(); err != nil {
		return errors.WrapError(err, "Failed to read "+globalConfig, errors.ExitConfigError)
	}

	return nil
}

// loadProjectConfig loads configuration from .perplexity/config.yaml
func (l *Loader) loadProjectConfig() error {
	projectConfig := filepath.Join(".perplexity", "config.yaml")
	if _, err := os.Stat(projectConfig); err != nil {
		return nil
	}

	l.v.SetConfigFile(projectConfig)
	if err := l.v.MergeInConfig(); err != nil {
		return errors.WrapError(err, "Failed to read "+projectConfig, errors.ExitConfigError)
	}

	return nil
}
