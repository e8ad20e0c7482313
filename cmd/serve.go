package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/user/perplexity-mcp/internal/config"
	"github.com/user/perplexity-mcp/internal/errors"
	"github.com/user/perplexity-mcp/internal/logging"
	"github.com/user/perplexity-mcp/internal/perplexity"
	"github.com/user/perplexity-mcp/internal/prompts"
	"github.com/user/perplexity-mcp/internal/server"
	"github.com/user/perplexity-mcp/internal/simcache"
	"github.com/user/perplexity-mcp/internal/tools"
	"github.com/user/perplexity-mcp/internal/usage"
	"github.com/user/perplexity-mcp/internal/worker_pool"
)

var (
	serveCacheEnabled bool
	serveThreshold    float64
	serveMaxWorkers   int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		overrides := map[string]interface{}{}
		if cmd.Flags().Changed("cache") {
			overrides["cache.enabled"] = serveCacheEnabled
		}
		if cmd.Flags().Changed("threshold") {
			overrides["cache.threshold"] = serveThreshold
		}
		if cmd.Flags().Changed("max-concurrent") {
			overrides["max_concurrent"] = serveMaxWorkers
		}

		cfg, err := config.NewLoader().Load(overrides)
		if err != nil {
			return exitWith(err)
		}

		// Fail fast: without a credential no remote call can succeed
		if cfg.API.APIKey == "" {
			return exitWith(errors.NewMissingCredentialError("PERPLEXITY_API_KEY"))
		}

		logCfg := &logging.Config{
			LogDir:         cfg.Logging.LogDir,
			FileLevel:      logging.LevelFromString(cfg.Logging.FileLevel),
			ConsoleLevel:   logging.LevelFromString(cfg.Logging.ConsoleLevel),
			EnableCaller:   true,
			ConsoleEnabled: cfg.Logging.ConsoleEnabled,
		}
		if debugFlag {
			logCfg.FileLevel = logging.LevelFromString("debug")
			logCfg.ConsoleLevel = logging.LevelFromString("debug")
		}
		logger, err := logging.NewLogger(logCfg)
		if err != nil {
			return exitWith(errors.WrapError(err, "Failed to initialize logging", errors.ExitGeneralError))
		}
		defer func() { _ = logger.Sync() }()

		registry, err := buildRegistry(cfg, logger)
		if err != nil {
			return exitWith(err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		pool := worker_pool.New(cfg.MaxConcurrent)
		srv := server.New(rootCmd.Use, rootCmd.Version, registry, pool, logger, os.Stdin, os.Stdout)

		logger.Info("server starting",
			logging.Bool("cache_enabled", cfg.Cache.Enabled),
			logging.Int("max_concurrent", cfg.MaxConcurrent),
		)
		if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
			return exitWith(errors.WrapError(err, "Server terminated", errors.ExitServerError))
		}
		return nil
	},
}

// buildRegistry wires the pipeline: cache, embedder, gateway, reporter,
// prompt templates, and the five tool variants.
func buildRegistry(cfg *config.ServerConfig, logger *logging.Logger) (*tools.Registry, error) {
	var cache simcache.Cache = simcache.NewPassthrough()
	var embedder simcache.Embedder = simcache.ZeroEmbedder{}
	if cfg.Cache.Enabled {
		cache = simcache.NewMemoryCache(cfg.Cache.MaxEntries)
		embedder = simcache.NewTokenHashEmbedder(cfg.Cache.Dimensions)
	}

	client := perplexity.NewClient(perplexity.ClientConfig{
		APIKey:       cfg.API.APIKey,
		BaseURL:      cfg.API.BaseURL,
		Timeout:      timeoutSeconds(cfg.API.Timeout),
		HitThreshold: cfg.Cache.Threshold,
	}, cache, embedder, logger)

	promptManager, err := prompts.NewManagerWithOverrides(cfg.PromptsDir)
	if err != nil {
		return nil, errors.WrapError(err, "Failed to load prompt templates", errors.ExitConfigError)
	}

	deps := tools.Deps{
		Caller:            client,
		Reporter:          usage.NewLogReporter(logger),
		Prompts:           promptManager,
		Logger:            logger,
		Model:             cfg.API.Model,
		DeepResearchModel: cfg.API.DeepResearchModel,
	}

	registry := tools.NewRegistry()
	registry.Register(tools.NewSearchTool(deps))
	registry.Register(tools.NewGetDocumentationTool(deps))
	registry.Register(tools.NewFindAPIsTool(deps))
	registry.Register(tools.NewCheckDeprecatedCodeTool(deps))
	registry.Register(tools.NewDeepResearchTool(deps))
	return registry, nil
}

func init() {
	serveCmd.Flags().BoolVar(&serveCacheEnabled, "cache", false, "Enable the in-memory similarity cache")
	serveCmd.Flags().Float64Var(&serveThreshold, "threshold", perplexity.DefaultHitThreshold, "Similarity score treated as a cache hit")
	serveCmd.Flags().IntVar(&serveMaxWorkers, "max-concurrent", 4, "Maximum concurrent tool executions")
	rootCmd.AddCommand(serveCmd)
}
