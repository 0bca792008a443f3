package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pdro-dev/wheelscreener/internal/api"
	"github.com/pdro-dev/wheelscreener/internal/api/handlers"
	"github.com/pdro-dev/wheelscreener/internal/audit"
	"github.com/pdro-dev/wheelscreener/internal/external/oplab"
	"github.com/pdro-dev/wheelscreener/internal/external/yahoo"
	"github.com/pdro-dev/wheelscreener/internal/metrics"
	"github.com/pdro-dev/wheelscreener/internal/provider"
	"github.com/pdro-dev/wheelscreener/internal/scheduler"
	"github.com/pdro-dev/wheelscreener/internal/screening"
	"github.com/pdro-dev/wheelscreener/internal/synth"
	"github.com/pdro-dev/wheelscreener/internal/universe"
	"github.com/pdro-dev/wheelscreener/pkg/config"
	"github.com/pdro-dev/wheelscreener/pkg/database"
	"github.com/pdro-dev/wheelscreener/pkg/httputil"
	"github.com/pdro-dev/wheelscreener/pkg/logger"
	"github.com/pdro-dev/wheelscreener/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                     - Health check
  POST /api/instruments            - Filtered instrument listing
  POST /api/quotes                 - Batch quote lookup
  GET  /api/fundamentals/{symbol}  - Fundamental ratios
  POST /api/screening              - Wheel screening run
  GET  /api/metrics                - Process counters
  GET  /api/user                   - Vendor account info

Example:
  go run ./cmd/wheelscreener api
  go run ./cmd/wheelscreener api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port")
}

func loadConfig() (*config.Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// deps bundles everything a command needs after wiring
type deps struct {
	cfg          *config.Config
	logger       *logger.Logger
	redis        *redis.Client
	db           *database.DB
	vendor       *oplab.Client
	provider     *provider.TieredProvider
	universe     *universe.Universe
	orchestrator *screening.Orchestrator
	collector    *metrics.Collector
	synthesizer  *synth.Synthesizer
	source       *synth.Source
}

func (d *deps) close() {
	if d.db != nil {
		d.db.Close()
	}
	if d.redis != nil {
		d.redis.Close()
	}
}

// buildDeps wires the full dependency graph from config
func buildDeps(cfg *config.Config, log *logger.Logger) (*deps, error) {
	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	collector := metrics.NewCollector()

	source := synth.NewSource(0)
	synthesizer := synth.NewSynthesizer(source)
	generator := synth.NewFundamentalsGenerator(source)

	// Tier clients do not retry; a failed tier falls through to the
	// next tier instead
	yahooHTTP := httputil.NewWithTimeout(cfg, log, cfg.Yahoo.Timeout).
		DisableRetry().
		WithLocalRateLimit(2, 4)
	oplabHTTP := httputil.NewWithTimeout(cfg, log, cfg.OpLab.Timeout).
		DisableRetry()
	if redisClient.Enabled() {
		limiter := redis.NewRateLimiter(redisClient, "oplab")
		oplabHTTP = oplabHTTP.WithRateLimiter(limiter, redis.OpLabRateLimit)
	}

	yahooClient := yahoo.NewClient(cfg, yahooHTTP, log)
	vendorClient := oplab.NewClient(cfg, oplabHTTP, log)

	uni, err := universe.Load(cfg.Screening.UniverseFile)
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}

	var vendorTier provider.VendorSource
	if vendorClient.Enabled() {
		vendorTier = vendorClient
	}

	tiered := provider.New(provider.Config{
		Vendor:      vendorTier,
		History:     yahooClient,
		Synthesizer: synthesizer,
		Cache:       provider.NewSeriesCache(cfg.Screening.CacheTTL, log),
		Metrics:     collector,
		Logger:      log,
	})

	d := &deps{
		cfg:         cfg,
		logger:      log,
		redis:       redisClient,
		vendor:      vendorClient,
		provider:    tiered,
		universe:    uni,
		collector:   collector,
		synthesizer: synthesizer,
		source:      source,
	}

	var recorder audit.Recorder = audit.NewNop()
	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			d.close()
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		d.db = db

		store, err := audit.NewStore(context.Background(), db, log)
		if err != nil {
			d.close()
			return nil, fmt.Errorf("init audit store: %w", err)
		}
		recorder = store
	}

	var fundamentalsCache *redis.Cache
	if redisClient.Enabled() {
		fundamentalsCache = redis.NewCache(redisClient, "wheelscreener")
	}

	var vendorFunds screening.FundamentalsVendor
	if vendorClient.Enabled() {
		vendorFunds = vendorClient
	}

	d.orchestrator = screening.NewOrchestrator(screening.Config{
		Universe:  uni,
		Provider:  tiered,
		Vendor:    vendorFunds,
		Generator: generator,
		Synth:     synthesizer,
		Cache:     fundamentalsCache,
		Metrics:   collector,
		Audit:     recorder,
		Logger:    log,
	})

	return d, nil
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	d, err := buildDeps(cfg, log)
	if err != nil {
		return err
	}
	defer d.close()

	router := api.NewRouter(api.Handlers{
		Market:    handlers.NewMarketHandler(d.universe, d.provider, d.orchestrator, d.synthesizer, log),
		Screening: handlers.NewScreeningHandler(d.orchestrator, log),
		Metrics:   handlers.NewMetricsHandler(d.collector, d.provider),
		User:      handlers.NewUserHandler(d.vendor, d.source, log),
	}, d.collector, log)

	server := api.New(cfg, log, router)

	sched := scheduler.New(cfg, d.universe, func(ctx context.Context, symbol string) {
		d.provider.Fetch(ctx, symbol)
	}, log)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("Server running on http://localhost:%s\n", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
