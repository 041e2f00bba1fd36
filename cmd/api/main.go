// Package main is the entry point for the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/eventscout/eventscout/internal/api"
	"github.com/eventscout/eventscout/internal/auth"
	"github.com/eventscout/eventscout/internal/cache"
	"github.com/eventscout/eventscout/internal/catalog"
	"github.com/eventscout/eventscout/internal/config"
	"github.com/eventscout/eventscout/internal/db"
	"github.com/eventscout/eventscout/internal/event"
	"github.com/eventscout/eventscout/internal/health"
	"github.com/eventscout/eventscout/internal/middleware"
	"github.com/eventscout/eventscout/internal/recommend"
	"github.com/eventscout/eventscout/internal/source"
	"github.com/eventscout/eventscout/internal/tracing"
)

const serviceName = "eventscout-api"

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	help := flag.Bool("help", false, "display help message")
	flag.Parse()

	if *help {
		fmt.Println("EventScout API Server")
		fmt.Println()
		fmt.Println("Usage: api [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config error:", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)

	logger.Info("configuration loaded", "config", cfg.LogSummary())

	ctx := context.Background()

	// Tracing (enabled by setting an OTLP endpoint)
	tracingProvider, err := tracing.NewProvider(tracing.Config{
		ServiceName:  serviceName,
		Enabled:      os.Getenv("OTLP_ENDPOINT") != "",
		Environment:  cfg.Env,
		ExporterType: os.Getenv("OTLP_EXPORTER_TYPE"),
		OTLPEndpoint: os.Getenv("OTLP_ENDPOINT"),
		SamplingRate: tracingSamplingRate(),
		InsecureMode: cfg.Env != "production",
	})
	if err != nil {
		logger.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}

	// Metrics registry
	registry := prometheus.NewRegistry()
	httpMetrics := middleware.NewMetrics()
	if err := httpMetrics.Register(registry); err != nil {
		logger.Error("failed to register HTTP metrics", "error", err)
		os.Exit(1)
	}
	catalogMetrics := catalog.NewMetrics()
	if err := catalogMetrics.Register(registry); err != nil {
		logger.Error("failed to register catalog metrics", "error", err)
		os.Exit(1)
	}

	checkers := make(map[string]api.Checker)

	// Database (optional)
	var eventRepo event.Repository
	var sources []source.Source
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		eventRepo = event.NewPostgresRepository(conn)
		sources = append(sources, source.NewPostgresSource(conn))
		checkers["database"] = health.NewDBChecker(conn)
	}

	// CSV files on disk
	for _, name := range cfg.CSVFileList() {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.CSVDir, name)
		}
		sources = append(sources, source.NewFileSource(path))
	}

	// CSV objects in S3-compatible storage
	if keys := cfg.S3ObjectKeyList(); len(keys) > 0 {
		s3Client, err := source.NewS3Client(source.S3Config{
			BucketName:      cfg.S3BucketName,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
		})
		if err != nil {
			logger.Error("failed to create S3 client", "error", err)
			os.Exit(1)
		}
		for _, key := range keys {
			sources = append(sources, source.NewS3Source(s3Client, cfg.S3BucketName, key))
		}
	}

	// Redis (optional): snapshot cache and shared rate limit state
	var snapshotCache *cache.SnapshotCache
	var rateLimitStore middleware.RateLimitStore = middleware.NewInMemoryRateLimitStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()

		snapshotCache = cache.NewSnapshotCache(redisClient, cache.DefaultKey,
			time.Duration(cfg.SnapshotTTLSeconds)*time.Second)
		rateLimitStore = middleware.NewRedisRateLimitStoreWithMetrics(redisClient, httpMetrics)
		checkers["redis"] = health.NewRedisChecker(redisClient)
	}

	catalogService := catalog.NewService(sources, snapshotCache, catalogMetrics, logger)

	// Scoring weights, with optional calibration overrides
	weights, err := recommend.LoadCalibration(cfg.CalibrationPath)
	if err != nil {
		logger.Warn("scoring calibration fell back to defaults", "error", err)
	}
	engine := recommend.NewEngine(weights)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Handlers
	healthHandlers := api.NewHealthHandlers(checkers)
	searchHandlers := api.NewSearchHandlers(catalogService)
	recommendHandlers := api.NewRecommendHandlers(catalogService, engine)
	eventHandlers := api.NewEventHandlers(catalogService, eventRepo)
	liveSearchHandlers := api.NewLiveSearchHandlers(catalogService)

	requireAuth := api.RequireAuth(jwtService)
	searchLimiter := middleware.RateLimiter(rateLimitStore, middleware.DefaultSearchLimit(), middleware.IPKeyFunc())

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandlers.Health)
	mux.HandleFunc("GET /ready", healthHandlers.Ready)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /events", eventHandlers.ListEvents)
	mux.HandleFunc("GET /events/{id}", eventHandlers.GetEvent)
	mux.Handle("POST /events", requireAuth(http.HandlerFunc(eventHandlers.SubmitEvent)))

	mux.Handle("GET /search/events", searchLimiter(http.HandlerFunc(searchHandlers.SearchEvents)))
	mux.HandleFunc("GET /search/live", liveSearchHandlers.LiveSearch)

	mux.HandleFunc("GET /recommendations", recommendHandlers.Recommendations)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Only handle exact root path, everything else returns 404
		if r.URL.Path != "/" {
			errCtx := middleware.SetErrorCode(r.Context(), api.ErrCodeNotFound)
			api.WriteError(w, errCtx, http.StatusNotFound, api.ErrCodeNotFound, "The requested resource was not found")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"service":"` + serviceName + `","version":"0.1.0"}`)); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	globalLimit := middleware.DefaultGlobalLimit()
	if cfg.RateLimitPerMinute > 0 {
		globalLimit.RequestsPerWindow = cfg.RateLimitPerMinute
	}

	// Apply middleware: RequestID -> Tracing -> Metrics -> Logging -> CORS -> RateLimiter
	var handler http.Handler = mux
	handler = middleware.RateLimiter(rateLimitStore, globalLimit, middleware.UserKeyFunc())(handler)
	handler = middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: cfg.CORSOriginList(),
		MaxAge:         300,
	})(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.HTTPMetrics(httpMetrics)(handler)
	handler = middleware.Tracing(serviceName)(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Warm the snapshot so the first request doesn't pay the aggregation cost
	if _, err := catalogService.Snapshot(ctx); err != nil {
		logger.Warn("initial snapshot build failed", "error", err)
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", "port", cfg.Port, "sources", len(sources))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if err := tracingProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("tracer shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}

// tracingSamplingRate reads OTLP_SAMPLING_RATE, defaulting to sampling
// everything.
func tracingSamplingRate() float64 {
	if v := os.Getenv("OTLP_SAMPLING_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			return rate
		}
	}
	return 1.0
}
