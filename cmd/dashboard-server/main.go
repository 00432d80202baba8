// cmd/dashboard-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"agenticbi/internal/agents"
	"agenticbi/internal/agents/accessibility"
	"agenticbi/internal/agents/chartgen"
	"agenticbi/internal/agents/geospatial"
	"agenticbi/internal/agents/layout"
	"agenticbi/internal/common/cache"
	"agenticbi/internal/common/config"
	"agenticbi/internal/common/logger"
	"agenticbi/internal/common/observability"
	"agenticbi/internal/render"
	"agenticbi/internal/server"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	// Bootstrap logger until the config is loaded.
	zapLog := logger.New("info", "console")

	zapLog.Info("Starting dashboard server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Configuration loaded",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("dashboard-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry (optional: the service degrades to
	// no-cache mode when disabled or unreachable) ---
	var redisClient *cache.RedisClient
	if cfg.Cache.Enabled {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = cache.NewRedis(cfg.Cache)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Warn("redis unavailable, continuing without cache and history", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			zapLog.Info("Redis connected successfully")
		}
	}

	// --- Register Agents ---
	registry := agents.NewRegistry(log)

	// Create adapters for agents that declare their own Logger interfaces
	cgLogAdapter := &chartgenLoggerAdapter{log}
	geoLogAdapter := &geospatialLoggerAdapter{log}
	a11yLogAdapter := &accessibilityLoggerAdapter{log}
	layoutLogAdapter := &layoutLoggerAdapter{log}

	if config.IsAgentEnabled(cfg, chartgen.AgentName) {
		acfg := config.GetAgentConfig(cfg, chartgen.AgentName)
		registry.Register(chartgen.NewHandler(&chartgen.Config{
			MaxToolCalls:     acfg.MaxToolCalls,
			ToolCallWindow:   config.GetDuration(acfg.ToolCallWindow),
			MaxComponents:    acfg.MaxComponents,
			GenerationBudget: config.GetDuration(acfg.GenerationBudget),
		}, cgLogAdapter))
	}

	if config.IsAgentEnabled(cfg, geospatial.AgentName) {
		acfg := config.GetAgentConfig(cfg, geospatial.AgentName)
		registry.Register(geospatial.NewHandler(&geospatial.Config{
			MaxToolCalls:     acfg.MaxToolCalls,
			ToolCallWindow:   config.GetDuration(acfg.ToolCallWindow),
			GenerationBudget: config.GetDuration(acfg.GenerationBudget),
		}, geoLogAdapter))
	}

	if config.IsAgentEnabled(cfg, accessibility.AgentName) {
		acfg := config.GetAgentConfig(cfg, accessibility.AgentName)
		registry.Register(accessibility.NewHandler(&accessibility.Config{
			MaxToolCalls:     acfg.MaxToolCalls,
			ToolCallWindow:   config.GetDuration(acfg.ToolCallWindow),
			GenerationBudget: config.GetDuration(acfg.GenerationBudget),
		}, a11yLogAdapter))
	}

	if config.IsAgentEnabled(cfg, layout.AgentName) {
		acfg := config.GetAgentConfig(cfg, layout.AgentName)
		registry.Register(layout.NewHandler(&layout.Config{
			MaxToolCalls:     acfg.MaxToolCalls,
			ToolCallWindow:   config.GetDuration(acfg.ToolCallWindow),
			MaxComponents:    acfg.MaxComponents,
			GenerationBudget: config.GetDuration(acfg.GenerationBudget),
		}, layoutLogAdapter))
	}

	// --- Rendering pipeline ---
	renderer := render.NewRouter(cfg.Render, log)

	// --- HTTP Server ---
	srv, err := server.New(cfg, log, registry, renderer, redisClient, obs)
	if err != nil {
		zapLog.Fatal("server init failed", zap.Error(err))
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Internal metrics listener ---
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			zapLog.Error("Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}

	zapLog.Info("Dashboard server stopped gracefully")
}

// Logger adapters for agents that have their own Logger interfaces
type chartgenLoggerAdapter struct {
	logger.Logger
}

func (a *chartgenLoggerAdapter) WithFields(fields map[string]interface{}) chartgen.Logger {
	return &chartgenLoggerAdapter{a.Logger.WithFields(fields)}
}

type geospatialLoggerAdapter struct {
	logger.Logger
}

func (a *geospatialLoggerAdapter) WithFields(fields map[string]interface{}) geospatial.Logger {
	return &geospatialLoggerAdapter{a.Logger.WithFields(fields)}
}

type accessibilityLoggerAdapter struct {
	logger.Logger
}

func (a *accessibilityLoggerAdapter) WithFields(fields map[string]interface{}) accessibility.Logger {
	return &accessibilityLoggerAdapter{a.Logger.WithFields(fields)}
}

type layoutLoggerAdapter struct {
	logger.Logger
}

func (a *layoutLoggerAdapter) WithFields(fields map[string]interface{}) layout.Logger {
	return &layoutLoggerAdapter{a.Logger.WithFields(fields)}
}
