// cmd/dashboard/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pizza-dashboard/internal/common/config"
	"pizza-dashboard/internal/common/database"
	"pizza-dashboard/internal/common/logger"
	"pizza-dashboard/internal/common/observability"
	"pizza-dashboard/internal/dashboard"
	"pizza-dashboard/internal/directory"
	"pizza-dashboard/internal/session"
	"pizza-dashboard/internal/web"
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
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting admin dashboard...",
		zap.String("environment", cfg.App.Environment),
		zap.String("directory", cfg.Directory.BaseURL),
	)

	obs := observability.New(cfg.Telemetry.ServiceName, cfg.Telemetry.TraceSampling)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Redis backs the session store ---
	redis := database.NewRedis(cfg.Redis)
	err = retryWithBackoff(func() error {
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	dir := directory.NewClient(directory.Options{
		BaseURL:        cfg.Directory.BaseURL,
		Timeout:        config.GetDuration(cfg.Directory.Timeout),
		ValidateSchema: cfg.Directory.ValidateSchema,
		Logger:         log.WithFields(map[string]interface{}{"component": "directory"}),
		Observability:  obs,
	})

	sessions := session.NewStore(
		redis.Client,
		cfg.Session.KeyPrefix,
		cfg.Session.SessionTTL(),
		log.WithFields(map[string]interface{}{"component": "session"}),
	)

	srv, err := web.NewServer(web.Dependencies{
		Directory: dir,
		Sessions:  sessions,
		Redis:     redis,
		Settings: dashboard.Settings{
			UserPageSize:            cfg.Dashboard.UserPageSize,
			FranchisePageSize:       cfg.Dashboard.FranchisePageSize,
			FranchiseFilterPageSize: cfg.Dashboard.FranchiseFilterPageSize,
		},
		Cookie: web.CookieOptions{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.Secure,
			MaxAge: cfg.Session.SessionTTL(),
		},
		Logger:  log.WithFields(map[string]interface{}{"component": "web"}),
		Metrics: cfg.Telemetry.MetricsEnabled,
	})
	if err != nil {
		zapLog.Fatal("web server init failed", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      srv.Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during HTTP shutdown", zap.Error(err))
	}

	zapLog.Info("Admin dashboard stopped",
		zap.Int("activeSessions", srv.ActiveSessions()),
	)
}
