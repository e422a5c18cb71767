package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/inventory/internal/config"
	"github.com/kailas-cloud/inventory/internal/db"
	dbMemory "github.com/kailas-cloud/inventory/internal/db/memory"
	dbRedis "github.com/kailas-cloud/inventory/internal/db/redis"
	logpkg "github.com/kailas-cloud/inventory/internal/logger"
	"github.com/kailas-cloud/inventory/internal/metrics"
	"github.com/kailas-cloud/inventory/internal/notify"
	recordsrepo "github.com/kailas-cloud/inventory/internal/repository/records"
	refdatarepo "github.com/kailas-cloud/inventory/internal/repository/refdata"
	sessionrepo "github.com/kailas-cloud/inventory/internal/repository/session"
	chiTransport "github.com/kailas-cloud/inventory/internal/transport/chi"
	"github.com/kailas-cloud/inventory/internal/transport/okapi"
	healthuc "github.com/kailas-cloud/inventory/internal/usecase/health"
	listinguc "github.com/kailas-cloud/inventory/internal/usecase/listing"
	reportuc "github.com/kailas-cloud/inventory/internal/usecase/report"
	vocabuc "github.com/kailas-cloud/inventory/internal/usecase/vocab"
	"github.com/kailas-cloud/inventory/internal/version"
)

// notificationsPerSession bounds the polling buffer kept for each session.
const notificationsPerSession = 50

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting inventory API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("backend_url", cfg.Backend.URL),
		zap.String("tenant", cfg.Backend.Tenant),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Strings("store_addrs", cfg.Store.Addrs),
	)

	var store db.Store
	switch cfg.Store.Driver {
	case "redis", "valkey":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Store.Addrs,
			Password: cfg.Store.Password,
		})
	case "memory":
		store = dbMemory.NewStore()
	default:
		logger.Fatal("Unknown store driver", zap.String("driver", cfg.Store.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Store.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	// Register backend metrics explicitly (no init())
	metrics.RegisterBackendMetrics()

	backend, err := okapi.New(&okapi.Config{
		BaseURL:    cfg.Backend.URL,
		Tenant:     cfg.Backend.Tenant,
		Token:      cfg.Backend.Token,
		Timeout:    time.Duration(cfg.Backend.TimeoutSec) * time.Second,
		RatePerSec: cfg.Backend.RatePerSec,
		Burst:      cfg.Backend.Burst,
		UserAgent:  version.UserAgent(),
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal("Failed to create backend client", zap.Error(err))
	}

	// Repositories
	records := recordsrepo.New(backend, cfg.Backend.PageSize, cfg.Reports.MaxRecords)
	ref := refdatarepo.New(backend, store, refdatarepo.Config{
		KeyPrefix:    cfg.Store.KeyPrefix,
		TTL:          time.Duration(cfg.Store.RefDataTTLSec) * time.Second,
		FetchTimeout: time.Duration(cfg.Backend.TimeoutSec) * time.Second,
	}, metrics.RefDataCacheTotal, logger)
	sessions := sessionrepo.New(store, cfg.Store.KeyPrefix, time.Duration(cfg.Store.SessionTTLSec)*time.Second)

	// Use case services
	listingSvc := listinguc.New(records, sessions, ref, listinguc.Config{
		InitialResultCount:   cfg.Search.InitialResultCount,
		ResultCountIncrement: cfg.Search.ResultCountIncrement,
		MaxPageSize:          cfg.Search.MaxPageSize,
	}, logger)
	reportSvc := reportuc.New(records.InstanceIDs(), records.ItemsInTransit(), ref, reportuc.Config{
		IDReportNotifyAfter: time.Duration(cfg.Reports.IDReportNotifyAfterMs) * time.Millisecond,
		Env:                 env,
	}, logger)
	vocabSvc := vocabuc.New(records, logger)
	healthSvc := healthuc.New(store, backend)

	hub := notify.NewHub(notificationsPerSession)

	server := chiTransport.NewServer(listingSvc, reportSvc, vocabSvc, healthSvc, hub, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.Use(chiTransport.SessionMiddleware())
	r.Use(chiTransport.PermissionsMiddleware())
	r.Use(chiTransport.LocaleMiddleware())
	chiTransport.HandlerWithOptions(server, chiTransport.RouterOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: chiTransport.ParamErrorHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("session_id", r.Header.Get(chiTransport.HeaderSessionID)),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
