package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/db"
	"atelier/internal/domain/ledger"
	"atelier/internal/domain/payroll"
	"atelier/internal/domain/piecework"
	"atelier/internal/domain/workers"
	"atelier/internal/platform/config"
	"atelier/internal/platform/crypto"
	"atelier/internal/platform/metrics"
	"atelier/internal/requestctx"
	"atelier/internal/transport/http/api"
	authhandler "atelier/internal/transport/http/handlers/auth"
	ledgerhandler "atelier/internal/transport/http/handlers/ledger"
	salaryhandler "atelier/internal/transport/http/handlers/salary"
	"atelier/internal/transport/http/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
	}

	cryptoSvc, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		slog.Error("invalid encryption key", "error", err)
		os.Exit(1)
	}

	collector := metrics.New()

	journal := ledger.NewStore(pool)
	roster := workers.NewService(workers.NewStore(pool), cfg.WorkerSpecialty)
	completed := piecework.NewStore(pool)
	prefs := payroll.NewPrefStore(pool)

	engine := payroll.NewService(journal, roster, completed, prefs, collector, cfg.Branch, cfg.OvertimeRate)
	receipts := payroll.NewReceipts(journal, cryptoSvc, cfg.ReceiptDir)

	router := buildRouter(cfg, pool, collector, engine, roster, receipts, journal)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr, "branch", cfg.Branch, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}

func buildRouter(
	cfg config.Config,
	pool *pgxpool.Pool,
	collector *metrics.Collector,
	engine *payroll.Service,
	roster *workers.Service,
	receipts *payroll.Receipts,
	journal *ledger.Store,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Metrics(collector))
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	r.Use(middleware.Auth(cfg.JWTSecret))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, map[string]string{"status": "ok"}, requestctx.GetRequestID(r.Context()))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			api.Fail(w, http.StatusServiceUnavailable, "not_ready", "database unreachable", requestctx.GetRequestID(r.Context()))
			return
		}
		api.Success(w, map[string]string{"status": "ready"}, requestctx.GetRequestID(r.Context()))
	})
	if cfg.MetricsEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), requestctx.GetRequestID(r.Context()))
		})
	}

	authHandler := authhandler.NewHandler(pool, cfg.JWTSecret)
	salaryHandler := salaryhandler.NewHandler(engine, roster, receipts)
	ledgerHandler := ledgerhandler.NewHandler(journal, cfg.Branch)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", authHandler.Routes)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Route("/salary", salaryHandler.Routes)
			r.Route("/ledger", ledgerHandler.Routes)
		})
	})
	return r
}
