package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"talent/internal/domain/audit"
	"talent/internal/domain/auth"
	"talent/internal/domain/delegation"
	"talent/internal/domain/directory"
	"talent/internal/domain/engagement"
	"talent/internal/domain/evaluations"
	"talent/internal/domain/goals"
	"talent/internal/domain/idp"
	"talent/internal/domain/periods"
	"talent/internal/domain/reports"
	"talent/internal/platform/backup"
	"talent/internal/platform/config"
	"talent/internal/platform/db"
	adminhandler "talent/internal/transport/http/handlers/admin"
	authhandler "talent/internal/transport/http/handlers/auth"
	delegationhandler "talent/internal/transport/http/handlers/delegation"
	directoryhandler "talent/internal/transport/http/handlers/directory"
	engagementhandler "talent/internal/transport/http/handlers/engagement"
	evaluationshandler "talent/internal/transport/http/handlers/evaluations"
	goalshandler "talent/internal/transport/http/handlers/goals"
	idphandler "talent/internal/transport/http/handlers/idp"
	periodshandler "talent/internal/transport/http/handlers/periods"
	reportshandler "talent/internal/transport/http/handlers/reports"
	"talent/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		slog.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			slog.Error("migrations failed", "err", err)
			os.Exit(1)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			slog.Error("seed failed", "err", err)
			os.Exit(1)
		}
	}

	authStore := auth.NewStore(pool)
	auditStore := audit.NewStore(pool)
	backups := backup.NewService(pool, cfg.BackupDir)
	directoryService := directory.NewService(directory.NewStore(pool))
	periodStore := periods.NewStore(pool)
	evalStore := evaluations.NewStore(pool)
	evalService := evaluations.NewService(evalStore)
	goalService := goals.NewService(goals.NewStore(pool))
	idpService := idp.NewService(idp.NewStore(pool))
	delegationService := delegation.NewService(delegation.NewStore(pool, evalStore))
	engagementService := engagement.NewService(engagement.NewStore(pool))
	reportService := reports.NewService(reports.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret, auditStore, backups).RegisterRoutes(r)
		directoryhandler.NewHandler(directoryService, authStore, auditStore).RegisterRoutes(r)
		periodshandler.NewHandler(periodStore, authStore, auditStore).RegisterRoutes(r)
		evaluationshandler.NewHandler(evalService, directoryService, authStore, auditStore).RegisterRoutes(r)
		goalshandler.NewHandler(goalService, authStore, auditStore).RegisterRoutes(r)
		idphandler.NewHandler(idpService, authStore, auditStore).RegisterRoutes(r)
		delegationhandler.NewHandler(delegationService, directoryService, authStore, auditStore).RegisterRoutes(r)
		engagementhandler.NewHandler(engagementService, directoryService, authStore, auditStore).RegisterRoutes(r)
		reportshandler.NewHandler(reportService, evalService, directoryService, authStore).RegisterRoutes(r)
		adminhandler.NewHandler(authStore, backups, auditStore, authStore).RegisterRoutes(r)
	})

	slog.Info("server listening", "addr", cfg.Addr, "env", cfg.Environment)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		slog.Error("server failed", "err", err)
		os.Exit(1)
	}
}
