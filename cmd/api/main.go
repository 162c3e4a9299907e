package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/epc-retail/exclusivity-backend/api/routes"
	"github.com/epc-retail/exclusivity-backend/internal/assets"
	"github.com/epc-retail/exclusivity-backend/internal/audit"
	"github.com/epc-retail/exclusivity-backend/internal/exclusivity"
	"github.com/epc-retail/exclusivity-backend/internal/export"
	"github.com/epc-retail/exclusivity-backend/internal/filters"
	"github.com/epc-retail/exclusivity-backend/pkg/config"
	"github.com/epc-retail/exclusivity-backend/pkg/db"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
	"github.com/epc-retail/exclusivity-backend/pkg/metrics"
	"github.com/epc-retail/exclusivity-backend/pkg/migrate"
	"github.com/epc-retail/exclusivity-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	exportMetrics := metrics.NewExportMetrics(prometheus.DefaultRegisterer)

	auditRecorder, err := audit.NewRecorder(audit.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create audit recorder", err)
		os.Exit(1)
	}
	exclusivityService, err := exclusivity.NewService(exclusivity.NewRepository(dbClient.DB()), auditRecorder, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create exclusivity service", err)
		os.Exit(1)
	}
	filtersService, err := filters.NewService(filters.NewRepository(dbClient.DB()), redisClient, cfg.Cache.LookupTTL, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create filters service", err)
		os.Exit(1)
	}
	exportService, err := export.NewService(cfg.Export, exportMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create export service", err)
		os.Exit(1)
	}
	assetsService, err := assets.NewService(assets.NewRepository(dbClient.DB()), auditRecorder, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create assets service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			HTTPMetrics: httpMetrics,
			Filters:     filtersService,
			Exclusivity: exclusivityService,
			Export:      exportService,
			Assets:      assetsService,
			Audit:       auditRecorder,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
