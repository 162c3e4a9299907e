package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/epc-retail/exclusivity-backend/api/controllers"
	"github.com/epc-retail/exclusivity-backend/api/middleware"
	"github.com/epc-retail/exclusivity-backend/internal/assets"
	"github.com/epc-retail/exclusivity-backend/internal/audit"
	"github.com/epc-retail/exclusivity-backend/internal/exclusivity"
	"github.com/epc-retail/exclusivity-backend/internal/export"
	"github.com/epc-retail/exclusivity-backend/internal/filters"
	"github.com/epc-retail/exclusivity-backend/pkg/config"
	"github.com/epc-retail/exclusivity-backend/pkg/db"
	"github.com/epc-retail/exclusivity-backend/pkg/logger"
	"github.com/epc-retail/exclusivity-backend/pkg/metrics"
	pkgredis "github.com/epc-retail/exclusivity-backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *pkgredis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Filters     filters.Service
	Exclusivity exclusivity.Service
	Export      export.Service
	Assets      assets.Service
	Audit       audit.Recorder
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	var cachePinger pkgredis.Pinger
	var idemStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		cachePinger = deps.Redis
		idemStore = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, cachePinger, logg))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/filters", func(r chi.Router) {
			r.Get("/branches", controllers.FilterBranches(deps.Filters, logg))
			r.Get("/items", controllers.FilterItems(deps.Filters, logg))
			r.Route("/nbfi", func(r chi.Router) {
				r.Get("/chains", controllers.NBFIChains(deps.Filters, logg))
				r.Get("/brands", controllers.NBFIBrands(deps.Filters, logg))
				r.Get("/store-classes", controllers.NBFIStoreClasses(deps.Filters, logg))
				r.Get("/stores", controllers.NBFIStores(deps.Filters, logg))
				r.Get("/items", controllers.NBFIItems(deps.Filters, logg))
				r.Get("/exclusivity-items", controllers.NBFIExclusivityItems(deps.Exclusivity, logg))
				r.Get("/items-for-assignment", controllers.NBFIItemsForAssignment(deps.Exclusivity, logg))
			})
		})

		r.Route("/inventory/nbfi", func(r chi.Router) {
			r.Use(
				middleware.Auth(cfg.JWT, logg),
				middleware.Idempotency(idemStore, logg),
			)
			r.Post("/add-exclusivity-items", controllers.AddExclusivityItems(deps.Exclusivity, logg))
			r.Post("/remove-exclusivity-item", controllers.RemoveExclusivityItem(deps.Exclusivity, logg))
			r.Post("/mass-upload-exclusivity-items", controllers.MassUploadExclusivityItems(deps.Exclusivity, logg))
		})

		r.Route("/export", func(r chi.Router) {
			r.Post("/transfer-orders", controllers.ExportTransferOrders(deps.Export, logg))
		})

		r.Route("/assets", func(r chi.Router) {
			r.Use(
				middleware.Auth(cfg.JWT, logg),
				middleware.Idempotency(idemStore, logg),
			)
			r.Get("/", controllers.AssetsList(deps.Assets, logg))
			r.Post("/", controllers.AssetsCreate(deps.Assets, logg))
			r.Route("/{assetId}", func(r chi.Router) {
				r.Get("/", controllers.AssetsGet(deps.Assets, logg))
				r.Patch("/", controllers.AssetsUpdate(deps.Assets, logg))
				r.Delete("/", controllers.AssetsDelete(deps.Assets, logg))
				r.Post("/checkout", controllers.AssetsCheckout(deps.Assets, logg))
				r.Post("/checkin", controllers.AssetsCheckin(deps.Assets, logg))
			})
		})

		r.With(middleware.Auth(cfg.JWT, logg)).
			Get("/audit-logs", controllers.AuditLogsList(deps.Audit, logg))
	})

	return r
}
