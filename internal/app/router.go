package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-pos/meridian-pos/internal/auth"
	"github.com/meridian-pos/meridian-pos/internal/catalog/categories"
	"github.com/meridian-pos/meridian-pos/internal/catalog/items"
	"github.com/meridian-pos/meridian-pos/internal/catalog/variants"
	"github.com/meridian-pos/meridian-pos/internal/discounts"
	"github.com/meridian-pos/meridian-pos/internal/masterdata"
	"github.com/meridian-pos/meridian-pos/internal/observability"
	"github.com/meridian-pos/meridian-pos/internal/sales/orders"
	"github.com/meridian-pos/meridian-pos/internal/sales/payments"
	"github.com/meridian-pos/meridian-pos/internal/shared"
	"github.com/meridian-pos/meridian-pos/internal/taxes"
	"github.com/meridian-pos/meridian-pos/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	Metrics        *observability.Metrics

	AuthHandler       *auth.Handler
	CategoriesHandler *categories.Handler
	ItemsHandler      *items.Handler
	VariantsHandler   *variants.Handler
	TaxesHandler      *taxes.Handler
	DiscountsHandler  *discounts.Handler
	MasterDataHandler *masterdata.Handler
	OrdersHandler     *orders.Handler
	PaymentsHandler   *payments.Handler
	UsersHandler      *users.Handler
}

// NewRouter constructs the chi.Router. Everything under /api/v1 except the
// login endpoint requires an authenticated session.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Metrics.Middleware)

	r.Get("/metrics", params.Metrics.Handler().ServeHTTP)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(api chi.Router) {
		params.AuthHandler.MountRoutes(api)

		api.Group(func(protected chi.Router) {
			protected.Use(RequireAuth)

			params.CategoriesHandler.MountRoutes(protected)
			params.ItemsHandler.MountRoutes(protected)
			params.VariantsHandler.MountRoutes(protected)
			params.TaxesHandler.MountRoutes(protected)
			params.DiscountsHandler.MountRoutes(protected)
			params.MasterDataHandler.MountRoutes(protected)
			params.OrdersHandler.MountRoutes(protected)
			params.PaymentsHandler.MountRoutes(protected)
			params.UsersHandler.MountRoutes(protected)
		})
	})

	return r
}
