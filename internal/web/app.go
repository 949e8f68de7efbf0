// Package web maps the storefront's REST surface onto the repository, the
// checkout service and the payment gateway.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"Storefront/internal/checkout"
	"Storefront/internal/payment"
	"Storefront/internal/store"
	"Storefront/pkg/kit"
)

const maxBodyBytes = 1 << 20

type App struct {
	Log      *zap.Logger
	Store    store.Store
	Checkout *checkout.Service
	Payments *payment.Client
	Sessions *Sessions
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

const (
	loginLimitPerMin    = 5
	registerLimitPerMin = 3
	limitWindow         = 60 * time.Second
)

func NewHandler(a *App, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", a.handleReady)

	r.Route("/api", func(api chi.Router) {
		loginLimiter := kit.NewIPRateLimiter(loginLimitPerMin, int(limitWindow.Seconds()))
		registerLimiter := kit.NewIPRateLimiter(registerLimitPerMin, int(limitWindow.Seconds()))

		api.Route("/auth", func(ar chi.Router) {
			ar.With(registerLimiter.Middleware).Post("/register", a.handleRegister)
			ar.With(loginLimiter.Middleware).Post("/login", a.handleLogin)
			ar.Group(func(pr chi.Router) {
				pr.Use(a.Sessions.Require)
				pr.Post("/logout", a.handleLogout)
				pr.Get("/me", a.handleMe)
				pr.Put("/profile", a.handleProfile)
			})
		})

		api.Get("/products", a.handleProducts)
		api.Get("/products/featured", a.handleFeaturedProducts)
		api.Get("/products/{id}", a.handleProduct)
		api.Get("/categories", a.handleCategories)

		api.Group(func(pr chi.Router) {
			pr.Use(a.Sessions.Require)

			pr.Get("/cart", a.handleCart)
			pr.Post("/cart", a.handleAddToCart)
			pr.Put("/cart/{id}", a.handleUpdateCartItem)
			pr.Delete("/cart/{id}", a.handleRemoveFromCart)
			pr.Delete("/cart", a.handleClearCart)

			pr.Post("/create-payment-intent", a.handleCreatePaymentIntent)

			pr.Post("/orders", a.handleCreateOrder)
			pr.Get("/orders", a.handleOrders)
			pr.Get("/orders/{id}", a.handleOrder)
		})
	})

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := a.Store.Ping(ctx); err != nil {
		if a.Log != nil {
			a.Log.Warn("readyz failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}
