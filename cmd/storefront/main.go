package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"Storefront/internal/checkout"
	"Storefront/internal/payment"
	"Storefront/internal/store"
	"Storefront/internal/web"
	"Storefront/pkg/kit"
)

const sessionTTL = 7 * 24 * time.Hour

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")

	st, err := buildStore(log)
	if err != nil {
		log.Fatal("store init failed", zap.Error(err))
	}

	app := &web.App{
		Log:      log,
		Store:    st,
		Checkout: &checkout.Service{Store: st, Log: log},
		Payments: payment.NewClient(os.Getenv("STRIPE_SECRET_KEY")),
		Sessions: web.NewSessions(sessionTTL),
	}

	reg := prometheus.NewRegistry()
	h := web.NewHandler(app, web.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

// buildStore picks the backend: Postgres when DATABASE_URL is set, the
// seeded in-memory store otherwise.
func buildStore(log *zap.Logger) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		mem := store.NewMemStore()
		if err := store.Seed(ctx, mem); err != nil {
			return nil, err
		}
		log.Info("using in-memory store with seeded catalog")
		return mem, nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	pg := store.NewPostgresStore(db)
	if err := pg.InitSchema(ctx); err != nil {
		return nil, err
	}

	// Seed the catalog once on an empty database.
	cats, err := pg.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		if err := store.Seed(ctx, pg); err != nil {
			return nil, err
		}
		log.Info("seeded catalog into postgres")
	}

	log.Info("using postgres store")
	return pg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
