package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/soportec/inventory-system/internal/api"
	"github.com/soportec/inventory-system/internal/api/metrics"
	"github.com/soportec/inventory-system/internal/core/idle"
	"github.com/soportec/inventory-system/internal/core/ports"
	"github.com/soportec/inventory-system/internal/core/service"
	"github.com/soportec/inventory-system/internal/infrastructure/config"
	mongodb "github.com/soportec/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/soportec/inventory-system/internal/infrastructure/db/redis"
	"github.com/soportec/inventory-system/internal/infrastructure/identity/devauth"
	"github.com/soportec/inventory-system/internal/infrastructure/identity/oidc"
	"github.com/soportec/inventory-system/internal/infrastructure/queue"
	"github.com/soportec/inventory-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "inventory-api",
		Pretty:  cfg.Env == "development",
	})

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	sessions := redisdb.NewSessionStore(rdb)
	states := redisdb.NewStateStore(rdb)

	profiles := mongodb.NewProfileRepository(db)
	products := mongodb.NewProductRepository(db)
	customers := mongodb.NewCustomerRepository(db)
	warehouses := mongodb.NewWarehouseRepository(db)
	invoices := mongodb.NewInvoiceRepository(db)
	orders := mongodb.NewServiceOrderRepository(db)

	ensureIndexes(ctx, log, profiles, products, customers, warehouses, invoices, orders)

	// --- Identity provider ---
	var provider ports.IdentityProvider
	switch cfg.Auth.Mode {
	case "dev":
		log.Warn().Msg("using static dev identity provider")
		provider = devauth.NewProvider(cfg.Auth.RedirectURL, cfg.Auth.DevUserID, cfg.Auth.DevEmail, cfg.Auth.DevName)
	default:
		provider, err = oidc.NewProvider(ctx, oidc.Config{
			IssuerURL:    cfg.Auth.IssuerURL,
			ClientID:     cfg.Auth.ClientID,
			ClientSecret: cfg.Auth.ClientSecret,
			RedirectURL:  cfg.Auth.RedirectURL,
			Scopes:       cfg.Auth.Scopes,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("oidc provider init failed")
		}
	}

	// --- Idle session monitor ---
	// The sign-out hook removes the stored session so the gate denies
	// the very next request of an idled-out visitor.
	signOut := func(ctx context.Context, sessionID string) error {
		metrics.IdleSignOutsTotal.Inc()
		return sessions.Delete(ctx, sessionID)
	}
	registry := idle.NewRegistry(idle.Config{
		Timeout:  cfg.Session.IdleTimeout,
		Warning:  cfg.Session.IdleWarning,
		Throttle: cfg.Session.ActivityThrottle,
	}, idle.RealClock(), signOut, log)
	defer registry.Close()

	go func() {
		tick := time.NewTicker(15 * time.Second)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				metrics.SessionsActive.Set(float64(registry.Len()))
			}
		}
	}()

	dispatcher := queue.NewActivityDispatcher(0, registry, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	gate := service.NewGateService(sessions, profiles, api.PublicPaths, log)
	auth := service.NewAuthService(provider, states, sessions, profiles, registry,
		cfg.JWTSecret, 24*time.Hour, cfg.Session.TTL, log)
	admin := service.NewAdminService(profiles, sessions, registry, log)

	e := api.NewRouter(api.Dependencies{
		Logger:       log,
		DB:           db,
		Redis:        rdb,
		Gate:         gate,
		Auth:         auth,
		Admin:        admin,
		Monitor:      registry,
		Products:     service.NewProductService(products, warehouses, log),
		Customers:    service.NewCustomerService(customers, log),
		Warehouses:   service.NewWarehouseService(warehouses, log),
		Invoices:     service.NewInvoiceService(invoices, products, customers, log),
		Orders:       service.NewServiceOrderService(orders, customers, log),
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Env != "development",
		JWTSecret:    cfg.JWTSecret,
		Activity:     dispatcher.Enqueue,
	})

	// --- Serve ---
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

type indexed interface {
	EnsureIndexes(ctx context.Context) error
}

// ensureIndexes creates collection indexes at startup; failures are
// logged but not fatal, the server can run without them.
func ensureIndexes(ctx context.Context, log zerolog.Logger, repos ...indexed) {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			log.Error().Err(err).Msg("ensure indexes failed")
		}
	}
}
