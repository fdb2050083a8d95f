package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/events"
	"storefront/internal/httpserver"
	"storefront/internal/migrate"
	charityrepo "storefront/internal/repository/charity"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	sharedwishlistrepo "storefront/internal/repository/sharedwishlist"
	userrepo "storefront/internal/repository/user"
	wishlistrepo "storefront/internal/repository/wishlist"
	"storefront/internal/seed"
	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	charitysvc "storefront/internal/service/charity"
	ordersvc "storefront/internal/service/order"
	wishlistsvc "storefront/internal/service/wishlist"
	"storefront/internal/session"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	if err := cfg.CheckSessionSecret(); err != nil {
		logger.Fatalf("config: %v", err)
	}
	if cfg.DevSessionSecret && cfg.SessionSecret == config.DefaultSessionSecret {
		logger.Printf("WARNING: using the development session secret; do not expose this instance")
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	if cfg.BootstrapOnStart {
		if err := migrate.Apply(ctx, dbpool); err != nil {
			logger.Fatalf("apply migrations: %v", err)
		}
		if err := seed.Apply(ctx, dbpool, logger); err != nil {
			logger.Fatalf("seed apply: %v", err)
		}
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	catalogService := catalogsvc.New(productRepo)
	cartService := cartsvc.New(productRepo, cartsvc.NewShareStore(cfg.CartShareTTL), logger)
	wishlistService := wishlistsvc.New(
		wishlistrepo.NewPostgres(dbpool, logger),
		sharedwishlistrepo.NewPostgres(dbpool, logger),
		productRepo,
		cfg.WishlistShareTTL,
		logger,
	)
	charityService := charitysvc.New(charityrepo.NewPostgres(dbpool, logger))
	accountService := accountsvc.New(userrepo.NewPostgres(dbpool, logger), logger)

	feed := httpserver.NewOrderFeed(logger)
	defer feed.Close()
	var broker events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, logger)
		if err != nil {
			logger.Fatalf("init kafka publisher: %v", err)
		}
		defer kafka.Close()
		broker = kafka
		logger.Printf("publishing order events to kafka topic %s", cfg.KafkaOrderTopic)
	} else {
		logger.Printf("KAFKA_BROKERS not set, order events go to the admin feed only")
	}
	orderService := ordersvc.New(orderrepo.NewPostgres(dbpool, logger), cartService, charityService, events.Fanout{feed, broker}, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Sessions:      session.NewStore(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure),
		Catalog:       catalogService,
		Cart:          cartService,
		Wishlist:      wishlistService,
		Orders:        orderService,
		Charities:     charityService,
		Accounts:      accountService,
		OrderFeed:     feed,
		PublicBaseURL: cfg.PublicBaseURL,
		AllowOrigins:  cfg.CORSAllowOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
