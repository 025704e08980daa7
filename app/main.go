package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcfirestore "cloud.google.com/go/firestore"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"example.com/rocketshoes/app/internal/config"
	domproduct "example.com/rocketshoes/app/internal/domain/product"
	"example.com/rocketshoes/app/internal/infra/notify"
	"example.com/rocketshoes/app/internal/infra/persistence"
	"example.com/rocketshoes/app/internal/infra/persistence/firestore"
	"example.com/rocketshoes/app/internal/infra/persistence/memory"
	"example.com/rocketshoes/app/internal/infra/persistence/postgres"
	"example.com/rocketshoes/app/internal/infra/persistence/redis"
	"example.com/rocketshoes/app/internal/infra/persistence/sqlstore"
	"example.com/rocketshoes/app/internal/infra/security"
	"example.com/rocketshoes/app/internal/infra/storefront"
	apihttp "example.com/rocketshoes/app/internal/interface/http"
	"example.com/rocketshoes/app/internal/logging"
	"example.com/rocketshoes/app/internal/telemetry"
	cartuc "example.com/rocketshoes/app/internal/usecase/cart"
)

type catalog interface {
	domproduct.Catalog
	domproduct.StockOracle
}

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, os.Stdout)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("cartd stopped")
	}
}

func run(cfg config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, "cartd", cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.WithError(err).Warn("tracer shutdown")
		}
	}()

	storage, closeStorage, err := openStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeStorage()
	log.WithField("backend", cfg.StorageBackend).Info("storage ready")

	products, closeCatalog, err := openCatalog(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer closeCatalog()
	log.WithField("backend", cfg.CatalogBackend).Info("catalog ready")

	feed := notify.NewFeed(32)
	store, err := cartuc.NewStore(ctx,
		persistence.NewSnapshotRepository(storage, cfg.StorageKey),
		products, products,
		notify.Multi{notify.NewLogger(log), feed},
		cartuc.WithLogger(log),
	)
	if err != nil {
		return err
	}

	deps := apihttp.Dependencies{
		CartStore:        store,
		NotificationFeed: feed,
		Logger:           log,
	}
	if cfg.APITokenSecret != "" {
		deps.TokenService = security.NewJWTService(cfg.APITokenSecret, 24*time.Hour)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apihttp.NewAPI(deps).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on :%s ...", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("received shutdown signal, initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg config.Config, log *logrus.Logger) (persistence.Storage, func(), error) {
	switch cfg.StorageBackend {
	case "memory":
		return memory.NewStorage(), func() {}, nil

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		s := sqlstore.NewKVStore(db, sqlstore.MySQL)
		if err := s.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, func() { db.Close() }, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		s := postgres.NewStorage(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return s, pool.Close, nil

	case "redis":
		client := redis.NewClient(cfg.RedisAddr)
		s := redis.NewStorage(client, "storefront", log)
		if err := s.WaitReady(ctx, 2*time.Minute); err != nil {
			client.Close()
			return nil, nil, err
		}
		return s, func() { client.Close() }, nil

	case "firestore":
		client, err := gcfirestore.NewClient(ctx, cfg.FirestoreProj)
		if err != nil {
			return nil, nil, err
		}
		return firestore.NewStorage(client, "storefront"), func() { client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func openCatalog(cfg config.Config) (catalog, func(), error) {
	if cfg.CatalogBackend == "http" {
		c, err := storefront.NewClient(cfg.CatalogURL, cfg.LookupTimeout)
		return c, func() {}, err
	}

	dialect, ok := sqlstore.DialectFor(cfg.CatalogBackend)
	if !ok {
		return nil, nil, fmt.Errorf("unknown catalog backend %q", cfg.CatalogBackend)
	}
	db, err := sql.Open(dialect.Driver, cfg.CatalogDSN)
	if err != nil {
		return nil, nil, err
	}
	return struct {
		*sqlstore.ProductRepository
		*sqlstore.StockRepository
	}{
		sqlstore.NewProductRepository(db, dialect),
		sqlstore.NewStockRepository(db, dialect),
	}, func() { db.Close() }, nil
}
