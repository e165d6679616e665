package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cathandler "vigia/internal/catalog/handler"
	catservice "vigia/internal/catalog/service"
	catstore "vigia/internal/catalog/store"
	chkhandler "vigia/internal/checklist/handler"
	chkservice "vigia/internal/checklist/service"
	chkstore "vigia/internal/checklist/store"
	insphandler "vigia/internal/inspection/handler"
	inspmetrics "vigia/internal/inspection/metrics"
	inspservice "vigia/internal/inspection/service"
	inspstore "vigia/internal/inspection/store"
	invhandler "vigia/internal/inventory/handler"
	invservice "vigia/internal/inventory/service"
	invstore "vigia/internal/inventory/store"
	"vigia/internal/platform/config"
	"vigia/internal/platform/httpserver"
	"vigia/internal/platform/logger"
	platformmetrics "vigia/internal/platform/metrics"
	"vigia/internal/platform/postgres"
	"vigia/internal/platform/redis"
	rpthandler "vigia/internal/report/handler"
	rptmetrics "vigia/internal/report/metrics"
	rptservice "vigia/internal/report/service"
	httptransport "vigia/internal/transport/http"
)

// main wires stores, services and the HTTP router, then owns the server
// lifecycle. Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	var (
		catalogStore    catservice.Store
		inventoryStore  invservice.Store
		checklistStore  chkservice.Store
		inspectionStore inspservice.Store
	)
	if cfg.PostgresDSN != "" {
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error("schema migration failed", "error", err)
			os.Exit(1)
		}
		catalogStore = catstore.NewPostgres(db)
		inventoryStore = invstore.NewPostgres(db)
		checklistStore = chkstore.NewPostgres(db)
		inspectionStore = inspstore.NewPostgres(db)
		log.Info("using postgres stores")
	} else {
		catalogStore = catstore.NewInMemory()
		inventoryStore = invstore.NewInMemory()
		checklistStore = chkstore.NewInMemory()
		inspectionStore = inspstore.NewInMemory()
		log.Info("using in-memory stores")
	}

	cache, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if cache != nil {
		defer cache.Close()
		catalogStore = catstore.NewCached(catalogStore, cache.Client, cfg.CatalogCacheTTL)
		log.Info("catalog cache enabled", "ttl", cfg.CatalogCacheTTL)
	}

	catalog := catservice.New(catalogStore, log)
	if err := catalog.Seed(ctx); err != nil {
		log.Error("catalog seed failed", "error", err)
		os.Exit(1)
	}
	inventory := invservice.New(inventoryStore, log)
	checklists := chkservice.New(checklistStore, log)
	inspections := inspservice.New(inspectionStore, inventory, checklists, catalog, log,
		inspservice.WithMetrics(inspmetrics.New()))
	reports := rptservice.New(inspections, inventory, catalog, log,
		rptservice.WithMetrics(rptmetrics.New()))

	router := httptransport.NewRouter(log, platformmetrics.New(),
		cathandler.New(catalog, log),
		invhandler.New(inventory, log),
		chkhandler.New(checklists, log),
		insphandler.New(inspections, log),
		rpthandler.New(reports, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server starting", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
