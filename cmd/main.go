package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	httpapi "storefront/internal/http"
	"storefront/internal/repository"
	"storefront/internal/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))
	cfg := config.Load()

	store := repository.NewMemoryStore()
	if err := repository.SeedDemoData(context.Background(), store); err != nil {
		slog.Error("seed demo data", "err", err)
		os.Exit(1)
	}
	cartsRepo := repository.NewMemoryCarts(store)
	ordersRepo := repository.NewMemoryOrders(store)
	itemsRepo := repository.NewMemoryItems(store)
	votersRepo := repository.NewMemoryVoters(store)
	tx := repository.NewMemoryTx(store)

	userDB, err := repository.OpenUserDB(cfg.UserDBPath)
	if err != nil {
		slog.Error("open user database", "path", cfg.UserDBPath, "err", err)
		os.Exit(1)
	}
	usersRepo := repository.NewUserDB(userDB)

	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	srv := httpapi.NewServer(httpapi.Services{
		Catalog: service.NewCatalogService(store),
		Cart:    service.NewCartService(store, cartsRepo, tx),
		Orders:  service.NewOrderService(store, cartsRepo, ordersRepo, tx),
		Auth:    service.NewAuthService(usersRepo, hasher),
		Items:   service.NewItemService(itemsRepo),
		Voting:  service.NewVotingService(votersRepo),
	}, httpapi.StaticDirs{Public: cfg.PublicDir, Login: cfg.LoginDir})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "err", err)
	}
}
