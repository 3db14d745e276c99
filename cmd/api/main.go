package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/khsakib1010-art/b2b-store/internal/config"
	"github.com/khsakib1010-art/b2b-store/internal/db"
	"github.com/khsakib1010-art/b2b-store/internal/httpserver"
	orderrepo "github.com/khsakib1010-art/b2b-store/internal/repository/order"
	productrepo "github.com/khsakib1010-art/b2b-store/internal/repository/product"
	tokenrepo "github.com/khsakib1010-art/b2b-store/internal/repository/token"
	userrepo "github.com/khsakib1010-art/b2b-store/internal/repository/user"
	catalogsvc "github.com/khsakib1010-art/b2b-store/internal/service/catalog"
	ordersvc "github.com/khsakib1010-art/b2b-store/internal/service/order"
	usersvc "github.com/khsakib1010-art/b2b-store/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	redisClient, err := db.ConnectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Fatalf("connect to redis: %v", err)
	}
	defer redisClient.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewRedis(redisClient)

	catalogService := catalogsvc.New(productRepo)
	orderService := ordersvc.New(orderRepo, productRepo)
	userService := usersvc.New(userRepo, tokenRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		UserSvc:    userService,
		CatalogSvc: catalogService,
		OrderSvc:   orderService,
	}, cfg.CORSOrigin)
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
