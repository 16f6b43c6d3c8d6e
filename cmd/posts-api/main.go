package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/posts-api/internal/config"
	"github.com/deppfellow/posts-api/internal/database"
	"github.com/deppfellow/posts-api/internal/handler"
	"github.com/deppfellow/posts-api/internal/logger"
	"github.com/deppfellow/posts-api/internal/middleware"
	"github.com/deppfellow/posts-api/internal/repository"
	"github.com/deppfellow/posts-api/internal/router"
	"github.com/deppfellow/posts-api/internal/server"
	"github.com/deppfellow/posts-api/internal/service"
)

const (
	migrateTimeout  = 30 * time.Second
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), migrateTimeout)
	err = database.Migrate(migrateCtx, &log, cfg)
	cancelMigrate()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers, middlewares))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited properly")
}
