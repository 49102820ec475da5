package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stayhive/backend/internal/adapters/database"
	"github.com/stayhive/backend/internal/adapters/memory"
	"github.com/stayhive/backend/internal/api/handlers"
	"github.com/stayhive/backend/internal/api/routes"
	"github.com/stayhive/backend/internal/application/services"
	"github.com/stayhive/backend/internal/infrastructure/clients/postgres"
	"github.com/stayhive/backend/internal/infrastructure/observability"
	"github.com/stayhive/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("stayhive-api", cfg.Log.Env)

	facade, cleanup, err := buildFacade(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}
	defer cleanup()

	router := routes.NewRouter(
		handlers.NewUserHandler(facade),
		handlers.NewPlaceHandler(facade),
		handlers.NewReviewHandler(facade),
		handlers.NewAmenityHandler(facade),
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("backend", cfg.Storage.Backend).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

// buildFacade wires the facade over the configured backing. Both backings
// satisfy the same repository contracts, so nothing above this point knows
// which one is in use.
func buildFacade(cfg *config.Config) (*services.Facade, func(), error) {
	if cfg.Storage.Backend == config.BackendPostgres {
		client, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		facade := services.NewFacade(
			database.NewUserAdapter(client),
			database.NewPlaceAdapter(client),
			database.NewReviewAdapter(client),
			database.NewAmenityAdapter(client),
		)
		return facade, func() { client.Close() }, nil
	}

	reviews := memory.NewReviewRepository()
	facade := services.NewFacade(
		memory.NewUserRepository(),
		memory.NewPlaceRepository(reviews),
		reviews,
		memory.NewAmenityRepository(),
	)
	return facade, func() {}, nil
}
