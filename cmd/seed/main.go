package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/stayhive/backend/internal/adapters/database"
	"github.com/stayhive/backend/internal/application/services"
	"github.com/stayhive/backend/internal/domain/policy"
	"github.com/stayhive/backend/internal/infrastructure/clients/postgres"
	"github.com/stayhive/backend/internal/infrastructure/observability"
	"github.com/stayhive/backend/pkg/config"
)

// schema creates the tables the postgres backing expects. The unique indexes
// back up the uniqueness rules the facade enforces.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          VARCHAR(36) PRIMARY KEY,
	first_name  VARCHAR(50) NOT NULL,
	last_name   VARCHAR(50) NOT NULL,
	email       VARCHAR(120) NOT NULL UNIQUE,
	password    VARCHAR(255) NOT NULL,
	is_admin    BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS places (
	id          VARCHAR(36) PRIMARY KEY,
	title       VARCHAR(100) NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	price       DOUBLE PRECISION NOT NULL,
	latitude    DOUBLE PRECISION NOT NULL,
	longitude   DOUBLE PRECISION NOT NULL,
	owner_id    VARCHAR(36) NOT NULL REFERENCES users(id),
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS amenities (
	id          VARCHAR(36) PRIMARY KEY,
	name        VARCHAR(50) NOT NULL UNIQUE,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
	id          VARCHAR(36) PRIMARY KEY,
	text        VARCHAR(255) NOT NULL,
	rating      INTEGER NOT NULL,
	user_id     VARCHAR(36) NOT NULL REFERENCES users(id),
	place_id    VARCHAR(36) NOT NULL REFERENCES places(id),
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS place_amenities (
	place_id    VARCHAR(36) NOT NULL REFERENCES places(id),
	amenity_id  VARCHAR(36) NOT NULL REFERENCES amenities(id),
	PRIMARY KEY (place_id, amenity_id)
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("stayhive-seed", cfg.Log.Env)

	client, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer client.Close()

	ctx := context.Background()
	if _, err := client.DB().ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("failed to create schema")
	}

	facade := services.NewFacade(
		database.NewUserAdapter(client),
		database.NewPlaceAdapter(client),
		database.NewReviewAdapter(client),
		database.NewAmenityAdapter(client),
	)

	seed(ctx, facade)
}

func seed(ctx context.Context, facade *services.Facade) {
	admin, err := facade.CreateUser(ctx, map[string]any{
		"first_name": "Ada",
		"last_name":  "Okafor",
		"email":      "admin@stayhive.io",
		"password":   "change-me",
		"is_admin":   true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed admin")
	}

	host, err := facade.CreateUser(ctx, map[string]any{
		"first_name": "Tunde",
		"last_name":  "Bakare",
		"email":      "tunde@example.com",
		"password":   "change-me",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed host")
	}

	guest, err := facade.CreateUser(ctx, map[string]any{
		"first_name": "Chiamaka",
		"last_name":  "Eze",
		"email":      "chiamaka@example.com",
		"password":   "change-me",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed guest")
	}

	place, err := facade.CreatePlace(ctx, map[string]any{
		"title":       "Lagos Island Loft",
		"description": "Bright loft close to the marina",
		"price":       45000.0,
		"latitude":    6.4541,
		"longitude":   3.3947,
		"owner_id":    host.ID,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed place")
	}

	for _, name := range []string{"Wi-Fi", "Air Conditioning", "Parking"} {
		amenity, err := facade.CreateAmenity(ctx, policy.System, map[string]any{"name": name})
		if err != nil {
			log.Fatal().Err(err).Str("amenity", name).Msg("failed to seed amenity")
		}
		if _, err := facade.AddAmenityToPlace(ctx, policy.System, place.ID, amenity.ID); err != nil {
			log.Fatal().Err(err).Str("amenity", name).Msg("failed to link amenity")
		}
	}

	if _, err := facade.CreateReview(ctx, map[string]any{
		"text":     "Great stay, would book again",
		"rating":   5,
		"user_id":  guest.ID,
		"place_id": place.ID,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to seed review")
	}

	log.Info().
		Str("admin", admin.Email).
		Str("place", place.Title).
		Msg("seed complete")
}
