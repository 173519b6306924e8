package main

import (
	"context"
	"log"

	"transparencia-salud-server/config"
	"transparencia-salud-server/internal/api/routes"
	"transparencia-salud-server/internal/auth"
	"transparencia-salud-server/internal/database"
	"transparencia-salud-server/internal/s3"
	"transparencia-salud-server/internal/socket"
	"transparencia-salud-server/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load configuration (.env is optional, config + env are authoritative)
	_ = godotenv.Load()
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	ttl, err := cfg.TokenTTL()
	if err != nil {
		log.Fatalf("Invalid jwt.expiration: %v", err)
	}
	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, ttl)

	// 2. Connect to Postgres and apply the schema
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("Could not run migrations: %v", err)
	}

	st := postgres.NewStore(pool)

	// 3. Seed demo ledger and the configured admin account
	if err := database.SeedHospitals(ctx, st); err != nil {
		log.Fatalf("Could not seed hospitals: %v", err)
	}
	if err := database.SeedAdmin(ctx, st, cfg.Seed); err != nil {
		log.Fatalf("Could not seed admin account: %v", err)
	}

	// 4. Report publishing is optional; leave the uploader nil when unset
	var uploader *s3.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Could not create S3 uploader: %v", err)
		}
	}

	hub := socket.NewHub()

	// 5. Start server
	router := routes.SetupRouter(st, tokens, hub, uploader)
	log.Printf("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
