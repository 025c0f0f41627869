package main

import (
	"github.com/tair/user-service/pkg/config"
	"github.com/tair/user-service/pkg/database"
	"github.com/tair/user-service/pkg/logger"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id SERIAL PRIMARY KEY,
	username TEXT UNIQUE NOT NULL,
	email TEXT UNIQUE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Standalone schema migration driven by the same environment variables as
// the server. The server's AutoMigrate covers the common case; this binary
// exists for deployments that migrate before rollout.
func main() {
	logger.Init("user-service-migrate", true)

	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if _, err := db.Exec(createUsersTable); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to apply migration")
	}

	logger.Logger.Info().Msg("Migrations applied successfully")
}
