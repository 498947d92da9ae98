package main

import (
	"github.com/oggyb/greenapi-notifier/internal/config"
	"github.com/oggyb/greenapi-notifier/internal/db/gormdb"
	"github.com/oggyb/greenapi-notifier/internal/logging"
	gormrepo "github.com/oggyb/greenapi-notifier/internal/repository/gorm"
)

func main() {
	// Load application configuration (DB, logging) from env/.env.
	cfg := config.New()

	closeLog, err := logging.Init(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		logging.Log.Fatal().Err(err).Msg("[Migrate] failed to init logging")
	}
	defer closeLog()

	// Open the configured database through our GORM adapter.
	db, err := gormdb.New(cfg.DB.Driver, cfg.DSN())
	if err != nil {
		logging.Log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("[Migrate] failed to connect to database")
	}
	defer db.Close()

	logging.Log.Info().Str("driver", cfg.DB.Driver).Msg("[Migrate] connected to database")

	if err := gormrepo.AutoMigrate(db); err != nil {
		logging.Log.Fatal().Err(err).Msg("[Migrate] AutoMigrate failed")
	}

	logging.Log.Info().Int("models", len(gormrepo.Models())).Msg("[Migrate] schema is up to date")
}
