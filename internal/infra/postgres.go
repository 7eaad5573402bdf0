package infra

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"yogafunnel/internal/models/db_models"
)

func InitPostgresql(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("POSTGRES_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates the leads and checkouts tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&db_models.Lead{}, &db_models.Checkout{})
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error().Err(err).Msg("get database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("close database connection")
	} else {
		log.Info().Msg("PostgreSQL database connection closed")
	}
}
