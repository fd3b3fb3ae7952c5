package database

import (
	"delegasi-pay/internal/common/models"
	"delegasi-pay/internal/pkg/logger"
	"fmt"
)

func (db *Database) RunMigrations() error {
	logger.Info.Println("Starting database migrations...")

	entities := []any{
		&models.PaymentConfirmation{},
	}

	for _, model := range entities {
		logger.Info.Printf("Migrating model: %T", model)
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	if db.Config.Driver == POSTGRES {
		if err := db.createIndexes(); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	logger.Info.Println("Database migrations completed successfully")
	return nil
}

func (db *Database) createIndexes() error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_payment_confirmations_confirmed_at ON payment_confirmations(confirmed_at);`,
		`CREATE INDEX IF NOT EXISTS idx_payment_confirmations_channel_status ON payment_confirmations(channel, status);`,
	}

	for _, query := range indexes {
		if err := db.Exec(query).Error; err != nil {
			logger.Error.Printf("Error creating index: %s, Error: %v", query, err)
			return err
		}
	}

	return nil
}
