package database

import (
	"fmt"

	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/model"
)

// Migrate creates or updates the schema for all persisted models
func (c *Connection) Migrate() error {
	err := c.DB.AutoMigrate(
		&model.User{},
		&model.Transaction{},
		&model.Plan{},
		&model.GiftCard{},
		&model.CallbackEvent{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
