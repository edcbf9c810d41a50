package db

import (
	"fmt"

	"go_redirect/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migrate creates or updates the redirect rule table.
// table overrides the model's default table name when not empty.
func Migrate(db *gorm.DB, table string) error {
	if table == "" {
		table = model.DefaultRedirectTable
	}
	logrus.WithField("table", table).Info("Starting database migration...")

	if err := db.Table(table).AutoMigrate(&model.Redirect{}); err != nil {
		return fmt.Errorf("failed to migrate table %s: %w", table, err)
	}

	logrus.WithField("table", table).Info("✓ Database migration completed successfully")
	return nil
}
