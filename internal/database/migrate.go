package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/macro-tracker/backend/internal/models"
)

// AutoMigrate creates the schema from the models. Used for sqlite and tests.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Meal{},
	)
}

// RunMigrations executes all SQL migration files in the migrations directory
func RunMigrations(db *gorm.DB, migrationsDir string, log *logrus.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("using GORM auto-migration for SQLite")
		return AutoMigrate(db)
	}

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, "_rollback.sql") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, name := range files {
		var count int64
		if err := db.Table("schema_migrations").Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.WithField("migration", name).Debug("skipping applied migration")
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			if err := tx.Exec("INSERT INTO schema_migrations (name) VALUES (?)", name).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.WithField("migration", name).Info("applied migration")
	}

	return nil
}
