package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/pageza/macro-tracker/backend/config"
	"github.com/pageza/macro-tracker/backend/internal/logging"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	migrationsDir := flag.String("dir", "migrations", "Directory holding the SQL migrations")
	flag.Parse()

	log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stdout)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.WithError(err).Fatal("DATABASE_URL is not set and configuration could not be loaded")
		}
		dsn = cfg.DSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		log.WithError(err).Fatal("failed to create migrations table")
	}

	if *rollback {
		err = rollbackLast(db, *migrationsDir, log)
	} else {
		err = migrateUp(db, *migrationsDir, log)
	}
	if err != nil {
		log.WithError(err).Fatal("migration failed")
	}
}

func migrateUp(db *sql.DB, dir string, log *logrus.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if filepath.Ext(name) == ".sql" && !strings.HasSuffix(name, "_rollback.sql") {
			files = append(files, name)
		}
	}
	// Sort files to apply in order
	sort.Strings(files)

	applied := 0
	for _, name := range files {
		var exists bool
		if err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name = $1)", name).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check migration %s: %w", name, err)
		}
		if exists {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if err := inTx(db, string(content), "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
		log.WithField("migration", name).Info("applied migration")
		applied++
	}

	log.WithField("applied", applied).Info("migrations complete")
	return nil
}

func rollbackLast(db *sql.DB, dir string, log *logrus.Logger) error {
	var name string
	err := db.QueryRow("SELECT name FROM schema_migrations ORDER BY applied_at DESC, id DESC LIMIT 1").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("no migrations to rollback")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last migration: %w", err)
	}

	rollbackPath := filepath.Join(dir, strings.TrimSuffix(name, ".sql")+"_rollback.sql")
	content, err := os.ReadFile(rollbackPath)
	if err != nil {
		return fmt.Errorf("failed to read rollback file: %w", err)
	}
	if err := inTx(db, string(content), "DELETE FROM schema_migrations WHERE name = $1", name); err != nil {
		return fmt.Errorf("failed to roll back %s: %w", name, err)
	}

	log.WithField("migration", name).Info("rolled back migration")
	return nil
}

// inTx runs script and then the bookkeeping statement in one transaction
func inTx(db *sql.DB, script, record, name string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(record, name); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
