package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cfresh_inventory/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

// Migrator applies the embedded migrations. Each run borrows a single
// connection from the pool and hands it back when done; the pool itself
// stays open for the caller.
type Migrator struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewMigrator(db *sql.DB, logger *logrus.Logger) *Migrator {
	return &Migrator{db: db, log: logger}
}

func (m *Migrator) instance(ctx context.Context) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	conn, err := m.db.Conn(ctx)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("failed to acquire migration connection: %w", err)
	}
	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		_ = src.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}
	mig, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}
	return mig, nil
}

// close releases the borrowed connection.
func (m *Migrator) close(mig *migrate.Migrate) {
	srcErr, dbErr := mig.Close()
	if srcErr != nil || dbErr != nil {
		m.log.Warnf("Migrator: close reported source=%v database=%v", srcErr, dbErr)
	}
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	mig, err := m.instance(ctx)
	if err != nil {
		return err
	}
	defer m.close(mig)

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	m.logVersion(mig)
	return nil
}

// MigrateTo moves the schema up or down to version.
func (m *Migrator) MigrateTo(ctx context.Context, version uint) error {
	mig, err := m.instance(ctx)
	if err != nil {
		return err
	}
	defer m.close(mig)

	if err := mig.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate to version %d: %w", version, err)
	}
	m.logVersion(mig)
	return nil
}

// Reset drops every table, the migration history included, and rebuilds
// the schema at version.
func (m *Migrator) Reset(ctx context.Context, version uint) error {
	mig, err := m.instance(ctx)
	if err != nil {
		return err
	}
	m.log.Warn("Migrator: dropping all tables")
	err = mig.Drop()
	m.close(mig)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return m.MigrateTo(ctx, version)
}

func (m *Migrator) logVersion(mig *migrate.Migrate) {
	version, dirty, err := mig.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			m.log.Info("Migrator: schema has no version")
			return
		}
		m.log.Warnf("Migrator: could not read schema version: %v", err)
		return
	}
	m.log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Migrator: schema is up to date")
}
