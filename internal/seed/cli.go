package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"cfresh_inventory/config"
	"cfresh_inventory/migrations"
	"cfresh_inventory/pkg/db"
	"cfresh_inventory/pkg/logger"

	"github.com/sirupsen/logrus"
)

var ErrUsage = errors.New("missing database credentials")

// SchemaMigrator moves the schema to a numbered migration version.
type SchemaMigrator interface {
	Reset(ctx context.Context, version uint) error
	MigrateTo(ctx context.Context, version uint) error
}

// FixtureLoader loads the seed data sets.
type FixtureLoader interface {
	SeedBase(ctx context.Context) error
	SeedCategoriesV2(ctx context.Context) error
}

// Step is one seed command body, run against an open connection.
type Step func(ctx context.Context, migrator SchemaMigrator, loader FixtureLoader) error

// BaseStep rebuilds the schema at the base version and loads the fixtures.
func BaseStep(ctx context.Context, migrator SchemaMigrator, loader FixtureLoader) error {
	if err := migrator.Reset(ctx, migrations.BaseVersion); err != nil {
		return err
	}
	return loader.SeedBase(ctx)
}

// VendorDetailsStep adds the vendor detail columns and swaps in the
// second category list.
func VendorDetailsStep(ctx context.Context, migrator SchemaMigrator, loader FixtureLoader) error {
	if err := migrator.MigrateTo(ctx, migrations.VendorDetailsVersion); err != nil {
		return err
	}
	return loader.SeedCategoriesV2(ctx)
}

// Run implements the shared `<command> <db-user> <db-password>` surface
// and returns the process exit code.
func Run(command string, args []string, stderr io.Writer, step Step) int {
	log := logger.NewWithOutput("info", stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := run(command, args, log, step); err != nil {
		fmt.Fprintf(stderr, "An error occurred while attempting to seed the database: %v\n", err)
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(stderr, "usage: %s <db-user> <db-password>\n", command)
		}
		return 1
	}
	return 0
}

func run(command string, args []string, log *logrus.Logger, step Step) error {
	if len(args) < 2 || args[0] == "" {
		return ErrUsage
	}
	cfg, err := config.LoadSeedConfig(log)
	if err != nil {
		return err
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	database, err := db.Connect(cfg.DSN(args[0], args[1]), db.PoolOptions{MaxOpenConns: 2, MaxIdleConns: 1, ConnMaxLifetime: time.Minute}, log)
	if err != nil {
		return err
	}
	defer closeDB(database, log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.Infof("Seed: Running %s against %s:%s/%s", command, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err := step(ctx, db.NewMigrator(database, log), NewSeeder(database, log)); err != nil {
		return err
	}
	log.Infof("Seed: %s finished", command)
	return nil
}

func closeDB(database *sql.DB, log *logrus.Logger) {
	if err := database.Close(); err != nil {
		log.Warnf("Seed: Failed to close database: %v", err)
	}
}
