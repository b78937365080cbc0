package schema

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/sitereg/db"
)

// MigrationsTable is where golang-migrate records the applied version.
const MigrationsTable = "sitereg_schema_migrations"

// Schema is the process-wide handle on the registry database. Build it once
// at start-up with New and release it with Close.
type Schema struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New wraps an open connection.
func New(db *gorm.DB, logger *zap.Logger) *Schema {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Schema{db: db, logger: logger}
}

// DB returns the underlying connection.
func (s *Schema) DB() *gorm.DB {
	return s.db
}

// Bootstrap applies every pending migration. Running it against an up to
// date database changes nothing and succeeds.
func (s *Schema) Bootstrap(ctx context.Context) error {
	m, err := s.migrator(ctx)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			s.logger.Info("schema is up to date")
			return nil
		}
		return fmt.Errorf("migration failed: %w", err)
	}

	version, _, _ := m.Version()
	s.logger.Info("schema migrated", zap.Uint("version", version))
	return nil
}

// Rollback reverts the given number of applied migrations.
func (s *Schema) Rollback(ctx context.Context, steps int) error {
	if steps < 1 {
		return fmt.Errorf("invalid number of steps: %d", steps)
	}

	m, err := s.migrator(ctx)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-steps); err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}

	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		s.logger.Info("schema rolled back to empty database")
		return nil
	}
	s.logger.Info("schema rolled back", zap.Uint("version", version))
	return nil
}

// Version returns the applied migration version. A database without any
// applied migration reports version 0.
func (s *Schema) Version(ctx context.Context) (version uint, dirty bool, err error) {
	m, err := s.migrator(ctx)
	if err != nil {
		return 0, false, err
	}
	defer func() { _, _ = m.Close() }()

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Close releases the connection.
func (s *Schema) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// migrator binds golang-migrate to a single pooled connection so that closing
// it leaves the pool open.
func (s *Schema) migrator(ctx context.Context) (*migrate.Migrate, error) {
	migrationsFS, err := fs.Sub(db.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to get embedded migrations: %w", err)
	}

	source, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs driver: %w", err)
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{s.logger.Sugar()}
	return m, nil
}

type migrateLogger struct {
	*zap.SugaredLogger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.Debugf(format, v...)
}

func (l migrateLogger) Verbose() bool {
	return l.Desugar().Core().Enabled(zap.DebugLevel)
}
