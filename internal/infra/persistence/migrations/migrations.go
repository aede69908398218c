// Package migrations embeds the schema and applies it with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"

	"agora/internal/errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// NewMigrator builds a migrator for a postgres:// database URL.
func NewMigrator(databaseURL string) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration source")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migrator")
	}

	return m, nil
}

// NewMigratorWithDB builds a migrator over an open connection. Closing the
// migrator closes db.
func NewMigratorWithDB(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration source")
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create migrator")
	}

	return m, nil
}

// Up applies all pending migrations. An up-to-date schema is not an error.
func Up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}

// Down rolls back the given number of migrations.
func Down(m *migrate.Migrate, steps int) error {
	if steps <= 0 {
		return errors.Errorf("steps must be positive, got %d", steps)
	}

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "failed to roll back migrations")
	}

	return nil
}

// Version reports the applied version. Version 0 means no migration ran yet.
func Version(m *migrate.Migrate) (version uint, dirty bool, err error) {
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to read migration version")
	}

	return version, dirty, nil
}
