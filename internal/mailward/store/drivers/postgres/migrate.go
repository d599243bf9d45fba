package postgres

import (
	"database/sql"
	"errors"

	"github.com/veridianlabs/mailward/internal/mailward/store/drivers/postgres/migrations"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ApplyMigrations applies any pending database migrations using the embedded
// migration files. golang-migrate wants a database/sql handle, so a short
// lived one is opened through the pgx stdlib adapter alongside the pool.
func (m *Store) ApplyMigrations() error {
	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// 1. Create the postgres migration driver
	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return err
	}

	// 2. Create the iofs (embedded filesystem) source driver
	migrationsFilesystem, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		return err
	}

	// 3. Create the migrate instance to run migrations
	instance, err := migrate.NewWithInstance("iofs", migrationsFilesystem, "", driver)
	if err != nil {
		return err
	}

	// 4. Apply all up migrations
	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
