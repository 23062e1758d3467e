// The init package contains functions that setup required dependencies such as the SQLite database.
package initialization

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate"
	"github.com/golang-migrate/migrate/database/sqlite3"
	_ "github.com/golang-migrate/migrate/source/file"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gofinger/internal/webfinger"
)

// SetupDB creates the database, if it does not yet exist, and applies all remaining migrations.
func SetupDB(db *sql.DB, folder, dbname string) error {
	log.Info().Msg("starting migrations")
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		log.Error().Err(err).Msg("failed to create sqlite3 migration driver")
		return err
	}

	mig, err := migrate.NewWithDatabaseInstance(
		"file://"+folder,
		dbname,
		driver,
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create Migrate object")
		return err
	}

	err = mig.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error().Err(err).Msg("failed to run migrations")
		return err
	}
	return nil
}

func OpenDB(connString string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", connString)
	if err != nil {
		log.Error().Err(err).Str("connection string", connString).Msg("failed to open database")
		return nil, err
	}
	// SQLite allows a single writer; one connection also keeps in-memory databases alive and shared.
	db.SetMaxOpenConns(1)
	return db, db.Ping()
}

// Publisher is the part of the directory service Seed needs.
type Publisher interface {
	Publish(ctx context.Context, descriptor webfinger.Response) error
}

// Seed publishes every descriptor of a JSON array of JRD documents, returning how many were stored.
func Seed(ctx context.Context, p Publisher, path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var descriptors []webfinger.Response
	if err = json.Unmarshal(content, &descriptors); err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	for i, d := range descriptors {
		if err = p.Publish(ctx, d); err != nil {
			return i, fmt.Errorf("%s: descriptor %d (%s): %w", path, i, d.Subject, err)
		}
		log.Debug().Str("subject", d.Subject).Msg("seeded descriptor")
	}
	log.Info().Int("count", len(descriptors)).Str("file", path).Msg("seeded descriptors")
	return len(descriptors), nil
}
