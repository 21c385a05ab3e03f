package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/MikeRez0/studiocheckout/internal/adapter/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the order store connection pool with a Postgres flavoured query builder.
type DB struct {
	*pgxpool.Pool
	dsn          string
	QueryBuilder *squirrel.StatementBuilderType
}

//go:embed migrations/*.sql
var migrationsDir embed.FS

func NewDBStorage(ctx context.Context, conf *config.Database) (*DB, error) {
	poolConf, err := pgxpool.ParseConfig(conf.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database dsn: %w", err)
	}
	if conf.MaxConns > 0 {
		poolConf.MaxConns = conf.MaxConns
	}
	poolConf.MaxConnIdleTime = 5 * time.Minute

	// order updates hold a row lock across a transaction; bound how long a
	// second writer waits for it and how long any query may run
	params := poolConf.ConnConfig.RuntimeParams
	if conf.StatementTimeout > 0 {
		params["statement_timeout"] = millis(conf.StatementTimeout)
	}
	if conf.LockTimeout > 0 {
		params["lock_timeout"] = millis(conf.LockTimeout)
	}
	params["application_name"] = "studiocheckout"

	pool, err := pgxpool.NewWithConfig(ctx, poolConf)
	if err != nil {
		return nil, fmt.Errorf("failed to create a connection pool: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	return &DB{
		Pool:         pool,
		dsn:          conf.DSN,
		QueryBuilder: &psql,
	}, nil
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

// RunMigrations brings the orders schema up to the latest embedded version.
func (db *DB) RunMigrations() error {
	d, err := iofs.New(migrationsDir, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, db.dsn)
	if err != nil {
		return fmt.Errorf("failed to get a new migrate instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations to the DB: %w", err)
	}

	_, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return errors.New("orders schema is dirty, a previous migration did not finish")
	}
	return nil
}
