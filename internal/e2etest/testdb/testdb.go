// Package testdb starts a throwaway Postgres container for database tests.
package testdb

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const image = "postgres:16-alpine"

type TestDBInstance struct {
	DSN       string
	container *tcpostgres.PostgresContainer
}

func NewTestDBInstance() (*TestDBInstance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase("checkout"),
		tcpostgres.WithUsername("checkout"),
		tcpostgres.WithPassword("checkout"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		if ctr != nil {
			_ = testcontainers.TerminateContainer(ctr)
		}
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = testcontainers.TerminateContainer(ctr)
		return nil, fmt.Errorf("postgres connection string: %w", err)
	}

	return &TestDBInstance{DSN: dsn, container: ctr}, nil
}

func (db *TestDBInstance) Down() {
	_ = testcontainers.TerminateContainer(db.container)
}
