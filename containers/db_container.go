package containers

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	image      = "postgres:16.3-alpine"
	dbName     = "lolstats"
	dbUser     = "lolstats"
	dbPassword = "secret"
)

// DBContainer is a throwaway postgres server for tests. The schema is not
// loaded, the store creates it on first use.
type DBContainer struct {
	container *postgres.PostgresContainer
}

func NewDBContainer(ctx context.Context) (*DBContainer, error) {
	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		// Run can hand back a container even when the wait strategy fails.
		testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("error starting container: %w", err)
	}

	return &DBContainer{
		container: container,
	}, nil
}

func (c *DBContainer) Shutdown() error {
	if err := testcontainers.TerminateContainer(c.container); err != nil {
		return fmt.Errorf("error terminating container: %w", err)
	}
	return nil
}

func (c *DBContainer) ConnectionString(ctx context.Context) (string, error) {
	// explicitly set sslmode=disable because the container is not configured to use TLS
	connStr, err := c.container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return "", fmt.Errorf("error getting connection string: %w", err)
	}
	return connStr, nil
}
