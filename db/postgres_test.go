package db

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/mww/lolstats/containers"
	"github.com/testcontainers/testcontainers-go"
)

var schemaCtr = int32(0)

func TestPostgres(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := containers.NewDBContainer(ctx)
	assertFatalf(t, err == nil, "error starting postgres: %v", err)
	t.Cleanup(func() {
		if err := container.Shutdown(); err != nil {
			t.Logf("%v", err)
		}
	})

	connStr, err := container.ConnectionString(ctx)
	assertFatalf(t, err == nil, "%v", err)

	// Every subtest gets its own schema so the rows do not leak between them.
	runStoreTests(t, func(t *testing.T) DB {
		schema := fmt.Sprintf("t%d", atomic.AddInt32(&schemaCtr, 1))

		admin, err := NewPostgres(ctx, connStr, clock.New())
		assertFatalf(t, err == nil, "error connecting to postgres: %v", err)
		_, err = admin.(*postgresDB).pool.Exec(ctx, "CREATE SCHEMA "+schema)
		admin.Close()
		assertFatalf(t, err == nil, "error creating schema %s: %v", schema, err)

		db, err := New(ctx, connStr+"&search_path="+schema, clock.New())
		assertFatalf(t, err == nil, "error connecting to postgres: %v", err)
		t.Cleanup(db.Close)

		err = db.EnsureSchema(ctx)
		assertFatalf(t, err == nil, "error creating matches table: %v", err)
		return db
	})
}
