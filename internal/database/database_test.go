package database

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"

	"github.com/Tomlord1122/todoey/internal/config"
	"github.com/Tomlord1122/todoey/internal/domain"
	"github.com/Tomlord1122/todoey/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

var pg *testutil.Postgres

func TestMain(m *testing.M) {
	flag.Parse()
	if !testing.Short() {
		var err error
		pg, err = testutil.StartPostgres(context.Background())
		if err != nil {
			log.Printf("postgres unavailable, skipping integration tests: %v", err)
			pg = nil
		}
	}

	code := m.Run()

	if pg != nil {
		if err := pg.Terminate(); err != nil {
			log.Printf("could not teardown postgres container: %v", err)
		}
	}
	os.Exit(code)
}

func mustNew(t *testing.T) Service {
	t.Helper()
	if pg == nil {
		t.Skip("postgres container not running")
	}
	srv, err := New(pg.Config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })
	return srv
}

func TestNew(t *testing.T) {
	srv := mustNew(t)
	assert.NotNil(t, srv.GetDB())
}

func TestHealth(t *testing.T) {
	srv := mustNew(t)

	stats := srv.Health()

	assert.Equal(t, "up", stats["status"])
	assert.Equal(t, "It's healthy", stats["message"])
	assert.NotContains(t, stats, "error")
}

func TestMigrate(t *testing.T) {
	srv := mustNew(t)

	require.NoError(t, srv.Migrate())
	// Migrating twice is a no-op
	require.NoError(t, srv.Migrate())

	migrator := srv.GetDB().Migrator()
	assert.True(t, migrator.HasTable("sections"))
	assert.True(t, migrator.HasTable("items"))
	assert.True(t, migrator.HasTable(&domain.Section{}))
	assert.True(t, migrator.HasConstraint(&domain.Item{}, "chk_items_priority"))
}

func TestClose(t *testing.T) {
	if pg == nil {
		t.Skip("postgres container not running")
	}
	srv, err := New(pg.Config)
	require.NoError(t, err)

	assert.NoError(t, srv.Close())
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Error, logLevel("error"))
	assert.Equal(t, logger.Info, logLevel("info"))
	assert.Equal(t, logger.Warn, logLevel("warn"))
	assert.Equal(t, logger.Warn, logLevel(""))
}

func TestOpen_Unreachable(t *testing.T) {
	cfg := config.Database{Host: "127.0.0.1", Port: "1", Username: "x", Name: "x", SSLMode: "disable", LogLevel: "silent"}

	_, err := New(cfg)

	assert.Error(t, err)
}
