package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Tomlord1122/todoey/internal/config"
)

const (
	testDBName     = "todoey"
	testDBUser     = "todoey"
	testDBPassword = "todoey"
)

// Postgres is a throwaway database container for integration tests.
type Postgres struct {
	Config    config.Database
	container *postgres.PostgresContainer
}

// StartPostgres runs a Postgres container and returns its connection
// settings. It fails when Docker is not reachable; callers decide whether
// that skips or aborts the suite.
func StartPostgres(ctx context.Context) (pg *Postgres, err error) {
	// Docker host discovery can panic on machines without Docker
	defer func() {
		if r := recover(); r != nil {
			pg, err = nil, fmt.Errorf("start postgres container: %v", r)
		}
	}()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = testcontainers.TerminateContainer(container)
		return nil, fmt.Errorf("container port: %w", err)
	}

	return &Postgres{
		Config: config.Database{
			Host:         host,
			Port:         port.Port(),
			Username:     testDBUser,
			Password:     testDBPassword,
			Name:         testDBName,
			SSLMode:      "disable",
			LogLevel:     "silent",
			MaxOpenConns: 10,
			MaxIdleConns: 2,
		},
		container: container,
	}, nil
}

// Terminate stops and removes the container.
func (p *Postgres) Terminate() error {
	return testcontainers.TerminateContainer(p.container)
}
