package tcpostgres

import (
	"context"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type (
	// PostgresContainer runs the database of the repository tests
	PostgresContainer struct {
		testcontainers.Container
	}
	containerConfig struct {
		image    string
		name     string
		ports    []string
		env      map[string]string
		waitFor  []wait.Strategy
		pgParams []string
	}
	PostgresContainerOption func(cfg *containerConfig)
)

func WithImage(image string) PostgresContainerOption {
	return func(cfg *containerConfig) {
		cfg.image = image
	}
}

// WithWaitStrategy sets what must happen before the container counts as started.
// All strategies have to succeed within a minute.
func WithWaitStrategy(strategies ...wait.Strategy) PostgresContainerOption {
	return func(cfg *containerConfig) {
		cfg.waitFor = append(cfg.waitFor, strategies...)
	}
}

func WithPort(port string) PostgresContainerOption {
	return func(cfg *containerConfig) {
		cfg.ports = append(cfg.ports, port)
	}
}

// WithName reuses a running container with this name
func WithName(containerName string) PostgresContainerOption {
	return func(cfg *containerConfig) {
		cfg.name = containerName
	}
}

func WithInitialDatabase(user, password, dbName string) PostgresContainerOption {
	return func(cfg *containerConfig) {
		cfg.env["POSTGRES_USER"] = user
		cfg.env["POSTGRES_PASSWORD"] = password
		cfg.env["POSTGRES_DB"] = dbName
	}
}

// WithServerParam passes "-c key=value" to the postgres server
func WithServerParam(key, value string) PostgresContainerOption {
	return func(cfg *containerConfig) {
		cfg.pgParams = append(cfg.pgParams, "-c", key+"="+value)
	}
}

func (cfg *containerConfig) request() testcontainers.ContainerRequest {
	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		Name:         cfg.name,
		Env:          cfg.env,
		ExposedPorts: cfg.ports,
		Cmd:          append([]string{"postgres"}, cfg.pgParams...),
	}
	if len(cfg.waitFor) > 0 {
		req.WaitingFor = wait.ForAll(cfg.waitFor...).WithDeadline(time.Minute)
	}
	return req
}

// SetupPostgres starts a postgres container. Durability settings are off,
// test data does not need to survive a crash.
func SetupPostgres(ctx context.Context, opts ...PostgresContainerOption) (
	*PostgresContainer, error,
) {
	cfg := &containerConfig{
		image:    "postgres:16-alpine",
		env:      map[string]string{},
		pgParams: []string{"-c", "fsync=off", "-c", "full_page_writes=off"},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	container, err := testcontainers.GenericContainer(ctx,
		testcontainers.GenericContainerRequest{
			ContainerRequest: cfg.request(),
			Started:          true,
			Reuse:            cfg.name != "",
		})
	if err != nil {
		return nil, err
	}
	return &PostgresContainer{Container: container}, nil
}
