package suite

import (
	"context"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	containerLifetime = 120 // seconds
	startupTimeout    = 120 * time.Second
)

var redisContainer = dockertest.RunOptions{
	Repository: "redis",
	Tag:        "alpine",
}

const redisContainerPort = "6379/tcp"

// Suite is a Redis server running in a throwaway container.
type Suite struct {
	// Addr is the host:port the server listens on.
	Addr    string
	Storage *redis.Client
}

// New starts an empty Redis for t and removes it when t ends. The test is
// skipped in -short mode.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("redis container tests are skipped in -short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	t.Cleanup(cancel)

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}
	pool.MaxWait = startupTimeout

	resource := runContainer(t, pool)

	st := &Suite{Addr: resource.GetHostPort(redisContainerPort)}

	connectErr := pool.Retry(func() error {
		st.Storage = redis.NewClient(&redis.Options{Addr: st.Addr})
		return st.Storage.Ping(ctx).Err()
	})
	if connectErr != nil {
		purge(t, pool, resource)
		t.Fatalf("could not connect to redis at %s: %v", st.Addr, connectErr)
	}

	t.Cleanup(func() {
		_ = st.Storage.Close()
		purge(t, pool, resource)
	})

	if err = st.Storage.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush redis: %v", err)
	}

	return ctx, st
}

func runContainer(t *testing.T, pool *dockertest.Pool) *dockertest.Resource {
	t.Helper()

	options := redisContainer
	resource, err := pool.RunWithOptions(&options, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start redis container: %v", err)
	}

	// hard kill if cleanup never runs
	_ = resource.Expire(containerLifetime)

	return resource
}

func purge(t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource) {
	t.Helper()

	if err := pool.Purge(resource); err != nil {
		t.Errorf("could not purge redis container: %v", err)
	}
}
