package suite

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"

	// DockerEnv enables tests that start a real redis container.
	DockerEnv = "TICTACTOE_DOCKER_TESTS"
)

type Suite struct {
	*testing.T
	Logger *zap.Logger

	Storage *redis.Client

	// Server is the in-process redis; nil for docker-backed suites.
	Server *miniredis.Miniredis
}

// New starts an in-process redis and returns a client connected to it.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: server.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return ctx, &Suite{
		T:       t,
		Logger:  zaptest.NewLogger(t),
		Storage: client,
		Server:  server,
	}
}

// NewDocker runs redis in a container. It is skipped unless DockerEnv is set.
func NewDocker(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if os.Getenv(DockerEnv) == "" {
		t.Skipf("set %s=1 to run docker-backed tests", DockerEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
		Env:        []string{},
	}, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// never returns error
	_ = resource.Expire(expireDuration) // Tell docker to hard kill the container in 120 seconds

	redisHost := resource.GetHostPort(redisPort)

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	pool.MaxWait = maxWaitDuration

	redisClient, err := connectRedis(ctx, redisHost, pool.Retry, func() error {
		return pool.Purge(resource)
	})
	if err != nil {
		t.Fatal(err)
	}

	if err = redisClient.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	t.Cleanup(func() {
		t.Helper()

		_ = redisClient.Close()

		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Fatalf("could not purge resource: %v", purgeErr)
		}
	})

	return ctx, &Suite{
		T:       t,
		Logger:  zaptest.NewLogger(t),
		Storage: redisClient,
	}
}

// connectRedis - pings addr until retry gives up. The container is purged when it never answers.
func connectRedis(
	ctx context.Context, addr string, retry func(op func() error) error, purge func() error,
) (*redis.Client, error) {
	var client *redis.Client
	err := retry(func() error {
		client = redis.NewClient(&redis.Options{
			Addr: addr,
		})
		if pingErr := client.Ping(ctx).Err(); pingErr != nil {
			_ = client.Close()
			return pingErr
		}
		return nil
	})
	if err == nil {
		return client, nil
	}

	if purgeErr := purge(); purgeErr != nil {
		return nil, fmt.Errorf("could not purge resource: %w", purgeErr)
	}

	return nil, fmt.Errorf("could not connect to redis: %w", err)
}
