package application

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionRepository(t *testing.T) {
	ctx := context.Background()
	state := entity.GameState{CurrentPlayer: entity.PlayerX, Status: entity.StatusInProgress}

	t.Run("Memory driver", func(t *testing.T) {
		conf := &config.Config{Storage: config.Storage{Driver: config.StorageMemory, SessionTTL: time.Hour}}

		repo, closeRepo, err := newSessionRepository(ctx, conf)
		require.NoError(t, err)
		defer func() { require.NoError(t, closeRepo()) }()

		require.NoError(t, repo.Save(ctx, "s1", state))
	})

	t.Run("Redis driver", func(t *testing.T) {
		server := miniredis.RunT(t)
		conf := &config.Config{
			Storage: config.Storage{Driver: config.StorageRedis, SessionTTL: time.Hour},
			Redis:   config.Redis{Host: server.Host(), Port: server.Port()},
		}

		repo, closeRepo, err := newSessionRepository(ctx, conf)
		require.NoError(t, err)
		defer func() { require.NoError(t, closeRepo()) }()

		require.NoError(t, repo.Save(ctx, "s1", state))
		assert.True(t, server.Exists("session:s1"))
	})

	t.Run("Redis driver without an address", func(t *testing.T) {
		conf := &config.Config{Storage: config.Storage{Driver: config.StorageRedis}}

		_, _, err := newSessionRepository(ctx, conf)

		require.ErrorIs(t, err, ErrAddrNotFound)
	})

	t.Run("Unreachable redis", func(t *testing.T) {
		server := miniredis.RunT(t)
		host, port := server.Host(), server.Port()
		server.Close()

		conf := &config.Config{
			Storage: config.Storage{Driver: config.StorageRedis},
			Redis:   config.Redis{Host: host, Port: port},
		}

		_, _, err := newSessionRepository(ctx, conf)

		require.Error(t, err)
	})
}
