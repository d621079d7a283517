package application

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gridtictactoe/internal/apperror"
	"github.com/rocketscienceinc/gridtictactoe/internal/config"
	"github.com/rocketscienceinc/gridtictactoe/internal/entity"
	"github.com/rocketscienceinc/gridtictactoe/testing/suite"
)

func TestNewGameRepository(t *testing.T) {
	t.Run("Memory storage", func(t *testing.T) {
		ctx := context.Background()

		repo, closeRepo, err := newGameRepository(ctx, &config.Config{Storage: config.StorageMemory})

		require.NoError(t, err)
		require.NoError(t, repo.CreateOrUpdate(ctx, &entity.Game{ID: "s1"}))
		assert.NoError(t, closeRepo())
	})

	t.Run("Memory storage expires sessions", func(t *testing.T) {
		ctx := context.Background()

		// Given: memory storage with a short session ttl
		conf := &config.Config{Storage: config.StorageMemory, SessionTTL: 10 * time.Millisecond}

		// When: the repository is built
		repo, _, err := newGameRepository(ctx, conf)
		require.NoError(t, err)

		// Then: it can run its own sweeper and games vanish after the ttl
		_, ok := repo.(expiringStore)
		assert.True(t, ok)

		require.NoError(t, repo.CreateOrUpdate(ctx, &entity.Game{ID: "s1"}))
		assert.Eventually(t, func() bool {
			_, getErr := repo.GetByID(ctx, "s1")
			return errors.Is(getErr, apperror.ErrGameNotFound)
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("Unknown storage", func(t *testing.T) {
		_, _, err := newGameRepository(context.Background(), &config.Config{Storage: "etcd"})

		require.ErrorIs(t, err, apperror.ErrUnknownStorage)
	})

	t.Run("Redis storage", func(t *testing.T) {
		ctx, st := suite.New(t)

		conf := &config.Config{Storage: config.StorageRedis}
		conf.Redis.Host, conf.Redis.Port = splitAddr(t, st.Addr)

		repo, closeRepo, err := newGameRepository(ctx, conf)
		require.NoError(t, err)

		require.NoError(t, repo.CreateOrUpdate(ctx, &entity.Game{ID: "s1"}))
		_, err = repo.GetByID(ctx, "s1")
		require.NoError(t, err)
		assert.NoError(t, closeRepo())
	})
}

func splitAddr(t *testing.T, addr string) (string, string) {
	t.Helper()

	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	return host, port
}
