// AngelaMos | 2026
// redis_test.go

package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitsyy/gym-backend/internal/config"
)

func TestRedisOptions(t *testing.T) {
	opts, err := redisOptions(config.RedisConfig{
		URL:          "redis://localhost:6379/2",
		PoolSize:     20,
		MinIdleConns: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
	assert.Equal(t, 4, opts.MinIdleConns)
	assert.Equal(t, redisClientName, opts.ClientName)
	assert.Equal(t, redisPoolTimeout, opts.PoolTimeout)

	opts, err = redisOptions(config.RedisConfig{URL: "redis://localhost:6379/0"})
	require.NoError(t, err)
	assert.Zero(t, opts.MinIdleConns)

	_, err = redisOptions(config.RedisConfig{URL: "http://localhost"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse redis url")
}

func TestNewRedisUnreachable(t *testing.T) {
	_, err := NewRedis(context.Background(), config.RedisConfig{
		URL: "redis://127.0.0.1:1/0",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
