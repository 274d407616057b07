package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/bloodconnect/internal/config"
)

func TestRedisPingWithoutClient(t *testing.T) {
	var r *Redis
	assert.ErrorIs(t, r.Ping(context.Background()), ErrRedisNotConfigured)
	assert.NotPanics(t, r.Close)
}

func TestNewRedisToleratesUnreachableServer(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewRedis(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, zap.New(core))
	defer r.Close()

	require.NotNil(t, r.Client)
	assert.Error(t, r.Ping(context.Background()))
	require.Equal(t, 1, logs.FilterMessage("redis unreachable, token revocation degraded").Len())
}
