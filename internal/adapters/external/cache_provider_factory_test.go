package external

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherpush.app/internal/mocks"
	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

func TestNewCacheProvider_Memory(t *testing.T) {
	provider, err := NewCacheProvider(ports.CacheConfig{Type: "memory"}, mocks.NoopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCacheProviderAdapter{}, provider)
}

func TestNewCacheProvider_DefaultsToMemory(t *testing.T) {
	provider, err := NewCacheProvider(ports.CacheConfig{}, mocks.NoopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryCacheProviderAdapter{}, provider)
}

func TestNewCacheProvider_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	provider, err := NewCacheProvider(ports.CacheConfig{
		Type:  "redis",
		Redis: ports.RedisConfig{Addr: mr.Addr(), DialTimeout: 5},
	}, mocks.NoopLogger{})
	require.NoError(t, err)
	assert.IsType(t, &RedisCacheProviderAdapter{}, provider)
}

func TestNewCacheProvider_UnknownType(t *testing.T) {
	_, err := NewCacheProvider(ports.CacheConfig{Type: "memcached"}, mocks.NoopLogger{})
	assert.True(t, errors.IsConfigurationError(err))
}
