package pool_test

import (
	"context"
	"testing"

	"github.com/randalmurphal/typedevent/pkg/typedevent/config"
	"github.com/randalmurphal/typedevent/pkg/typedevent/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	reg, err := pool.NewRegistry(pool.DefaultConfig)
	require.NoError(t, err)

	for _, c := range pool.Classes() {
		m := reg.Manager(c)
		require.NotNil(t, m)
		assert.Equal(t, c, m.Class())
		assert.Equal(t, pool.DefaultConfig.For(c).BlockSize, m.BlockSize())
		assert.Equal(t, pool.DefaultConfig.For(c).Capacity, m.Capacity())
	}
	assert.Nil(t, reg.Manager(pool.Class(5)))
}

func TestNewRegistry_InvalidConfig(t *testing.T) {
	cfg := pool.DefaultConfig
	cfg.Large.Capacity = 0

	_, err := pool.NewRegistry(cfg)
	assert.ErrorIs(t, err, pool.ErrInvalidConfig)
}

func TestRegistry_RoutesByClass(t *testing.T) {
	ctx := context.Background()
	reg, err := pool.NewRegistry(pool.Config{
		Small: pool.ClassConfig{BlockSize: 64, Capacity: 1},
		Large: pool.ClassConfig{BlockSize: 256, Capacity: 1},
	})
	require.NoError(t, err)

	small, err := reg.Acquire(ctx, pool.ClassSmall, 32)
	require.NoError(t, err)
	large, err := reg.Acquire(ctx, pool.ClassLarge, 200)
	require.NoError(t, err)

	// Each class is exhausted independently.
	_, err = reg.Acquire(ctx, pool.ClassSmall, 32)
	assert.ErrorIs(t, err, pool.ErrPoolExhausted)
	assert.Equal(t, 2, reg.InUse())

	require.NoError(t, reg.Release(ctx, large))
	require.NoError(t, reg.Release(ctx, small))
	assert.Equal(t, 0, reg.InUse())

	stats := reg.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, pool.ClassSmall, stats[0].Class)
	assert.Equal(t, uint64(1), stats[0].Exhausted)
	assert.Equal(t, pool.ClassLarge, stats[1].Class)
}

func TestRegistry_ReleaseErrors(t *testing.T) {
	ctx := context.Background()
	reg1, err := pool.NewRegistry(pool.DefaultConfig)
	require.NoError(t, err)
	reg2, err := pool.NewRegistry(pool.DefaultConfig)
	require.NoError(t, err)

	assert.ErrorIs(t, reg1.Release(ctx, pool.Block{}), pool.ErrInvalidBlock)

	b, err := reg1.Acquire(ctx, pool.ClassSmall, 8)
	require.NoError(t, err)
	assert.ErrorIs(t, reg2.Release(ctx, b), pool.ErrForeignBlock)
	assert.NoError(t, reg1.Release(ctx, b))
}

func TestRegistry_UnknownClass(t *testing.T) {
	reg, err := pool.NewRegistry(pool.DefaultConfig)
	require.NoError(t, err)

	_, err = reg.Acquire(context.Background(), pool.Class(3), 8)
	assert.ErrorIs(t, err, pool.ErrUnknownClass)
}

func TestConfigFrom(t *testing.T) {
	t.Run("empty document uses defaults", func(t *testing.T) {
		assert.Equal(t, pool.DefaultConfig, pool.ConfigFrom(config.New(nil)))
	})

	t.Run("partial override", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte(`
pools:
  small:
    capacity: 4
  large:
    block_size: 1024
`))
		require.NoError(t, err)

		got := pool.ConfigFrom(cfg)
		assert.Equal(t, pool.DefaultConfig.Small.BlockSize, got.Small.BlockSize)
		assert.Equal(t, 4, got.Small.Capacity)
		assert.Equal(t, 1024, got.Large.BlockSize)
		assert.Equal(t, pool.DefaultConfig.Large.Capacity, got.Large.Capacity)
		assert.NoError(t, got.Validate())
	})
}
