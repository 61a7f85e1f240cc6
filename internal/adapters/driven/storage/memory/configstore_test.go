package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_Seed(t *testing.T) {
	seed := map[string]any{"store.driver": "mongo", "gateway.burst": 5}
	store := NewConfigStore(seed)

	assert.Equal(t, "mongo", store.GetString("store.driver"))
	assert.Equal(t, 5, store.GetInt("gateway.burst"))

	require.NoError(t, store.Set("store.driver", "memory"))
	assert.Equal(t, "mongo", seed["store.driver"], "seed map is copied")
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("store.driver", "memory"))
	require.NoError(t, store.Set("gateway.burst", int64(7)))
	require.NoError(t, store.Set("gateway.rate_per_second", 1.5))
	require.NoError(t, store.Set("log.verbose", true))

	assert.Equal(t, "memory", store.GetString("store.driver"))
	assert.Equal(t, 7, store.GetInt("gateway.burst"))
	assert.InDelta(t, 1.5, store.GetFloat("gateway.rate_per_second"), 0.0001)
	assert.InDelta(t, 7.0, store.GetFloat("gateway.burst"), 0.0001)
	assert.Equal(t, 1, store.GetInt("gateway.rate_per_second"))
	assert.True(t, store.GetBool("log.verbose"))
}

func TestConfigStore_StringCoercion(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"gateway.burst":           " 12 ",
		"gateway.rate_per_second": "2.5",
		"log.verbose":             "true",
		"store.timeout":           "abc",
	})

	assert.Equal(t, 12, store.GetInt("gateway.burst"))
	assert.InDelta(t, 2.5, store.GetFloat("gateway.rate_per_second"), 0.0001)
	assert.True(t, store.GetBool("log.verbose"))
	assert.Zero(t, store.GetInt("store.timeout"))
	assert.False(t, store.GetBool("store.timeout"))
}

func TestConfigStore_WrongTypes(t *testing.T) {
	store := NewConfigStore(map[string]any{"k": []string{"a"}})

	assert.Empty(t, store.GetString("k"))
	assert.Zero(t, store.GetInt("k"))
	assert.Zero(t, store.GetFloat("k"))
	assert.False(t, store.GetBool("k"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_SaveAndLoad(t *testing.T) {
	store := NewConfigStore(map[string]any{"store.driver": "sqlite"})

	require.NoError(t, store.Set("store.driver", "mongo"))
	require.NoError(t, store.Load())
	assert.Equal(t, "sqlite", store.GetString("store.driver"), "unsaved change rolled back")

	require.NoError(t, store.Set("store.driver", "memory"))
	require.NoError(t, store.Save())
	require.NoError(t, store.Set("store.driver", "mongo"))
	require.NoError(t, store.Load())
	assert.Equal(t, "memory", store.GetString("store.driver"))

	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("gateway.burst", n)
			_ = store.GetInt("gateway.burst")
			if n%10 == 0 {
				_ = store.Save()
			}
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("gateway.burst")
	assert.True(t, ok)
}
