package envconfig

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv("BORN_DEBUG", "")
	t.Setenv("BORN_NUM_THREADS", "")
	t.Setenv("BORN_SEED", "")
	t.Setenv("BORN_MAX_ALLOC", "")
	LoadConfig()

	assert.False(t, Debug)
	assert.Equal(t, runtime.NumCPU(), NumThreads)
	assert.Equal(t, int64(0), Seed)
	assert.Equal(t, int64(0), MaxAllocBytes)
}

func TestLoadConfig(t *testing.T) {
	// Registered first so it runs after the environment is restored.
	t.Cleanup(LoadConfig)
	t.Setenv("BORN_DEBUG", "1")
	t.Setenv("BORN_NUM_THREADS", "3")
	t.Setenv("BORN_SEED", "'42'")
	t.Setenv("BORN_MAX_ALLOC", "1024")
	LoadConfig()

	assert.True(t, Debug)
	assert.Equal(t, 3, NumThreads)
	assert.Equal(t, int64(42), Seed)
	assert.Equal(t, int64(1024), MaxAllocBytes)
	assert.Equal(t, "42", Values()["BORN_SEED"])
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Cleanup(LoadConfig)
	t.Setenv("BORN_DEBUG", "yes please")
	t.Setenv("BORN_NUM_THREADS", "-2")
	t.Setenv("BORN_SEED", "abc")
	t.Setenv("BORN_MAX_ALLOC", "-1")
	LoadConfig()

	// Unparseable debug values still turn debugging on.
	assert.True(t, Debug)
	assert.Equal(t, runtime.NumCPU(), NumThreads)
	assert.Equal(t, int64(0), Seed)
	assert.Equal(t, int64(0), MaxAllocBytes)
}
