package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForRange(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	seen := make([]int32, 1000)
	var chunks atomic.Int32
	ForRange(len(seen), cfg, func(start, end int) {
		chunks.Add(1)
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	for i, v := range seen {
		if v != 1 {
			t.Fatalf("index %d visited %d times", i, v)
		}
	}
	assert.Equal(t, int32(4), chunks.Load())
}

func TestForRange_Sequential(t *testing.T) {
	calls := 0
	ForRange(100, Sequential(), func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 100, end)
	})
	assert.Equal(t, 1, calls)
}

func TestForRange_Empty(t *testing.T) {
	ForRange(0, DefaultConfig(), func(_, _ int) {
		t.Fatal("f called for empty range")
	})
}

func TestFor_SmallChunk(t *testing.T) {
	// Small work units run on the calling goroutine in one chunk.
	cfg := Config{Enabled: true, NumWorkers: 8, MinChunkSize: 64}

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, cfg, func(_ int) {
		atomic.AddInt64(&counter, 1)
	})

	assert.Equal(t, int64(n), counter)
}

func TestForBatch(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 3, MinChunkSize: 2}

	batch, channels := 4, 8
	results := make([][]bool, batch)
	for b := range results {
		results[b] = make([]bool, channels)
	}

	ForBatch(batch, channels, cfg, func(b, c int) {
		results[b][c] = true
	})

	for b := 0; b < batch; b++ {
		for c := 0; c < channels; c++ {
			if !results[b][c] {
				t.Errorf("Missing result at [%d][%d]", b, c)
			}
		}
	}
}

func BenchmarkForRange(b *testing.B) {
	n := 1 << 20
	data := make([]float32, n)

	b.Run("parallel", func(b *testing.B) {
		cfg := DefaultConfig()
		for i := 0; i < b.N; i++ {
			ForRange(n, cfg, func(start, end int) {
				for j := start; j < end; j++ {
					data[j] += 1
				}
			})
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForRange(n, Sequential(), func(start, end int) {
				for j := start; j < end; j++ {
					data[j] += 1
				}
			})
		}
	})
}
