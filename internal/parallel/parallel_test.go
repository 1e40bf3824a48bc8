package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinChunkSize = 16

	var counter int64
	n := 1000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForRange_CoversEveryIndexOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 10}
	n := 1003
	hits := make([]int32, n)

	var mu sync.Mutex
	var chunks int
	ForRange(n, func(start, end int) {
		mu.Lock()
		chunks++
		mu.Unlock()
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	}, cfg)

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, h)
		}
	}
	if chunks < 2 {
		t.Errorf("Expected work to be split, got %d chunk(s)", chunks)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestForRange_SequentialIsOneChunk(t *testing.T) {
	var calls int
	ForRange(50000, func(start, end int) {
		calls++
		if start != 0 || end != 50000 {
			t.Errorf("chunk = [%d, %d), want [0, 50000)", start, end)
		}
	}, Sequential())

	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Small work units fall back to sequential.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForRange_Empty(_ *testing.T) {
	ForRange(0, func(_, _ int) {
		panic("must not be called for n == 0")
	}, DefaultConfig())
}

func BenchmarkForRange(b *testing.B) {
	cfg := DefaultConfig()
	data := make([]float64, 1<<20)

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForRange(len(data), func(start, end int) {
				for j := start; j < end; j++ {
					data[j] += 1
				}
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForRange(len(data), func(start, end int) {
				for j := start; j < end; j++ {
					data[j] += 1
				}
			}, Sequential())
		}
	})
}
