package prop

import (
	"sync/atomic"
	"testing"

	"github.com/hollowpine/shrinkwrap/gen"
)

func TestDefaultConfigUsesFlagDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Examples <= 0 {
		t.Fatalf("Default().Examples = %d, want > 0", cfg.Examples)
	}
	if cfg.MaxShrink <= 0 {
		t.Fatalf("Default().MaxShrink = %d, want > 0", cfg.MaxShrink)
	}
	if !cfg.StopOnFirstFailure {
		t.Fatal("Default().StopOnFirstFailure should be true")
	}
}

func TestForAllRunsEverySampleOnSuccess(t *testing.T) {
	cfg := Config{Seed: "testing-ok", Examples: 10, MaxShrink: 50, StopOnFirstFailure: true}
	count := 0
	ForAll(t, cfg, gen.IntRange(0, 100))(func(st *testing.T, n int) {
		count++
		if n < 0 || n > 100 {
			st.Fatalf("out of range: %d", n)
		}
	})
	if count != cfg.Examples {
		t.Fatalf("ran %d examples, want %d", count, cfg.Examples)
	}
}

func TestForAllParallelRunsEverySampleOnSuccess(t *testing.T) {
	cfg := Config{Seed: "testing-parallel", Examples: 12, MaxShrink: 50, StopOnFirstFailure: true, Parallelism: 4}
	var ran int32
	ForAll(t, cfg, gen.IntRange(0, 100))(func(st *testing.T, n int) {
		atomic.AddInt32(&ran, 1)
		if n < 0 || n > 100 {
			st.Fatalf("out of range: %d", n)
		}
	})
	if int(ran) != cfg.Examples {
		t.Fatalf("ran %d examples, want %d", ran, cfg.Examples)
	}
}
