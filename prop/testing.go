package prop

import (
	"flag"
	"fmt"
	"sync"
	"testing"

	"github.com/hollowpine/shrinkwrap/gen"
)

// Config holds *testing.T-oriented configuration, mirroring the
// command-line flags below so `go test -shrinkwrap.seed=...` can
// replay a specific failing run.
type Config struct {
	// Seed is the RNG seed string. Empty draws from the wall clock.
	Seed string

	// Examples is the number of samples to generate and run.
	Examples int

	// MaxShrink bounds how many shrink steps the search may take
	// before giving up and reporting the best counterexample found.
	MaxShrink int

	// StopOnFirstFailure halts the whole ForAll call at the first
	// failing example instead of continuing to the next one.
	StopOnFirstFailure bool

	// Parallelism is the number of worker goroutines used to run
	// examples. Values <= 1 run sequentially.
	Parallelism int
}

var (
	flagSeed        = flag.String("shrinkwrap.seed", "", "RNG seed string for test case generation")
	flagExamples    = flag.Int("shrinkwrap.examples", 100, "Number of test cases to generate")
	flagMaxShrink   = flag.Int("shrinkwrap.maxshrink", 400, "Maximum number of shrinking steps")
	flagParallelism = flag.Int("shrinkwrap.parallel", 1, "Number of parallel workers")
)

// Default returns a Config built from the command-line flags above.
func Default() Config {
	return Config{
		Seed:               *flagSeed,
		Examples:           *flagExamples,
		MaxShrink:          *flagMaxShrink,
		StopOnFirstFailure: true,
		Parallelism:        *flagParallelism,
	}
}

// ForAll wires a single generator into *testing.T's subtest
// machinery: it draws cfg.Examples samples, running body as a subtest
// per sample, and on failure performs the same greedy per-slot shrink
// search as ForAllLegacy, reporting each shrink attempt as its own
// subtest so `go test -v` shows the descent. cfg.Parallelism > 1
// distributes examples across worker goroutines sharing one RNG under
// a mutex, mirroring the teacher's runSequential/runParallel split.
func ForAll[T any](t *testing.T, cfg Config, g gen.Generator[T]) func(func(*testing.T, T)) {
	return func(body func(*testing.T, T)) {
		rng := gen.NewRNG(cfg.Seed)
		t.Logf("[shrinkwrap] seed=%q examples=%d maxshrink=%d parallelism=%d",
			cfg.Seed, cfg.Examples, cfg.MaxShrink, cfg.Parallelism)

		if cfg.Parallelism <= 1 {
			runSequentialExamples(t, cfg, g, body, rng)
		} else {
			runParallelExamples(t, cfg, g, body, rng)
		}
	}
}

func runSequentialExamples[T any](t *testing.T, cfg Config, g gen.Generator[T], body func(*testing.T, T), rng *gen.RNG) {
	for i := 0; i < cfg.Examples; i++ {
		s := g.Generate(rng, gen.Size{})
		name := fmt.Sprintf("ex#%d", i+1)

		passed := t.Run(name, func(st *testing.T) { body(st, s.Value) })
		if passed {
			continue
		}

		min, steps := shrinkExample(t, cfg, name, s, body)
		t.Errorf("[shrinkwrap] property failed; seed=%q; example=%d; shrunk_steps=%d\n"+
			"counterexample (min): %s\nreplay: go test -run %q -shrinkwrap.seed=%q",
			cfg.Seed, i+1, steps, gen.Stringify(min), t.Name(), cfg.Seed)

		if cfg.StopOnFirstFailure {
			return
		}
	}
}

// runParallelExamples distributes cfg.Examples indices across a fixed
// pool of worker goroutines; each worker draws its own sample under a
// shared RNG mutex, so the sequence of draws stays deterministic for a
// given seed regardless of goroutine scheduling.
func runParallelExamples[T any](t *testing.T, cfg Config, g gen.Generator[T], body func(*testing.T, T), rng *gen.RNG) {
	indices := make(chan int, cfg.Examples)
	for i := 0; i < cfg.Examples; i++ {
		indices <- i
	}
	close(indices)

	type failure struct {
		index int
		min   any
		steps int
	}
	failures := make(chan failure, cfg.Examples)

	var rngMu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < cfg.Parallelism; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				rngMu.Lock()
				s := g.Generate(rng, gen.Size{})
				rngMu.Unlock()

				name := fmt.Sprintf("ex#%d", i+1)
				passed := t.Run(name, func(st *testing.T) { body(st, s.Value) })
				if passed {
					continue
				}

				min, steps := shrinkExample(t, cfg, name, s, body)
				failures <- failure{index: i, min: min, steps: steps}
				if cfg.StopOnFirstFailure {
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(failures)
	}()

	for f := range failures {
		t.Errorf("[shrinkwrap] property failed; seed=%q; example=%d; shrunk_steps=%d\n"+
			"counterexample (min): %s\nreplay: go test -run %q -shrinkwrap.seed=%q -shrinkwrap.parallel=1",
			cfg.Seed, f.index+1, f.steps, gen.Stringify(f.min), t.Name(), cfg.Seed)
		if cfg.StopOnFirstFailure {
			return
		}
	}
}

// shrinkExample runs the greedy per-slot shrink search for a single
// failing sample, reporting each attempt as its own subtest.
func shrinkExample[T any](t *testing.T, cfg Config, name string, s gen.Shrinkable[T], body func(*testing.T, T)) (T, int) {
	min := s.Value
	steps := 0
	cur := s.Shrinks()
	for steps < cfg.MaxShrink && !cur.IsEmpty() {
		advanced := false
		level := cur
		for !level.IsEmpty() {
			candidate := level.Head()
			steps++
			sname := fmt.Sprintf("%s/shrink#%d", name, steps)
			stillFails := !t.Run(sname, func(st *testing.T) { body(st, candidate.Value) })
			if stillFails {
				min = candidate.Value
				cur = candidate.Shrinks()
				advanced = true
				break
			}
			level = level.Tail()
			if steps >= cfg.MaxShrink {
				break
			}
		}
		if !advanced {
			break
		}
	}
	return min, steps
}
