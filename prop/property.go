package prop

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xlab/treeprint"

	"github.com/hollowpine/shrinkwrap/gen"
)

const defaultNumRuns = 200

// Erase widens a Generator[T] to a Generator[any], so generators of
// different element types can sit side by side in a single slice for
// ForAllLegacy and Property.
func Erase[T any](g gen.Generator[T]) gen.Generator[any] {
	return gen.From(func(r *gen.RNG, sz gen.Size) gen.Shrinkable[any] {
		return gen.MapShrinkable(g.Generate(r, sz), func(v T) any { return v })
	})
}

// Options configures a single forAll-style run. In the zero value,
// NumRuns 0 means the default of 200 runs and an empty Seed draws from
// the wall clock; DefaultOptions returns the same settings.
type Options struct {
	NumRuns    int
	Seed       string
	OnStartup  func()
	OnCleanup  func()
	PostCheck  func() error
	Verbose    bool
	// AlwaysCleanup also runs OnCleanup for the failing sample, before
	// the shrink search starts; without it OnCleanup runs only after
	// passing samples. A failed PostCheck is reported without an extra
	// OnCleanup call either way.
	AlwaysCleanup bool
}

// DefaultOptions returns the spec's documented defaults: 200 runs, a
// fresh seed, no hooks.
func DefaultOptions() Options {
	return Options{NumRuns: defaultNumRuns}
}

// ForAllLegacy runs pred, which receives the full argument list as a
// []any, against numRuns samples drawn from gens (one element per
// generator, in order). This is the canonical entry point every typed
// wrapper (ForAll1..5, ForAllTyped) ultimately calls.
func ForAllLegacy(pred func([]any) error, gens []gen.Generator[any], opts Options) error {
	if opts.NumRuns <= 0 {
		opts.NumRuns = defaultNumRuns
	}
	rng := gen.NewRNG(opts.Seed)
	preconditionBound := opts.NumRuns
	skipped := 0

	for run := 0; run < opts.NumRuns; run++ {
		savedRNG := rng.Clone()
		shrinkables := make([]gen.Shrinkable[any], len(gens))
		args := make([]any, len(gens))
		for i, g := range gens {
			shrinkables[i] = g.Generate(rng, gen.Size{})
			args[i] = shrinkables[i].Value
		}

		if opts.OnStartup != nil {
			opts.OnStartup()
		}

		err := pred(args)
		if errors.Is(err, ErrPrecondition) {
			skipped++
			if skipped > preconditionBound {
				return &TooManyPreconditions{Skipped: skipped, Bound: preconditionBound}
			}
			run-- // a skipped sample does not count toward NumRuns
			continue
		}
		if err == nil {
			if opts.OnCleanup != nil {
				opts.OnCleanup()
			}
			continue
		}

		// Failure: regenerate the same tuple from savedRNG and run the
		// greedy per-slot shrink search.
		if opts.AlwaysCleanup && opts.OnCleanup != nil {
			opts.OnCleanup()
		}
		return shrinkAndReport(savedRNG, gens, pred, run+1, opts, err)
	}

	if opts.PostCheck != nil {
		if err := opts.PostCheck(); err != nil {
			return &PropertyFailure{Seed: opts.Seed, Run: opts.NumRuns, Cause: err}
		}
	}
	return nil
}

// shrinkAndReport regenerates the failing tuple from savedRNG (step 6
// of spec.md §4.6) and walks the greedy per-slot search: within slot n
// it tries every child in order, depth-first, before moving to slot
// n+1 (spec.md §5 ordering guarantee).
func shrinkAndReport(savedRNG *gen.RNG, gens []gen.Generator[any], pred func([]any) error, runNumber int, opts Options, cause error) error {
	replay := savedRNG.Clone()
	shrinkables := make([]gen.Shrinkable[any], len(gens))
	for i, g := range gens {
		shrinkables[i] = g.Generate(replay, gen.Size{})
	}

	var history []ShrinkStep
	causeErr := cause

	for n := range shrinkables {
		cur := shrinkables[n].Shrinks()
		for !cur.IsEmpty() {
			advanced := false
			level := cur
			for !level.IsEmpty() {
				candidate := level.Head()
				trial := make([]any, len(shrinkables))
				for i, s := range shrinkables {
					trial[i] = s.Value
				}
				trial[n] = candidate.Value

				err := pred(trial)
				if errors.Is(err, ErrPrecondition) {
					level = level.Tail()
					continue
				}
				if err != nil {
					shrinkables[n] = candidate
					causeErr = asFailureCause(err)
					history = append(history, ShrinkStep{Index: n, Value: gen.Stringify(candidate.Value)})
					cur = candidate.Shrinks()
					advanced = true
					break
				}
				level = level.Tail()
			}
			if !advanced {
				break
			}
		}
	}

	args := make([]string, len(shrinkables))
	for i, s := range shrinkables {
		args[i] = gen.Stringify(s.Value)
	}

	if opts.Verbose {
		printShrinkTrace(args, history)
	}

	return &PropertyFailure{
		Seed:    opts.Seed,
		Run:     runNumber,
		Args:    args,
		Cause:   causeErr,
		History: history,
	}
}

func asFailureCause(err error) error {
	if err == nil {
		return nil
	}
	return err
}

func printShrinkTrace(args []string, history []ShrinkStep) {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("counterexample: (%v)", args))
	for _, step := range history {
		tree.AddNode(fmt.Sprintf("slot %d -> %s", step.Index, step.Value))
	}
	slog.Default().Info("property shrink trace", "tree", tree.String(), "steps", len(history))
}

// ForAll1 runs a 1-arity predicate.
func ForAll1[A any](pred func(A) error, ga gen.Generator[A], opts Options) error {
	return ForAllLegacy(func(args []any) error {
		return pred(args[0].(A))
	}, []gen.Generator[any]{Erase(ga)}, opts)
}

// ForAll2 runs a 2-arity predicate.
func ForAll2[A, B any](pred func(A, B) error, ga gen.Generator[A], gb gen.Generator[B], opts Options) error {
	return ForAllLegacy(func(args []any) error {
		return pred(args[0].(A), args[1].(B))
	}, []gen.Generator[any]{Erase(ga), Erase(gb)}, opts)
}

// ForAll3 runs a 3-arity predicate.
func ForAll3[A, B, C any](pred func(A, B, C) error, ga gen.Generator[A], gb gen.Generator[B], gc gen.Generator[C], opts Options) error {
	return ForAllLegacy(func(args []any) error {
		return pred(args[0].(A), args[1].(B), args[2].(C))
	}, []gen.Generator[any]{Erase(ga), Erase(gb), Erase(gc)}, opts)
}

// ForAll4 runs a 4-arity predicate.
func ForAll4[A, B, C, D any](pred func(A, B, C, D) error, ga gen.Generator[A], gb gen.Generator[B], gc gen.Generator[C], gd gen.Generator[D], opts Options) error {
	return ForAllLegacy(func(args []any) error {
		return pred(args[0].(A), args[1].(B), args[2].(C), args[3].(D))
	}, []gen.Generator[any]{Erase(ga), Erase(gb), Erase(gc), Erase(gd)}, opts)
}

// ForAll5 runs a 5-arity predicate.
func ForAll5[A, B, C, D, E any](pred func(A, B, C, D, E) error, ga gen.Generator[A], gb gen.Generator[B], gc gen.Generator[C], gd gen.Generator[D], ge gen.Generator[E], opts Options) error {
	return ForAllLegacy(func(args []any) error {
		return pred(args[0].(A), args[1].(B), args[2].(C), args[3].(D), args[4].(E))
	}, []gen.Generator[any]{Erase(ga), Erase(gb), Erase(gc), Erase(gd), Erase(ge)}, opts)
}

// TypeToken names the runtime type a ForAllTyped argument slot must
// have, without resorting to language-level type introspection beyond
// a simple predicate (spec.md §9: "not as language type introspection").
type TypeToken struct {
	Name  string
	Check func(any) bool
}

// IntToken, StringToken, BoolToken, Float64Token are the common tokens
// used to build a ForAllTyped call.
var (
	IntToken     = TypeToken{Name: "int", Check: func(v any) bool { _, ok := v.(int); return ok }}
	StringToken  = TypeToken{Name: "string", Check: func(v any) bool { _, ok := v.(string); return ok }}
	BoolToken    = TypeToken{Name: "bool", Check: func(v any) bool { _, ok := v.(bool); return ok }}
	Float64Token = TypeToken{Name: "float64", Check: func(v any) bool { _, ok := v.(float64); return ok }}
)

// ForAllTyped enforces argument count and per-argument runtime type
// checks before invoking pred. An ArityError is returned ahead of any
// sample being drawn; the type checks run on each drawn sample, and a
// mismatch is reported as a PropertyFailure whose Cause is an
// ArgumentError.
func ForAllTyped(pred func([]any) error, tokens []TypeToken, gens []gen.Generator[any], opts Options) error {
	if len(tokens) != len(gens) {
		return &ArityError{Want: len(tokens), Got: len(gens)}
	}
	wrapped := func(args []any) error {
		for i, tok := range tokens {
			if !tok.Check(args[i]) {
				return &ArgumentError{Index: i, Expected: tok.Name, Got: fmt.Sprintf("%T", args[i])}
			}
		}
		return pred(args)
	}
	return ForAllLegacy(wrapped, gens, opts)
}

// Property is the fluent builder surface: Property(pred).SetNumRuns(n)....ForAllLegacy(gens).
type Property struct {
	pred func([]any) error
	opts Options
}

// NewProperty wraps pred for fluent configuration.
func NewProperty(pred func([]any) error) *Property {
	return &Property{pred: pred, opts: DefaultOptions()}
}

// SetNumRuns overrides the number of samples evaluated; samples skipped
// by a precondition are not counted.
func (p *Property) SetNumRuns(n int) *Property { p.opts.NumRuns = n; return p }

// SetSeed overrides the RNG seed.
func (p *Property) SetSeed(seed string) *Property { p.opts.Seed = seed; return p }

// SetOnStartup sets the per-sample startup hook.
func (p *Property) SetOnStartup(fn func()) *Property { p.opts.OnStartup = fn; return p }

// SetOnCleanup sets the per-sample cleanup hook.
func (p *Property) SetOnCleanup(fn func()) *Property { p.opts.OnCleanup = fn; return p }

// SetPostCheck sets the hook run once after all samples succeed.
func (p *Property) SetPostCheck(fn func() error) *Property { p.opts.PostCheck = fn; return p }

// SetVerbose toggles shrink-trace printing on failure.
func (p *Property) SetVerbose(v bool) *Property { p.opts.Verbose = v; return p }

// ForAllLegacy runs the configured property against gens.
func (p *Property) ForAllLegacy(gens []gen.Generator[any]) error {
	return ForAllLegacy(p.pred, gens, p.opts)
}

// Example runs the property exactly once against a fixed input,
// bypassing random generation entirely.
func (p *Property) Example(values []any) error {
	return p.pred(values)
}

// Matrix runs the property over the Cartesian product of per-argument
// explicit value lists, with startup/cleanup invoked per combination.
// Every combination raising ErrPrecondition counts toward a single
// "all preconditions" failure if none ever succeeds.
func (p *Property) Matrix(columns [][]any) error {
	if len(columns) == 0 {
		return nil
	}
	total := 1
	for _, col := range columns {
		total *= len(col)
	}
	preconditions := 0
	ran := 0

	var combos [][]any
	combos = append(combos, nil)
	for _, col := range columns {
		var next [][]any
		for _, prefix := range combos {
			for _, v := range col {
				row := append(append([]any(nil), prefix...), v)
				next = append(next, row)
			}
		}
		combos = next
	}

	for _, row := range combos {
		ran++
		if p.opts.OnStartup != nil {
			p.opts.OnStartup()
		}
		err := p.pred(row)
		if errors.Is(err, ErrPrecondition) {
			preconditions++
			continue
		}
		if err != nil {
			args := make([]string, len(row))
			for i, v := range row {
				args[i] = gen.Stringify(v)
			}
			return &PropertyFailure{Run: ran, Args: args, Cause: err}
		}
		if p.opts.OnCleanup != nil {
			p.opts.OnCleanup()
		}
	}

	if preconditions == total {
		return &TooManyPreconditions{Skipped: preconditions, Bound: total}
	}
	return nil
}
