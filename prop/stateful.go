package prop

import (
	"errors"
	"log/slog"

	"github.com/hollowpine/shrinkwrap/gen"
)

// Action is one step of a stateful run: it mutates the
// system-under-test T and, in parallel, the reference model M, and
// reports any divergence as an error. An ErrPrecondition from Apply
// aborts only this step; the runner does not undo any change Apply made
// to the state or the model before returning it.
type Action[T, M any] struct {
	Name  string
	Apply func(t *T, m *M) error
}

// SimpleAction is the no-model degenerate case of Action.
type SimpleAction[T any] = Action[T, struct{}]

// NewSimpleAction builds a SimpleAction from a plain state-mutating
// function.
func NewSimpleAction[T any](name string, apply func(t *T) error) SimpleAction[T] {
	return SimpleAction[T]{Name: name, Apply: func(t *T, _ *struct{}) error { return apply(t) }}
}

// StatefulProperty runs sequences of Actions against a generated
// initial state and its reference model, shrinking a failing trace
// along two axes: the initial state, then the sequence length.
type StatefulProperty[T, M any] struct {
	initGen          gen.Generator[T]
	modelFactory     func(T) M
	actionGenFactory func(T, M) gen.Generator[Action[T, M]]

	opts       Options
	minActions int
	maxActions int
}

const (
	defaultMinActions = 1
	defaultMaxActions = 20
)

// StatefulPropertyOf builds a StatefulProperty from its three
// generating functions (spec.md §4.7).
func StatefulPropertyOf[T, M any](
	initGen gen.Generator[T],
	modelFactory func(T) M,
	actionGenFactory func(T, M) gen.Generator[Action[T, M]],
) *StatefulProperty[T, M] {
	return &StatefulProperty[T, M]{
		initGen:          initGen,
		modelFactory:     modelFactory,
		actionGenFactory: actionGenFactory,
		opts:             DefaultOptions(),
		minActions:       defaultMinActions,
		maxActions:       defaultMaxActions,
	}
}

// SimpleStatefulPropertyOf builds a StatefulProperty with no model,
// for systems-under-test that check their own invariants inside the
// action instead of comparing against a reference model.
func SimpleStatefulPropertyOf[T any](
	initGen gen.Generator[T],
	actionGenFactory func(T) gen.Generator[SimpleAction[T]],
) *StatefulProperty[T, struct{}] {
	return StatefulPropertyOf[T, struct{}](initGen,
		func(T) struct{} { return struct{}{} },
		func(t T, _ struct{}) gen.Generator[Action[T, struct{}]] { return actionGenFactory(t) })
}

// SetSeed overrides the RNG seed.
func (sp *StatefulProperty[T, M]) SetSeed(seed string) *StatefulProperty[T, M] {
	sp.opts.Seed = seed
	return sp
}

// SetNumRuns overrides the number of sequences tried.
func (sp *StatefulProperty[T, M]) SetNumRuns(n int) *StatefulProperty[T, M] {
	sp.opts.NumRuns = n
	return sp
}

// SetMinActions overrides the minimum sequence length.
func (sp *StatefulProperty[T, M]) SetMinActions(n int) *StatefulProperty[T, M] {
	sp.minActions = n
	return sp
}

// SetMaxActions overrides the maximum sequence length.
func (sp *StatefulProperty[T, M]) SetMaxActions(n int) *StatefulProperty[T, M] {
	sp.maxActions = n
	return sp
}

// SetVerbosity toggles per-attempt trace printing during shrinking.
func (sp *StatefulProperty[T, M]) SetVerbosity(v bool) *StatefulProperty[T, M] {
	sp.opts.Verbose = v
	return sp
}

// SetPostCheck sets the hook run after a successful sequence.
func (sp *StatefulProperty[T, M]) SetPostCheck(fn func() error) *StatefulProperty[T, M] {
	sp.opts.PostCheck = fn
	return sp
}

// SetOnStartup sets the per-run startup hook.
func (sp *StatefulProperty[T, M]) SetOnStartup(fn func()) *StatefulProperty[T, M] {
	sp.opts.OnStartup = fn
	return sp
}

// SetOnCleanup sets the per-run cleanup hook.
func (sp *StatefulProperty[T, M]) SetOnCleanup(fn func()) *StatefulProperty[T, M] {
	sp.opts.OnCleanup = fn
	return sp
}

// Run executes the configured stateful property. Named Run rather than
// the source's `go()`: Go reserves `go` as a keyword.
func (sp *StatefulProperty[T, M]) Run() error {
	if sp.opts.NumRuns <= 0 {
		sp.opts.NumRuns = defaultNumRuns
	}
	if sp.maxActions < sp.minActions {
		sp.maxActions = sp.minActions
	}
	rng := gen.NewRNG(sp.opts.Seed)

	for run := 0; run < sp.opts.NumRuns; run++ {
		savedRNG := rng.Clone()
		if sp.opts.OnStartup != nil {
			sp.opts.OnStartup()
		}

		initShrinkable := sp.initGen.Generate(rng, gen.Size{})
		count := sp.minActions
		if sp.maxActions > sp.minActions {
			count = rng.IntRange(sp.minActions, sp.maxActions)
		}

		_, failErr := sp.runSequence(initShrinkable.Value, rng, count)
		if failErr == nil {
			if sp.opts.PostCheck != nil {
				if err := sp.opts.PostCheck(); err != nil {
					return sp.shrinkFailure(savedRNG, err)
				}
			}
			if sp.opts.OnCleanup != nil {
				sp.opts.OnCleanup()
			}
			continue
		}
		return sp.shrinkFailure(savedRNG, failErr)
	}
	return nil
}

// runSequence runs exactly count actions against a fresh model built
// from initial, returning the trace of executed action names and the
// first genuine (non-precondition) error encountered, if any.
func (sp *StatefulProperty[T, M]) runSequence(initial T, rng *gen.RNG, count int) ([]string, error) {
	t := initial
	m := sp.modelFactory(initial)
	var trace []string
	for i := 0; i < count; i++ {
		actionShrinkable := sp.actionGenFactory(t, m).Generate(rng, gen.Size{})
		action := actionShrinkable.Value
		err := action.Apply(&t, &m)
		if errors.Is(err, ErrPrecondition) {
			continue
		}
		trace = append(trace, action.Name)
		if err != nil {
			return trace, err
		}
	}
	return trace, nil
}

// shrinkFailure re-derives a failing sequence from savedRNG and
// shrinks it along the two axes spec.md §4.7 documents in order: first
// the initial state's own shrink children, then the sequence length by
// prefix truncation toward minActions.
func (sp *StatefulProperty[T, M]) shrinkFailure(savedRNG *gen.RNG, cause error) error {
	replay := savedRNG.Clone()
	initShrinkable := sp.initGen.Generate(replay, gen.Size{})
	count := sp.minActions
	if sp.maxActions > sp.minActions {
		count = replay.IntRange(sp.minActions, sp.maxActions)
	}

	bestInit := initShrinkable

	// Axis (a): shrink the initial state.
	cur := bestInit.Shrinks()
	for !cur.IsEmpty() {
		advanced := false
		level := cur
		for !level.IsEmpty() {
			candidate := level.Head()
			_, err := sp.runSequence(candidate.Value, replay.Clone(), count)
			if err != nil {
				bestInit = candidate
				cur = candidate.Shrinks()
				advanced = true
				if sp.opts.Verbose {
					slog.Default().Info("stateful shrink: initial state", "state", gen.Stringify(candidate.Value))
				}
				break
			}
			level = level.Tail()
		}
		if !advanced {
			break
		}
	}

	// Axis (b): shrink sequence length by prefix truncation toward
	// minActions.
	for count > sp.minActions {
		next := sp.minActions + (count-sp.minActions)/2
		if next >= count {
			next = count - 1
		}
		_, err := sp.runSequence(bestInit.Value, replay.Clone(), next)
		if err == nil {
			break
		}
		count = next
		if sp.opts.Verbose {
			slog.Default().Info("stateful shrink: sequence length", "count", count)
		}
	}

	bestTrace, _ := sp.runSequence(bestInit.Value, replay.Clone(), count)

	return &StatefulFailure{
		Seed:         sp.opts.Seed,
		InitialState: gen.Stringify(bestInit.Value),
		Trace:        bestTrace,
		Cause:        cause,
	}
}

// --- Named command/state-machine substrate ---
//
// This lower-level substrate models each step as a named Command drawn
// from a fixed menu, rather than an arbitrary closure: useful when the
// action space is small and enumerable. StatefulProperty above is
// built for the general case; StateMachine is the special case where
// every action is a value of a single command type C.

// StateTransition records one executed command and its effect.
type StateTransition[S, C any] struct {
	Command   C
	FromState S
	ToState   S
	Error     error
}

// StateMachineResult is the outcome of running a CommandSequence
// against a StateMachine.
type StateMachineResult[S, C any] struct {
	FinalState       S
	ExecutionHistory []StateTransition[S, C]
	SkippedCommands  []C
}

// Command is one named transition a StateMachine can perform: it
// generates command values of type C, and Execute applies one such
// value to advance the state. Precondition, if set, gates whether this
// Command may be used for a given (state, value) pair.
type Command[S, C any] struct {
	Name         string
	Generator    gen.Generator[C]
	Execute      func(state S, cmd C) (S, error)
	Precondition func(state S, cmd C) bool
}

// StateMachine is a fixed menu of Commands plus the state they operate
// over.
type StateMachine[S, C any] struct {
	InitialState S
	Commands     []Command[S, C]
}

// CommandSequence is an ordered list of command values to replay
// against a StateMachine.
type CommandSequence[C any] struct {
	Commands []C
}

// commandSequenceGenerator draws a CommandSequence by repeatedly
// picking a uniformly-random Command from the menu and sampling its
// Generator. Shrinking is length-first, then elementwise. The length
// step is a single child with the last command dropped; shorter
// prefixes are reached through that child's own shrinks.
type commandSequenceGenerator[S, C any] struct {
	stateMachine StateMachine[S, C]
	maxLength    int
}

func (g commandSequenceGenerator[S, C]) Generate(r *gen.RNG, sz gen.Size) gen.Shrinkable[CommandSequence[C]] {
	if len(g.stateMachine.Commands) == 0 {
		return gen.Terminal(CommandSequence[C]{})
	}
	limit := g.maxLength
	if limit <= 0 {
		limit = sz.Max
		if limit <= 0 {
			limit = 10
		}
	}
	n := 0
	if limit > 0 {
		n = r.IntRange(0, limit)
	}
	elems := make([]gen.Shrinkable[C], n)
	for i := range elems {
		idx := r.Intn(len(g.stateMachine.Commands))
		elems[i] = g.stateMachine.Commands[idx].Generator.Generate(r, sz)
	}
	return shrinkCommandSeq(elems)
}

func shrinkCommandSeq[C any](elems []gen.Shrinkable[C]) gen.Shrinkable[CommandSequence[C]] {
	values := make([]C, len(elems))
	for i, e := range elems {
		values[i] = e.Value
	}
	return gen.NewShrinkable(CommandSequence[C]{Commands: values}, func() gen.LazyStream[gen.Shrinkable[CommandSequence[C]]] {
		n := len(elems)
		var out gen.LazyStream[gen.Shrinkable[CommandSequence[C]]] = gen.EmptyStream[gen.Shrinkable[CommandSequence[C]]]()
		var lengths gen.LazyStream[gen.Shrinkable[CommandSequence[C]]] = gen.EmptyStream[gen.Shrinkable[CommandSequence[C]]]()

		if n > 0 {
			// Length shrink: drop the last element only.
			for keep := n - 1; keep >= 0; keep-- {
				prefix := append([]gen.Shrinkable[C](nil), elems[:keep]...)
				tail := lengths
				lengths = gen.Cons(shrinkCommandSeq(prefix), func() gen.LazyStream[gen.Shrinkable[CommandSequence[C]]] { return tail })
				if keep > 0 {
					// One length step per level keeps the frontier
					// narrow.
					break
				}
			}
		}

		for i := n - 1; i >= 0; i-- {
			idx := i
			tail := out
			out = gen.ConcatLazy(gen.Transform(elems[idx].Shrinks(), func(c gen.Shrinkable[C]) gen.Shrinkable[CommandSequence[C]] {
				replaced := append([]gen.Shrinkable[C](nil), elems...)
				replaced[idx] = c
				return shrinkCommandSeq(replaced)
			}), func() gen.LazyStream[gen.Shrinkable[CommandSequence[C]]] { return tail })
		}

		return gen.ConcatLazy(lengths, func() gen.LazyStream[gen.Shrinkable[CommandSequence[C]]] { return out })
	})
}

// executeStateMachine runs seq against sm, choosing for each command
// value the first Command definition whose Precondition holds (or
// which has no Precondition at all). A command value with no matching
// definition is recorded as skipped rather than executed. Execution
// stops at the first error, matching the trace semantics of a failed
// stateful run.
func executeStateMachine[S, C any](sm StateMachine[S, C], seq CommandSequence[C]) StateMachineResult[S, C] {
	state := sm.InitialState
	result := StateMachineResult[S, C]{FinalState: state}

	for _, cmdValue := range seq.Commands {
		def, ok := selectCommand(sm.Commands, state, cmdValue)
		if !ok {
			result.SkippedCommands = append(result.SkippedCommands, cmdValue)
			continue
		}
		newState, err := def.Execute(state, cmdValue)
		result.ExecutionHistory = append(result.ExecutionHistory, StateTransition[S, C]{
			Command:   cmdValue,
			FromState: state,
			ToState:   newState,
			Error:     err,
		})
		state = newState
		result.FinalState = state
		if err != nil {
			break
		}
	}

	return result
}

func selectCommand[S, C any](commands []Command[S, C], state S, cmdValue C) (Command[S, C], bool) {
	for _, c := range commands {
		if c.Precondition == nil || c.Precondition(state, cmdValue) {
			return c, true
		}
	}
	return Command[S, C]{}, false
}
