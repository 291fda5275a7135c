package prop

import (
	"errors"
	"testing"

	"github.com/hollowpine/shrinkwrap/gen"
)

// counter is a tiny system-under-test: an int that a bounded stack of
// actions pushes up and down, with a model that tracks the same thing
// independently so divergence is detectable.
type counter struct{ n int }

func TestStatefulPropertySucceedsWhenModelAgrees(t *testing.T) {
	sp := SimpleStatefulPropertyOf(
		gen.Just(counter{n: 0}),
		func(c counter) gen.Generator[SimpleAction[counter]] {
			return gen.ElementOf(
				gen.WeightedValue[SimpleAction[counter]]{Value: NewSimpleAction("inc", func(c *counter) error {
					c.n++
					return nil
				})},
				gen.WeightedValue[SimpleAction[counter]]{Value: NewSimpleAction("dec", func(c *counter) error {
					c.n--
					return nil
				})},
			)
		},
	).SetSeed("stateful-ok").SetNumRuns(20).SetMinActions(1).SetMaxActions(5)

	if err := sp.Run(); err != nil {
		t.Fatalf("well-behaved counter should never fail: %v", err)
	}
}

func TestStatefulPropertyReportsDivergence(t *testing.T) {
	type model struct{ n int }
	sp := StatefulPropertyOf(
		gen.Just(counter{n: 0}),
		func(c counter) model { return model{n: c.n} },
		func(c counter, m model) gen.Generator[Action[counter, model]] {
			return gen.Just(Action[counter, model]{
				Name: "buggy-inc",
				Apply: func(c *counter, m *model) error {
					c.n++
					m.n++
					if c.n != m.n {
						return errors.New("counter diverged from model")
					}
					if c.n > 2 {
						// Inject a bug past a fixed threshold so the
						// failure is deterministic regardless of how
						// many actions happen to run.
						return errors.New("counter exceeded model bound")
					}
					return nil
				},
			})
		},
	).SetSeed("stateful-fail").SetNumRuns(5).SetMinActions(1).SetMaxActions(10)

	err := sp.Run()
	var sf *StatefulFailure
	if !errors.As(err, &sf) {
		t.Fatalf("expected a StatefulFailure, got %v", err)
	}
	if sf.Cause == nil {
		t.Fatal("StatefulFailure.Cause should carry the underlying error")
	}
	if len(sf.Trace) == 0 {
		t.Fatal("StatefulFailure.Trace should record at least the failing action")
	}
}

func TestStatefulPropertyShrinksSequenceLengthTowardMin(t *testing.T) {
	sp := SimpleStatefulPropertyOf(
		gen.Just(counter{n: 0}),
		func(c counter) gen.Generator[SimpleAction[counter]] {
			return gen.Just(NewSimpleAction("always-fails", func(c *counter) error {
				c.n++
				return errors.New("always fails")
			}))
		},
	).SetSeed("stateful-shrink").SetNumRuns(1).SetMinActions(1).SetMaxActions(10)

	err := sp.Run()
	var sf *StatefulFailure
	if !errors.As(err, &sf) {
		t.Fatalf("expected a StatefulFailure, got %v", err)
	}
	if len(sf.Trace) != 1 {
		t.Fatalf("sequence length should shrink to minActions=1, trace=%v", sf.Trace)
	}
}

func TestPreconditionErrorAbortsOnlyOneStep(t *testing.T) {
	calls := 0
	sp := SimpleStatefulPropertyOf(
		gen.Just(counter{n: 0}),
		func(c counter) gen.Generator[SimpleAction[counter]] {
			return gen.Just(NewSimpleAction("maybe", func(c *counter) error {
				calls++
				if calls%2 == 0 {
					return Precondition(false)
				}
				c.n++
				return nil
			}))
		},
	).SetSeed("precondition-step").SetNumRuns(1).SetMinActions(4).SetMaxActions(4)

	if err := sp.Run(); err != nil {
		t.Fatalf("a precondition failure on one step should not fail the run: %v", err)
	}
	if calls == 0 {
		t.Fatal("actions never ran")
	}
}

// --- named command/state-machine substrate ---

type doorState struct{ open bool }

func TestStateMachineExecutesCommandsInOrder(t *testing.T) {
	sm := StateMachine[doorState, string]{
		InitialState: doorState{open: false},
		Commands: []Command[doorState, string]{
			{
				Name:      "open",
				Generator: gen.Just("open"),
				Execute: func(s doorState, cmd string) (doorState, error) {
					return doorState{open: true}, nil
				},
				Precondition: func(s doorState, cmd string) bool { return cmd == "open" && !s.open },
			},
			{
				Name:      "close",
				Generator: gen.Just("close"),
				Execute: func(s doorState, cmd string) (doorState, error) {
					return doorState{open: false}, nil
				},
				Precondition: func(s doorState, cmd string) bool { return cmd == "close" && s.open },
			},
		},
	}

	result := executeStateMachine(sm, CommandSequence[string]{Commands: []string{"open", "close"}})
	if result.FinalState.open {
		t.Fatalf("final state should be closed, got %+v", result.FinalState)
	}
	if len(result.ExecutionHistory) != 2 {
		t.Fatalf("expected 2 executed transitions, got %d", len(result.ExecutionHistory))
	}
	if len(result.SkippedCommands) != 0 {
		t.Fatalf("no command should have been skipped, got %v", result.SkippedCommands)
	}
}

func TestStateMachineSkipsCommandsWithNoMatchingPrecondition(t *testing.T) {
	sm := StateMachine[doorState, string]{
		InitialState: doorState{open: false},
		Commands: []Command[doorState, string]{
			{
				Name:      "close",
				Generator: gen.Just("close"),
				Execute: func(s doorState, cmd string) (doorState, error) {
					return doorState{open: false}, nil
				},
				Precondition: func(s doorState, cmd string) bool { return s.open },
			},
		},
	}

	result := executeStateMachine(sm, CommandSequence[string]{Commands: []string{"close"}})
	if len(result.SkippedCommands) != 1 {
		t.Fatalf("expected the unsatisfiable command to be skipped, got history=%v skipped=%v",
			result.ExecutionHistory, result.SkippedCommands)
	}
}

func TestStateMachineStopsAtFirstError(t *testing.T) {
	sm := StateMachine[doorState, string]{
		InitialState: doorState{open: false},
		Commands: []Command[doorState, string]{
			{
				Name:      "explode",
				Generator: gen.Just("explode"),
				Execute: func(s doorState, cmd string) (doorState, error) {
					return s, errors.New("boom")
				},
			},
		},
	}

	result := executeStateMachine(sm, CommandSequence[string]{Commands: []string{"explode", "explode"}})
	if len(result.ExecutionHistory) != 1 {
		t.Fatalf("execution should stop after the first error, got %d transitions", len(result.ExecutionHistory))
	}
}

func TestCommandSequenceGeneratorRespectsMaxLength(t *testing.T) {
	sm := StateMachine[doorState, string]{
		InitialState: doorState{open: false},
		Commands: []Command[doorState, string]{
			{Name: "open", Generator: gen.Just("open")},
		},
	}
	g := commandSequenceGenerator[doorState, string]{stateMachine: sm, maxLength: 3}
	r := gen.NewRNG("cmdseq")
	for i := 0; i < 20; i++ {
		s := g.Generate(r, gen.Size{})
		if len(s.Value.Commands) > 3 {
			t.Fatalf("sequence exceeded maxLength: %v", s.Value.Commands)
		}
	}
}

func TestShrinkCommandSeqShrinksTowardEmpty(t *testing.T) {
	elems := []gen.Shrinkable[string]{
		gen.Terminal("open"),
		gen.Terminal("close"),
		gen.Terminal("open"),
	}
	s := shrinkCommandSeq(elems)
	if len(s.Value.Commands) != 3 {
		t.Fatalf("root sequence length = %d, want 3", len(s.Value.Commands))
	}
	children := gen.ToSlice(s.Shrinks())
	if len(children) == 0 {
		t.Fatal("a 3-element sequence should offer at least one shrink")
	}
	shorter := false
	for _, c := range children {
		if len(c.Value.Commands) < 3 {
			shorter = true
		}
	}
	if !shorter {
		t.Fatal("expected at least one shorter child among the shrinks")
	}
}
