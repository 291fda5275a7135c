// Package prop implements the property-based test runner: sampling
// arguments from generators, evaluating a predicate, and shrinking a
// failing sample down to a locally minimal counterexample.
package prop

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPrecondition is the sentinel a predicate returns (via errors.Is)
// to signal "discard this sample, it isn't a real input" rather than a
// genuine failure. Use Precondition(cond) inside a predicate body.
var ErrPrecondition = errors.New("prop: precondition not satisfied")

// Precondition returns ErrPrecondition if cond is false, nil
// otherwise. Predicates call this to skip inputs outside their domain
// without it counting as a failure.
func Precondition(cond bool) error {
	if cond {
		return nil
	}
	return ErrPrecondition
}

// ArityError reports a mismatch between a predicate's declared arity
// and the number of generators supplied. Raised before any sample is
// drawn.
type ArityError struct {
	Want, Got int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("prop: arity mismatch: predicate wants %d argument(s), got %d generator(s)", e.Want, e.Got)
}

// ArgumentError reports a runtime type mismatch in a ForAllTyped call.
type ArgumentError struct {
	Index    int
	Expected string
	Got      string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("prop: argument %d: expected %s, got %s", e.Index, e.Expected, e.Got)
}

// ShrinkStep records one accepted shrink during a property run's
// search, for inclusion in a PropertyFailure report.
type ShrinkStep struct {
	Index int    // which argument slot changed
	Value string // gen.Stringify of the new value at that slot
}

// PropertyFailure is raised when a predicate returns a non-nil error
// other than ErrPrecondition, after the shrink search has run to
// completion, or when PostCheck returns an error.
type PropertyFailure struct {
	Seed    string
	Run     int
	Args    []string // gen.Stringify of each minimal argument
	Cause   error    // the error returned for the reported arguments (or by PostCheck)
	History []ShrinkStep
}

func (e *PropertyFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "prop: property failed after %d run(s), seed=%q\n", e.Run, e.Seed)
	fmt.Fprintf(&b, "counterexample: (%s)\n", strings.Join(e.Args, ", "))
	if e.Cause != nil {
		fmt.Fprintf(&b, "cause: %v\n", e.Cause)
	}
	fmt.Fprintf(&b, "shrink steps: %d", len(e.History))
	return b.String()
}

func (e *PropertyFailure) Unwrap() error { return e.Cause }

// TooManyPreconditions is raised when the cumulative count of skipped
// (precondition-failing) samples exceeds the configured bound.
type TooManyPreconditions struct {
	Skipped, Bound int
}

func (e *TooManyPreconditions) Error() string {
	return fmt.Sprintf("prop: too many preconditions: %d skipped samples exceed bound %d", e.Skipped, e.Bound)
}

// StatefulFailure is raised when an action or a postCheck hook fails
// during a stateful run. It carries the action trace and the initial
// state that reproduces the failure.
type StatefulFailure struct {
	Seed        string
	InitialState string
	Trace       []string // action names, in execution order
	Cause       error
}

func (e *StatefulFailure) Error() string {
	return fmt.Sprintf("prop: stateful property failed, seed=%q, initial=%s, trace=[%s]: %v",
		e.Seed, e.InitialState, strings.Join(e.Trace, " -> "), e.Cause)
}

func (e *StatefulFailure) Unwrap() error { return e.Cause }
