package gen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// requireStringifyEqual compares the Stringify rendering of two values
// with go-cmp, so a mismatch prints a readable diff instead of a flat
// string comparison failure.
func requireStringifyEqual(t *testing.T, got, want any) {
	t.Helper()
	if diff := cmp.Diff(Stringify(want), Stringify(got)); diff != "" {
		t.Fatalf("Stringify mismatch (-want +got):\n%s", diff)
	}
}

func TestStringifyEqualCatchesStructuralDrift(t *testing.T) {
	type point struct{ X, Y int }
	requireStringifyEqual(t, point{X: 1, Y: 2}, point{X: 1, Y: 2})
	requireStringifyEqual(t, []int{1, 2, 3}, []int{1, 2, 3})
}

func TestStringifyPrimitives(t *testing.T) {
	assert.Equal(t, "42", Stringify(42))
	assert.Equal(t, `"hi"`, Stringify("hi"))
	assert.Equal(t, "true", Stringify(true))
}

func TestStringifySliceAndMapDeterministic(t *testing.T) {
	assert.Equal(t, "[1, 2, 3]", Stringify([]int{1, 2, 3}))

	m := map[string]int{"b": 2, "a": 1, "c": 3}
	first := Stringify(m)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Stringify(m), "map key ordering must be deterministic across calls")
	}
	assert.Equal(t, `{"a": 1, "b": 2, "c": 3}`, first)
}

func TestStringifyStructIncludesFieldNames(t *testing.T) {
	type point struct{ X, Y int }
	assert.Equal(t, "point{X: 1, Y: 2}", Stringify(point{X: 1, Y: 2}))
}

func TestStringifyNilPointer(t *testing.T) {
	var p *int
	assert.Equal(t, "nil", Stringify(p))
}
