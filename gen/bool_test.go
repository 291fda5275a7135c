package gen

import "testing"

func TestBoolShrinkerExactChildren(t *testing.T) {
	trueChildren := ToSlice(shrinkBool(true).Shrinks())
	if len(trueChildren) != 1 || trueChildren[0].Value != false {
		t.Fatalf("true.Shrinks() = %v, want exactly [false]", trueChildren)
	}

	falseChildren := ToSlice(shrinkBool(false).Shrinks())
	if len(falseChildren) != 0 {
		t.Fatalf("false.Shrinks() = %v, want empty", falseChildren)
	}
}

func TestBoolGeneratesBothValues(t *testing.T) {
	r := NewRNG("bool-dist")
	g := Bool()
	seenTrue, seenFalse := false, false
	for i := 0; i < 200; i++ {
		if g.Generate(r, Size{}).Value {
			seenTrue = true
		} else {
			seenFalse = true
		}
	}
	if !seenTrue || !seenFalse {
		t.Fatalf("Bool() did not produce both values over 200 draws")
	}
}
