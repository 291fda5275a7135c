package gen

import "testing"

func TestUint64RangeStaysInBounds(t *testing.T) {
	r := NewRNG("uint64-range")
	g := Uint64Range(10, 1000)
	for i := 0; i < 200; i++ {
		v := g.Generate(r, Size{}).Value
		if v < 10 || v > 1000 {
			t.Fatalf("Uint64Range(10,1000) produced %d", v)
		}
	}
}

func TestUint64ShrinksTowardLowerBound(t *testing.T) {
	s := shrinkUint64Toward(100, 10)
	var walk func(n Shrinkable[uint64])
	walk = func(n Shrinkable[uint64]) {
		if n.Value < 10 || n.Value > 100 {
			t.Fatalf("shrink produced out-of-range value %d", n.Value)
		}
		cur := n.Shrinks()
		for !cur.IsEmpty() {
			walk(cur.Head())
			cur = cur.Tail()
		}
	}
	walk(s)
}

func TestUintRangeStaysInBounds(t *testing.T) {
	r := NewRNG("uint-range")
	g := UintRange(0, 50)
	for i := 0; i < 100; i++ {
		v := g.Generate(r, Size{}).Value
		if v > 50 {
			t.Fatalf("UintRange(0,50) produced %d", v)
		}
	}
}

func TestUint32AndUint16AndByteStayInType(t *testing.T) {
	r := NewRNG("uint-family")
	for i := 0; i < 50; i++ {
		Uint32().Generate(r, Size{})
		Uint16().Generate(r, Size{})
		_ = Byte().Generate(r, Size{}).Value
	}
}
