package gen

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Stringify produces a compact, deterministic debug rendering of any
// generated value, used by the property runner to report counterexamples
// (spec.md §6). Map keys are sorted so two runs over the same failing
// value always print identically.
func Stringify(v any) string {
	var b strings.Builder
	stringify(reflect.ValueOf(v), &b)
	return b.String()
}

func stringify(v reflect.Value, b *strings.Builder) {
	if !v.IsValid() {
		b.WriteString("nil")
		return
	}
	switch v.Kind() {
	case reflect.String:
		fmt.Fprintf(b, "%q", v.String())
	case reflect.Slice, reflect.Array:
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			stringify(v.Index(i), b)
		}
		b.WriteByte(']')
	case reflect.Map:
		b.WriteByte('{')
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
		})
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			stringify(k, b)
			b.WriteString(": ")
			stringify(v.MapIndex(k), b)
		}
		b.WriteByte('}')
	case reflect.Struct:
		t := v.Type()
		b.WriteString(t.Name())
		b.WriteByte('{')
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			f := t.Field(i)
			fmt.Fprintf(b, "%s: ", f.Name)
			stringify(v.Field(i), b)
		}
		b.WriteByte('}')
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		stringify(v.Elem(), b)
	default:
		fmt.Fprintf(b, "%v", v)
	}
}
