package union

import (
	"errors"
	"io"
	"math"
	"strings"
	"testing"
	"unsafe"

	uerrors "github.com/wippyai/union/errors"
	"github.com/wippyai/union/payload"
	"github.com/wippyai/union/typeid"
)

type vec2 struct{ X, Y float32 }

type rgba struct{ R, G, B, A uint8 }

type celsius float64

func (c celsius) String() string { return "C" }

type treeNode struct {
	Value int
	Left  *treeNode
}

type label string

func TestScenario_Int32(t *testing.T) {
	u := From(int32(42))

	v, ok := TryGet[int32](u)
	if !ok || v != 42 {
		t.Fatalf("TryGet[int32] = %v, %v; want 42, true", v, ok)
	}
	if u.ID() != typeid.Of[int32]() {
		t.Errorf("ID = %v, want %v", u.ID(), typeid.Of[int32]())
	}
}

func TestScenario_String(t *testing.T) {
	s := strings.Repeat("hello", 1)
	u := From(s)

	got, ok := TryGet[string](u)
	if !ok || got != "hello" {
		t.Fatalf("TryGet[string] = %q, %v", got, ok)
	}
	if unsafe.StringData(got) != unsafe.StringData(s) {
		t.Error("string should come back sharing the original bytes")
	}

	if n, ok := TryGet[int32](u); ok || n != 0 {
		t.Errorf("TryGet[int32] on a string = %v, %v; want 0, false", n, ok)
	}
}

func TestMismatch_NoPanic(t *testing.T) {
	u := From(int32(42))

	f, ok := TryGet[float32](u)
	if ok {
		t.Error("TryGet[float32] on int32 should fail")
	}
	if f != 0 {
		t.Errorf("failed TryGet returned %v, want 0", f)
	}
	if got := Get[float32](u); got != 0.0 {
		t.Errorf("Get[float32] = %v, want 0", got)
	}

	dest := float32(7)
	if TrySetTo(u, &dest) {
		t.Error("TrySetTo[float32] should fail")
	}
	if dest != 7 {
		t.Errorf("dest changed to %v on mismatch", dest)
	}

	// Same size, same bits, different identity.
	if _, ok := TryGet[uint32](u); ok {
		t.Error("TryGet[uint32] on int32 must fail on identity")
	}
}

func TestRoundTrip_Inline(t *testing.T) {
	check := func(t *testing.T, name string, ok bool) {
		t.Helper()
		if !ok {
			t.Errorf("%s did not round-trip", name)
		}
	}

	t.Run("scalars", func(t *testing.T) {
		for _, v := range []int64{0, 1, -1, math.MaxInt64, math.MinInt64} {
			got, ok := TryGet[int64](From(v))
			check(t, "int64", ok && got == v)
		}
		for _, v := range []uint8{0, 1, 255} {
			got, ok := TryGet[uint8](From(v))
			check(t, "uint8", ok && got == v)
		}
		for _, v := range []float64{0, -0.5, math.MaxFloat64, math.Inf(-1), math.SmallestNonzeroFloat64} {
			got, ok := TryGet[float64](From(v))
			check(t, "float64", ok && got == v)
		}
		for _, v := range []bool{true, false} {
			got, ok := TryGet[bool](From(v))
			check(t, "bool", ok && got == v)
		}
		got, ok := TryGet[complex64](From(complex64(complex(1, 2))))
		check(t, "complex64", ok && got == complex(1, 2))
		r, ok := TryGet[rune](From('λ'))
		check(t, "rune", ok && r == 'λ')
	})

	t.Run("NaN keeps its bits", func(t *testing.T) {
		nan := math.Float64frombits(0x7ff8000000000123)
		got, ok := TryGet[float64](From(nan))
		if !ok || math.Float64bits(got) != 0x7ff8000000000123 {
			t.Errorf("NaN bits = %#x", math.Float64bits(got))
		}
	})

	t.Run("structs", func(t *testing.T) {
		v := vec2{1.5, -3}
		got, ok := TryGet[vec2](From(v))
		check(t, "vec2", ok && got == v)

		c := rgba{10, 20, 30, 40}
		gotc, ok := TryGet[rgba](From(c))
		check(t, "rgba", ok && gotc == c)
	})

	t.Run("named scalar", func(t *testing.T) {
		got, ok := TryGet[celsius](From(celsius(21.5)))
		check(t, "celsius", ok && got == 21.5)
		if _, ok := TryGet[float64](From(celsius(1))); ok {
			t.Error("named type must not read back as its underlying type")
		}
	})
}

func TestRoundTrip_Reference(t *testing.T) {
	t.Run("pointer identity", func(t *testing.T) {
		n := &treeNode{Value: 1}
		got, ok := TryGet[*treeNode](From(n))
		if !ok || got != n {
			t.Fatalf("got %p, %v; want %p", got, ok, n)
		}
	})

	t.Run("nil pointer", func(t *testing.T) {
		got, ok := TryGet[*treeNode](From[*treeNode](nil))
		if !ok || got != nil {
			t.Errorf("got %v, %v; want nil, true", got, ok)
		}
	})

	t.Run("slice shares backing array", func(t *testing.T) {
		s := []int{1, 2, 3}
		got, ok := TryGet[[]int](From(s))
		if !ok || len(got) != 3 || &got[0] != &s[0] {
			t.Fatal("slice should share backing storage")
		}
	})

	t.Run("map identity", func(t *testing.T) {
		m := map[string]int{"a": 1}
		got, ok := TryGet[map[string]int](From(m))
		if !ok {
			t.Fatal("map did not round-trip")
		}
		got["b"] = 2
		if m["b"] != 2 {
			t.Error("map should be the same object")
		}
	})

	t.Run("struct with pointers", func(t *testing.T) {
		v := treeNode{Value: 3, Left: &treeNode{}}
		got, ok := TryGet[treeNode](From(v))
		if !ok || got.Value != 3 || got.Left != v.Left {
			t.Errorf("got %+v, %v", got, ok)
		}
	})

	t.Run("interface type", func(t *testing.T) {
		var r io.Reader = strings.NewReader("x")
		u := From(r)
		got, ok := TryGet[io.Reader](u)
		if !ok || got != r {
			t.Fatalf("io.Reader did not round-trip")
		}
		if _, ok := TryGet[*strings.Reader](u); ok {
			t.Error("the static interface type is the identity, not the dynamic type")
		}
	})

	t.Run("nil interface", func(t *testing.T) {
		got, ok := TryGet[error](From[error](nil))
		if !ok || got != nil {
			t.Errorf("got %v, %v; want nil, true", got, ok)
		}
	})

	t.Run("named string boxes", func(t *testing.T) {
		got, ok := TryGet[label](From(label("x")))
		if !ok || got != "x" {
			t.Errorf("got %q, %v", got, ok)
		}
		if _, ok := TryGet[string](From(label("x"))); ok {
			t.Error("label must not read back as string")
		}
	})
}

func TestZeroUnion(t *testing.T) {
	var u Union
	if u.IsValid() {
		t.Error("zero Union should be invalid")
	}
	if u.Type() != nil {
		t.Errorf("zero Union Type = %v", u.Type())
	}
	if _, ok := TryGet[int32](u); ok {
		t.Error("reading a zero Union must fail")
	}
	if _, ok := TryGet[string](u); ok {
		t.Error("reading a zero Union as string must fail")
	}
	if _, ok := TryGet[*treeNode](u); ok {
		t.Error("reading a zero Union as object must fail")
	}
	if u.String() != "<invalid>" {
		t.Errorf("String = %q", u.String())
	}
	if _, ok := u.Value(); ok {
		t.Error("Value on zero Union should fail")
	}
}

func TestUnion_Accessors(t *testing.T) {
	u := From(vec2{1, 2})
	if u.Type().String() != "union.vec2" {
		t.Errorf("Type = %v", u.Type())
	}
	if !Is[vec2](u) || Is[rgba](u) {
		t.Error("Is should report the stamped type only")
	}

	p := u.Payload()
	if got := payload.Load[vec2](&p); got != (vec2{1, 2}) {
		t.Errorf("payload holds %+v", got)
	}

	rebuilt := Make(u.ID(), p)
	if !rebuilt.Equal(u) {
		t.Error("Make(ID, Payload) should rebuild an equal union")
	}
}

func TestUnion_Equal(t *testing.T) {
	n := &treeNode{}
	tests := []struct {
		name string
		a, b Union
		want bool
	}{
		{"same int", From(int32(1)), From(int32(1)), true},
		{"different int", From(int32(1)), From(int32(2)), false},
		{"same bits other type", From(int32(1)), From(uint32(1)), false},
		{"same string", From("a"), From("a"), true},
		{"same pointer", From(n), From(n), true},
		{"distinct pointers", From(&treeNode{}), From(&treeNode{}), false},
		{"zero", Union{}, Union{}, true},
		{"slices", From([]int{1}), From([]int{1}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnion_String(t *testing.T) {
	tests := []struct {
		name string
		u    Union
		want string
	}{
		{"int32", From(int32(-7)), "-7"},
		{"uint64", From(uint64(math.MaxUint64)), "18446744073709551615"},
		{"float32", From(float32(0.1)), "0.1"},
		{"float64", From(2.5), "2.5"},
		{"bool", From(true), "true"},
		{"string", From("hello"), "hello"},
		{"struct", From(vec2{1, 2}), "{1 2}"},
		{"Stringer", From(celsius(3)), "C"},
		{"pointer", From(&treeNode{Value: 5}), "&{5 <nil>}"},
		{"nil pointer", From[*treeNode](nil), "<nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.u.String(); got != tt.want {
				t.Errorf("String = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnion_Value(t *testing.T) {
	v, ok := From(int16(9)).Value()
	if !ok || v != int16(9) {
		t.Errorf("Value = %v (%T), %v", v, v, ok)
	}

	s, ok := From("x").Value()
	if !ok || s != "x" {
		t.Errorf("Value = %v, %v", s, ok)
	}
}

func TestTyped(t *testing.T) {
	tu := FromTyped(int64(99))
	if !tu.IsValid() {
		t.Fatal("typed union should be valid")
	}
	if tu.Get() != 99 {
		t.Errorf("Get = %d", tu.Get())
	}
	if v, ok := tu.TryGet(); !ok || v != 99 {
		t.Errorf("TryGet = %d, %v", v, ok)
	}
	var dest int64
	if !tu.TrySetTo(&dest) || dest != 99 {
		t.Errorf("TrySetTo wrote %d", dest)
	}
	if tu.String() != "99" {
		t.Errorf("String = %q", tu.String())
	}

	u := tu.Union()
	if !u.Equal(From(int64(99))) {
		t.Error("Union() should discard only the static type")
	}
	if tu.ID() != u.ID() {
		t.Error("ID should match the underlying union")
	}

	back := Wrap[int64](u)
	if back.Get() != 99 {
		t.Error("Wrap should view the same union")
	}
}

func TestTyped_WrapDoesNotValidate(t *testing.T) {
	wrong := Wrap[float32](From(int32(42)))
	if wrong.IsValid() {
		t.Error("IsValid should report the mismatch")
	}
	if _, ok := wrong.TryGet(); ok {
		t.Error("TryGet should fail through the converter")
	}
	if wrong.Get() != 0 {
		t.Error("Get should return zero on mismatch")
	}
	var dest float32 = 1
	if wrong.TrySetTo(&dest) || dest != 1 {
		t.Error("TrySetTo should leave dest untouched")
	}
	if wrong.String() != "42" {
		t.Errorf("String should fall back to the stamped type, got %q", wrong.String())
	}
}

func TestTrySetTo_NilDest(t *testing.T) {
	if TrySetTo[int32](From(int32(1)), nil) {
		t.Error("nil dest should report false")
	}
}

func TestPayloadCapacityError(t *testing.T) {
	_, err := NewInlineConverter[int32](12)
	if err == nil {
		t.Fatal("capacity 12 is not a whole number of steps")
	}
	var uerr *uerrors.Error
	if !errors.As(err, &uerr) || uerr.Phase != uerrors.PhaseConfig {
		t.Errorf("error %v should be a config error", err)
	}
}

func BenchmarkFrom_Int64(b *testing.B) {
	c := Lookup[int64]()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		u := c.ToUnion(int64(i))
		if v, _ := c.TryGetValue(u); v != int64(i) {
			b.Fatal("mismatch")
		}
	}
}

func BenchmarkFrom_Generic(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		u := From(vec2{float32(i), 1})
		if _, ok := TryGet[vec2](u); !ok {
			b.Fatal("mismatch")
		}
	}
}
