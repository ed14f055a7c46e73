package codec

import (
	stderrors "errors"
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/structpack/structpack/errors"
	"github.com/structpack/structpack/schema"
)

// roundTrip marshals v with the codec resolved for desc, decodes the
// bytes back, and returns the decoded value.
func roundTrip(t *testing.T, desc *schema.Descriptor, v any) any {
	t.Helper()
	c, err := NewFactory(nil).Resolve(desc)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	data, err := Marshal(c, v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	out, err := Unmarshal(c, data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	return out
}

func TestRoundTrip_Primitives(t *testing.T) {
	tests := []struct {
		name string
		desc *schema.Descriptor
		in   any
		want any
	}{
		{"nil", schema.Nil(), nil, nil},
		{"bool true", schema.Bool(), true, true},
		{"bool false", schema.Bool(), false, false},
		{"int8", schema.Int8(), int8(-100), int8(-100)},
		{"int16", schema.Int16(), int16(-30000), int16(-30000)},
		{"int32", schema.Int32(), int32(1 << 20), int32(1 << 20)},
		{"int64", schema.Int64(), int64(-1 << 40), int64(-1 << 40)},
		{"int64 from int", schema.Int64(), 42, int64(42)},
		{"uint64", schema.Uint64(), uint64(1) << 63, uint64(1) << 63},
		{"float32", schema.Float32(), float32(1.5), float32(1.5)},
		{"float64", schema.Float64(), 3.141592653589793, 3.141592653589793},
		{"string", schema.String(), "hello", "hello"},
		{"string empty", schema.String(), "", ""},
		{"string multibyte", schema.String(), "héllo wörld", "héllo wörld"},
		{"binary", schema.Binary(), []byte{0, 1, 2}, []byte{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTrip(t, tt.desc, tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("round trip = %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestRoundTrip_BigInt(t *testing.T) {
	tests := []struct {
		name string
		in   *big.Int
	}{
		{"small", big.NewInt(7)},
		{"negative", big.NewInt(-1 << 50)},
		{"above int64", new(big.Int).SetUint64(1<<64 - 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTrip(t, schema.BigInt(), tt.in)
			bi, ok := got.(*big.Int)
			if !ok {
				t.Fatalf("round trip = %T, want *big.Int", got)
			}
			if bi.Cmp(tt.in) != 0 {
				t.Errorf("round trip = %v, want %v", bi, tt.in)
			}
		})
	}
}

func TestRoundTrip_Time(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
	}{
		{"seconds only", time.Unix(1700000000, 0)},
		{"with nanos", time.Unix(1700000000, 123456789)},
		{"pre-epoch", time.Unix(-1000, 500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := roundTrip(t, schema.Time(), tt.in)
			tv, ok := got.(time.Time)
			if !ok {
				t.Fatalf("round trip = %T, want time.Time", got)
			}
			if !tv.Equal(tt.in) {
				t.Errorf("round trip = %v, want %v", tv, tt.in)
			}
		})
	}
}

func TestRoundTrip_Option(t *testing.T) {
	desc := schema.Option(schema.String())
	if got := roundTrip(t, desc, "present"); got != "present" {
		t.Errorf("present round trip = %v, want present", got)
	}
	if got := roundTrip(t, desc, nil); got != nil {
		t.Errorf("absent round trip = %v, want nil", got)
	}

	// Nested option: the element is itself optional.
	nested := schema.Option(schema.Option(schema.Int64()))
	if got := roundTrip(t, nested, int64(5)); got != int64(5) {
		t.Errorf("nested round trip = %v, want 5", got)
	}
}

func TestRoundTrip_Tuple(t *testing.T) {
	desc := schema.Tuple(schema.String(), schema.Int64(), schema.Bool())
	in := []any{"x", int64(9), true}
	got := roundTrip(t, desc, in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}

func TestTuple_ArityMismatch(t *testing.T) {
	c, err := NewFactory(nil).Resolve(schema.Tuple(schema.Int64(), schema.Int64()))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, err := Marshal(c, []any{int64(1)}); err == nil {
		t.Error("encoding a short tuple should fail")
	}
	if _, err := Marshal(c, []any{int64(1), int64(2), int64(3)}); err == nil {
		t.Error("encoding a long tuple should fail")
	}
}

func TestRoundTrip_Enum(t *testing.T) {
	desc := schema.Enum("color", "red", "green", "blue")
	c, err := NewFactory(nil).Resolve(desc)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// Both the ordinal and the case name encode; decode yields the
	// ordinal.
	byOrdinal, err := Marshal(c, 2)
	if err != nil {
		t.Fatalf("Marshal ordinal failed: %v", err)
	}
	byName, err := Marshal(c, "blue")
	if err != nil {
		t.Fatalf("Marshal name failed: %v", err)
	}
	if !reflect.DeepEqual(byOrdinal, byName) {
		t.Errorf("ordinal bytes = %x, name bytes = %x", byOrdinal, byName)
	}
	got, err := Unmarshal(c, byOrdinal)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got != 2 {
		t.Errorf("decode = %v, want 2", got)
	}
}

func TestEnum_InvalidCases(t *testing.T) {
	c, err := NewFactory(nil).Resolve(schema.Enum("color", "red", "green"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	for _, v := range []any{3, -1, "magenta"} {
		if _, err := Marshal(c, v); err == nil {
			t.Errorf("Marshal(%v) should fail", v)
			continue
		}
	}

	// An out-of-range ordinal on the wire is rejected too.
	wide, err := NewFactory(nil).Resolve(schema.Int64())
	if err != nil {
		t.Fatalf("Resolve int64 failed: %v", err)
	}
	data, err := Marshal(wide, int64(5))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	_, err = Unmarshal(c, data)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidEnum {
		t.Errorf("decode err = %v, want invalid_enum kind", err)
	}
}

func TestRoundTrip_Sequences(t *testing.T) {
	in := []any{int64(1), int64(2), int64(3)}

	t.Run("slice", func(t *testing.T) {
		got := roundTrip(t, schema.Slice(schema.Int64()), in)
		if !reflect.DeepEqual(got, in) {
			t.Errorf("round trip = %v, want %v", got, in)
		}
	})

	t.Run("array", func(t *testing.T) {
		got := roundTrip(t, schema.Array(schema.Int64()), in)
		if !reflect.DeepEqual(got, in) {
			t.Errorf("round trip = %v, want %v", got, in)
		}
	})

	t.Run("list", func(t *testing.T) {
		got := roundTrip(t, schema.List(schema.Int64()), NewList(in...))
		l, ok := got.(*List)
		if !ok {
			t.Fatalf("round trip = %T, want *List", got)
		}
		if !reflect.DeepEqual(l.Items(), in) {
			t.Errorf("items = %v, want %v", l.Items(), in)
		}
	})

	t.Run("empty", func(t *testing.T) {
		got := roundTrip(t, schema.Slice(schema.String()), []any{})
		if !reflect.DeepEqual(got, []any{}) {
			t.Errorf("round trip = %v, want empty", got)
		}
	})
}

func TestSequence_CountExceedsInput(t *testing.T) {
	c, err := NewFactory(nil).Resolve(schema.Slice(schema.Int64()))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// array32 claiming 4294967295 elements in a 5-byte input; the
	// count must fail before element storage is sized by it.
	_, err = Unmarshal(c, []byte{0xdd, 0xff, 0xff, 0xff, 0xff})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindUnexpectedEOF {
		t.Errorf("err = %v, want unexpected_eof kind", err)
	}
}

func TestRoundTrip_Map(t *testing.T) {
	desc := schema.Map(schema.String(), schema.Int64())
	in := map[any]any{"a": int64(1), "b": int64(2)}
	got := roundTrip(t, desc, in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}
}

func TestRoundTrip_OrderedMap(t *testing.T) {
	desc := schema.OrderedMap(schema.String(), schema.Int64())
	in := NewOrderedMap()
	in.Set("z", int64(26))
	in.Set("a", int64(1))
	in.Set("m", int64(13))

	got := roundTrip(t, desc, in)
	m, ok := got.(*OrderedMap)
	if !ok {
		t.Fatalf("round trip = %T, want *OrderedMap", got)
	}
	if !reflect.DeepEqual(m.Entries(), in.Entries()) {
		t.Errorf("entries = %v, want %v (insertion order preserved)", m.Entries(), in.Entries())
	}
}

func TestRoundTrip_Record(t *testing.T) {
	desc := schema.Record("user",
		schema.Field("name", schema.String()),
		schema.Field("age", schema.Int32()),
		schema.Field("tags", schema.Slice(schema.String())),
		schema.Field("address", schema.Option(schema.Record("address",
			schema.Field("city", schema.String()),
		))),
	)
	in := map[string]any{
		"name":    "ada",
		"age":     int32(36),
		"tags":    []any{"math"},
		"address": map[string]any{"city": "london"},
	}
	got := roundTrip(t, desc, in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip = %v, want %v", got, in)
	}

	// Absent option field still needs an entry.
	in["address"] = nil
	got = roundTrip(t, desc, in)
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip with nil address = %v, want %v", got, in)
	}
}

func TestRecord_FieldErrors(t *testing.T) {
	desc := schema.Record("point",
		schema.Field("x", schema.Int32()),
		schema.Field("y", schema.Int32()),
	)
	c, err := NewFactory(nil).Resolve(desc)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if _, err := Marshal(c, map[string]any{"x": int32(1)}); err == nil {
		t.Error("encoding with a missing field should fail")
	}
	if _, err := Marshal(c, map[string]any{"x": int32(1), "y": int32(2), "z": int32(3)}); err == nil {
		t.Error("encoding with an extra field should fail")
	}

	// A wire map naming an unknown field is rejected on decode.
	other, err := NewFactory(nil).Resolve(schema.Record("point",
		schema.Field("x", schema.Int32()),
		schema.Field("z", schema.Int32()),
	))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	data, err := Marshal(other, map[string]any{"x": int32(1), "z": int32(2)})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	_, err = Unmarshal(c, data)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindUnknownField {
		t.Errorf("decode err = %v, want unknown_field kind", err)
	}

	// A repeated field name passes the count check but leaves "y"
	// unpopulated: fixmap{2}, "x" -> 1, "x" -> 2.
	_, err = Unmarshal(c, []byte{0x82, 0xa1, 0x78, 0x01, 0xa1, 0x78, 0x02})
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidData {
		t.Errorf("duplicate field err = %v, want invalid_data kind", err)
	}
}

func TestSizedInt_Overflow(t *testing.T) {
	c, err := NewFactory(nil).Resolve(schema.Int8())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	_, err = Marshal(c, 128)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindOverflow {
		t.Errorf("encode err = %v, want overflow kind", err)
	}

	// A wire value outside the declared width fails on decode even
	// though it is well-formed msgpack.
	wide, err := NewFactory(nil).Resolve(schema.Int64())
	if err != nil {
		t.Fatalf("Resolve int64 failed: %v", err)
	}
	data, err := Marshal(wide, int64(1000))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	_, err = Unmarshal(c, data)
	if !stderrors.As(err, &e) || e.Kind != errors.KindOverflow {
		t.Errorf("decode err = %v, want overflow kind", err)
	}
}

func TestTypeMismatch(t *testing.T) {
	tests := []struct {
		name string
		desc *schema.Descriptor
		v    any
	}{
		{"string for int", schema.Int64(), "nope"},
		{"int for string", schema.String(), 7},
		{"slice for map", schema.Map(schema.String(), schema.Int64()), []any{}},
		{"map for tuple", schema.Tuple(schema.Int64()), map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewFactory(nil).Resolve(tt.desc)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			_, err = Marshal(c, tt.v)
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != errors.KindTypeMismatch {
				t.Errorf("err = %v, want type_mismatch kind", err)
			}
		})
	}
}

func TestCompressed_RoundTrip(t *testing.T) {
	desc := schema.Slice(schema.String())
	inner, err := NewFactory(nil).Resolve(desc)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	c := Compressed(inner)

	in := make([]any, 200)
	for i := range in {
		in[i] = "repetitive payload that compresses well"
	}
	data, err := Marshal(c, in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	plain, err := Marshal(inner, in)
	if err != nil {
		t.Fatalf("Marshal plain failed: %v", err)
	}
	if len(data) >= len(plain) {
		t.Errorf("compressed size = %d, plain size = %d", len(data), len(plain))
	}

	got, err := Unmarshal(c, data)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Error("compressed round trip should preserve the value")
	}

	// The wrapper registers as a known codec and transparently
	// replaces the derived one.
	f := NewFactory([]Codec{c})
	resolved, err := f.Resolve(desc)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved != Codec(c) {
		t.Error("factory should hand out the compressed codec for its descriptor")
	}
}
