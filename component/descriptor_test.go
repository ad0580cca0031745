package component

import (
	"math"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/internal/bin"
	"github.com/wippyai/ecs-abi/schema"
)

type Position struct {
	X float32
	Y float32
}

var positionSchema = schema.MustNew("Position", schema.Float32("x"), schema.Float32("y"))

type Health int32

type Unit struct {
	Alive   bool
	ID      int64 `ecs:"id"`
	MaxHP   Health
	Name    string
	Slots   [4]int16
	Weights []float64
	ignored int
	Extra   string
}

var unitSchema = schema.MustNew("Unit",
	schema.Bool("alive"),
	schema.Int64("id"),
	schema.Int32("max_hp"),
	schema.String("name", 16),
	schema.Array("slots", schema.KindInt16, 4),
	schema.Array("weights", schema.KindFloat64, 3),
)

func TestNewBindsFields(t *testing.T) {
	d, err := New[Unit](unitSchema)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var names []string
	for _, f := range d.Fields() {
		names = append(names, f.Name)
	}
	want := []string{"alive", "id", "max_hp", "name", "slots", "weights"}
	if diff := pretty.Compare(names, want); diff != "" {
		t.Errorf("fields diff:\n%s", diff)
	}

	if d.Size()%d.Align() != 0 {
		t.Errorf("size %d not a multiple of align %d", d.Size(), d.Align())
	}
	if d.Name() != "Unit" || d.GoType().Name() != "Unit" {
		t.Errorf("name %q, go type %v", d.Name(), d.GoType())
	}
}

func TestNewErrors(t *testing.T) {
	t.Run("field_missing", func(t *testing.T) {
		s := schema.MustNew("Position", schema.Float32("x"), schema.Float32("z"))
		_, err := New[Position](s)
		if !errors.IsKind(err, errors.KindFieldMissing) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("primitive_mismatch", func(t *testing.T) {
		s := schema.MustNew("Position", schema.Float64("x"), schema.Float32("y"))
		_, err := New[Position](s)
		if !errors.IsKind(err, errors.KindTypeMismatch) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("array_length_mismatch", func(t *testing.T) {
		type Inv struct{ Slots [3]int32 }
		s := schema.MustNew("Inv", schema.Array("slots", schema.KindInt32, 10))
		_, err := New[Inv](s)
		if !errors.IsKind(err, errors.KindTypeMismatch) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("array_elem_mismatch", func(t *testing.T) {
		type Inv struct{ Slots []uint32 }
		s := schema.MustNew("Inv", schema.Array("slots", schema.KindInt32, 10))
		_, err := New[Inv](s)
		if !errors.IsKind(err, errors.KindTypeMismatch) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("string_mismatch", func(t *testing.T) {
		type Label struct{ Text []byte }
		s := schema.MustNew("Label", schema.String("text", 8))
		_, err := New[Label](s)
		if !errors.IsKind(err, errors.KindTypeMismatch) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("not_a_struct", func(t *testing.T) {
		_, err := New[int](positionSchema)
		if !errors.IsKind(err, errors.KindTypeMismatch) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("skip_tag", func(t *testing.T) {
		type P struct {
			X float32 `ecs:"-"`
			Y float32
		}
		_, err := New[P](positionSchema)
		if !errors.IsKind(err, errors.KindFieldMissing) {
			t.Errorf("got %v", err)
		}
	})
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"X":         "x",
		"MaxHP":     "max_hp",
		"HPMax":     "hp_max",
		"MoveSpeed": "move_speed",
		"ID":        "id",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	d := MustNew[Unit](unitSchema)

	in := Unit{
		Alive:   true,
		ID:      -42,
		MaxHP:   250,
		Name:    "grunt",
		Slots:   [4]int16{1, -2, 3, -4},
		Weights: []float64{0.5, math.Pi, -1},
		ignored: 7,
		Extra:   "not stored",
	}

	buf := make([]byte, d.Size()*2)
	d.Write(buf, int(d.Size()), &in)
	got := d.Read(buf, int(d.Size()))

	want := in
	want.ignored = 0
	want.Extra = ""
	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("round trip diff (-got +want):\n%s", diff)
	}

	for _, b := range buf[:d.Size()] {
		if b != 0 {
			t.Fatal("write touched bytes outside the instance")
		}
	}
}

func TestWritePosition(t *testing.T) {
	d := MustNew[Position](positionSchema)
	if d.Size() != 8 || d.Align() != 4 {
		t.Fatalf("size/align = %d/%d", d.Size(), d.Align())
	}
	if d.OffsetOf("x") != 0 || d.OffsetOf("y") != 4 {
		t.Fatalf("offsets = %d, %d", d.OffsetOf("x"), d.OffsetOf("y"))
	}

	buf := make([]byte, 10*d.Size())
	d.Write(buf, 3*int(d.Size()), &Position{X: 1.5, Y: -2})

	for i, b := range buf {
		if (i < 24 || i >= 32) && b != 0 {
			t.Fatalf("byte %d written outside [24,32)", i)
		}
	}
	if bin.Float32(buf[24:]) != 1.5 || bin.Float32(buf[28:]) != -2 {
		t.Errorf("element 3 = %v, %v", bin.Float32(buf[24:]), bin.Float32(buf[28:]))
	}
}

func TestStringTruncation(t *testing.T) {
	type Label struct{ Label string }
	d := MustNew[Label](schema.MustNew("Label", schema.String("label", 8)))

	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"truncated", "hello world", []byte("hello w\x00")},
		{"short_zero_fills", "hi", []byte("hi\x00\x00\x00\x00\x00\x00")},
		{"exact_fit", "1234567", []byte("1234567\x00")},
		{"empty", "", make([]byte, 8)},
		{"rune_boundary", "abcdeéz", []byte("abcde\xc3\xa9\x00")},
		{"split_rune", "abcdefé", []byte("abcdef\x00\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, 8)
			for i := range buf {
				buf[i] = 0xFF
			}
			d.Write(buf, 0, &Label{Label: tt.in})
			if diff := pretty.Compare(buf, tt.want); diff != "" {
				t.Errorf("bytes diff (-got +want):\n%s", diff)
			}
		})
	}

	buf := make([]byte, 8)
	d.Write(buf, 0, &Label{Label: "hello world"})
	if got := d.Read(buf, 0).Label; got != "hello w" {
		t.Errorf("read = %q, want %q", got, "hello w")
	}
}

func TestGetStringWithoutTerminator(t *testing.T) {
	if got := GetString([]byte("abcd")); got != "abcd" {
		t.Errorf("got %q", got)
	}
	PutString(nil, "ignored")
}

func TestArrayFields(t *testing.T) {
	type Inventory struct {
		Slots []int32
		Fixed [3]uint8
	}
	d := MustNew[Inventory](schema.MustNew("Inventory",
		schema.Array("slots", schema.KindInt32, 4),
		schema.Array("fixed", schema.KindUint8, 3),
	))

	t.Run("short_slice_zero_fills", func(t *testing.T) {
		buf := make([]byte, d.Size())
		for i := range buf {
			buf[i] = 0xFF
		}
		d.Write(buf, 0, &Inventory{Slots: []int32{7, 8}})
		got := d.Read(buf, 0)
		if diff := pretty.Compare(got.Slots, []int32{7, 8, 0, 0}); diff != "" {
			t.Errorf("slots diff:\n%s", diff)
		}
	})

	t.Run("long_slice_truncates", func(t *testing.T) {
		buf := make([]byte, d.Size())
		d.Write(buf, 0, &Inventory{Slots: []int32{1, 2, 3, 4, 5, 6}, Fixed: [3]uint8{9, 8, 7}})
		got := d.Read(buf, 0)
		want := Inventory{Slots: []int32{1, 2, 3, 4}, Fixed: [3]uint8{9, 8, 7}}
		if diff := pretty.Compare(got, want); diff != "" {
			t.Errorf("diff:\n%s", diff)
		}
	})

	t.Run("read_into_reuses_backing", func(t *testing.T) {
		buf := make([]byte, d.Size())
		d.Write(buf, 0, &Inventory{Slots: []int32{1, 2, 3, 4}})

		backing := make([]int32, 2, 8)
		v := Inventory{Slots: backing}
		d.ReadInto(buf, 0, &v)
		if len(v.Slots) != 4 || &v.Slots[0] != &backing[:1][0] {
			t.Error("ReadInto should reuse the slice backing array")
		}
	})

	t.Run("read_into_grows_nil_slice", func(t *testing.T) {
		buf := make([]byte, d.Size())
		d.Write(buf, 0, &Inventory{Slots: []int32{-1, 2, -3, 4}})

		var v Inventory
		d.ReadInto(buf, 0, &v)
		if diff := pretty.Compare(v.Slots, []int32{-1, 2, -3, 4}); diff != "" {
			t.Errorf("slots diff:\n%s", diff)
		}
		if cap(v.Slots) != 4 {
			t.Errorf("cap = %d, want 4", cap(v.Slots))
		}
	})

	t.Run("read_into_without_allocating", func(t *testing.T) {
		buf := make([]byte, d.Size())
		d.Write(buf, 0, &Inventory{Slots: []int32{5, 6, 7, 8}})

		v := Inventory{Slots: make([]int32, 0, 4)}
		n := testing.AllocsPerRun(100, func() {
			v.Slots = v.Slots[:1]
			d.ReadInto(buf, 0, &v)
		})
		if n != 0 {
			t.Errorf("%v allocations per call, want 0", n)
		}
		if len(v.Slots) != 4 || v.Slots[3] != 8 {
			t.Errorf("slots = %v", v.Slots)
		}
	})
}

func TestSliceHelpers(t *testing.T) {
	d := MustNew[Position](positionSchema)
	in := []Position{{1, 2}, {3, 4}, {5, 6}}
	buf := make([]byte, 3*d.Size())

	d.WriteSlice(buf, in)
	out := d.CreateArray(3)
	d.ReadSlice(buf, out)
	if diff := pretty.Compare(out, in); diff != "" {
		t.Errorf("diff:\n%s", diff)
	}
	if len(d.CreateArray(0)) != 0 {
		t.Error("CreateArray(0) should be empty")
	}
}

func TestOffsetOfUnknownPanics(t *testing.T) {
	d := MustNew[Position](positionSchema)

	defer func() {
		r := recover()
		err, ok := r.(*errors.Error)
		if !ok || err.Kind != errors.KindFieldUnknown {
			t.Errorf("recovered %v, want field_unknown error", r)
		}
	}()
	d.OffsetOf("z")
}

func TestFieldLookup(t *testing.T) {
	d := MustNew[Unit](unitSchema)

	f, ok := d.Field("name")
	if !ok {
		t.Fatal("name not found")
	}
	if f.Kind != schema.KindString || f.Capacity != 16 || f.Size != 16 {
		t.Errorf("ref = %+v", f)
	}
	if f.End() != f.Offset+16 {
		t.Errorf("End = %d", f.End())
	}
	if _, ok := d.Field("missing"); ok {
		t.Error("missing should not be found")
	}
}

func TestEmptyComponent(t *testing.T) {
	type Tag struct{}
	d := MustNew[Tag](schema.MustNew("Tag"))
	if d.Size() != 1 || d.Align() != 1 {
		t.Errorf("size/align = %d/%d", d.Size(), d.Align())
	}
	buf := []byte{0xAA}
	d.Write(buf, 0, &Tag{})
	if buf[0] != 0xAA {
		t.Error("tag write should not touch the placeholder byte")
	}
	_ = d.Read(buf, 0)
}

func TestBoolNormalizes(t *testing.T) {
	type Flag struct{ On bool }
	d := MustNew[Flag](schema.MustNew("Flag", schema.Bool("on")))
	if !d.Read([]byte{0x02}, 0).On {
		t.Error("nonzero byte should read as true")
	}
	buf := []byte{0x02}
	d.Write(buf, 0, &Flag{On: true})
	if buf[0] != 1 {
		t.Errorf("true written as %#x", buf[0])
	}
}
