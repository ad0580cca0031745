package column

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/wippyai/ecs-abi/component"
	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/foreign"
	"github.com/wippyai/ecs-abi/internal/bin"
	"github.com/wippyai/ecs-abi/schema"
	"github.com/wippyai/ecs-abi/view"
)

type Position struct{ X, Y float32 }

var positionDesc = component.MustNew[Position](
	schema.MustNew("Position", schema.Float32("x"), schema.Float32("y")),
)

func newColumn(t *testing.T, count int) (*Column[Position], []byte, *view.Stage) {
	t.Helper()
	stage := view.NewStage()
	stage.Begin()
	buf := make([]byte, count*int(positionDesc.Size()))
	col, err := New(positionDesc, stage.Scope().Wrap(buf), count, stage)
	if err != nil {
		t.Fatal(err)
	}
	return col, buf, stage
}

func TestColumnSetGet(t *testing.T) {
	col, buf, _ := newColumn(t, 10)

	if err := col.Set(3, &Position{X: 1.5, Y: -2}); err != nil {
		t.Fatal(err)
	}
	for i, b := range buf {
		if (i < 24 || i >= 32) && b != 0 {
			t.Fatalf("byte %d written outside element 3", i)
		}
	}

	got, err := col.Get(3)
	if err != nil {
		t.Fatal(err)
	}
	if diff := pretty.Compare(got, Position{X: 1.5, Y: -2}); diff != "" {
		t.Errorf("diff:\n%s", diff)
	}
	if !col.IsSet() || col.Count() != 10 {
		t.Errorf("IsSet %v, Count %d", col.IsSet(), col.Count())
	}
}

func TestColumnBounds(t *testing.T) {
	col, _, _ := newColumn(t, 4)

	for _, i := range []int{-1, 4, 100} {
		if _, err := col.Get(i); !errors.IsOutOfBounds(err) {
			t.Errorf("Get(%d) = %v", i, err)
		}
		if err := col.Set(i, &Position{}); !errors.IsOutOfBounds(err) {
			t.Errorf("Set(%d) = %v", i, err)
		}
		if _, err := col.MutView(i); !errors.IsOutOfBounds(err) {
			t.Errorf("MutView(%d) = %v", i, err)
		}
	}
}

func TestColumnAbsent(t *testing.T) {
	col, err := New(positionDesc, foreign.Region{}, 10, view.NewStage())
	if err != nil {
		t.Fatal(err)
	}
	if col.Count() != 0 || col.IsSet() {
		t.Errorf("absent column Count %d IsSet %v", col.Count(), col.IsSet())
	}
	if _, err := col.Get(0); !errors.IsOutOfBounds(err) {
		t.Errorf("Get(0) = %v", err)
	}
	if err := col.Each(func(int, *view.View) bool { t.Error("called"); return true }); err != nil {
		t.Error(err)
	}
}

func TestColumnNewErrors(t *testing.T) {
	scope := foreign.NewScope()

	t.Run("region_too_small", func(t *testing.T) {
		_, err := New(positionDesc, scope.Wrap(make([]byte, 15)), 2, nil)
		if !errors.IsOutOfBounds(err) {
			t.Errorf("got %v", err)
		}
	})
	t.Run("negative_count", func(t *testing.T) {
		_, err := New(positionDesc, scope.Wrap(make([]byte, 16)), -1, nil)
		if !errors.IsKind(err, errors.KindInvalidInput) {
			t.Errorf("got %v", err)
		}
	})
	t.Run("nil_descriptor", func(t *testing.T) {
		_, err := New[Position](nil, scope.Wrap(make([]byte, 16)), 2, nil)
		if !errors.IsKind(err, errors.KindNilPointer) {
			t.Errorf("got %v", err)
		}
	})
}

func TestColumnExpired(t *testing.T) {
	col, _, stage := newColumn(t, 2)
	stage.End()

	if _, err := col.Get(0); !errors.IsKind(err, errors.KindExpired) {
		t.Errorf("Get = %v", err)
	}
	if err := col.Set(0, &Position{}); !errors.IsKind(err, errors.KindExpired) {
		t.Errorf("Set = %v", err)
	}
	if _, err := col.MutView(0); !errors.IsKind(err, errors.KindExpired) {
		t.Errorf("MutView = %v", err)
	}
}

func TestColumnMutView(t *testing.T) {
	col, buf, _ := newColumn(t, 10)
	x := positionDesc.MustField("x")

	v, err := col.MutView(7)
	if err != nil {
		t.Fatal(err)
	}
	v.SetFloat32(x, 42)
	if bin.Float32(buf[56:]) != 42 {
		t.Error("view write did not reach column memory")
	}

	got, _ := col.Get(7)
	if got.X != 42 {
		t.Errorf("Get(7).X = %v", got.X)
	}

	noStage, _ := New(positionDesc, col.Region(), 10, nil)
	if _, err := noStage.MutView(0); !errors.IsKind(err, errors.KindNilPointer) {
		t.Errorf("got %v", err)
	}
}

func TestColumnEach(t *testing.T) {
	col, _, _ := newColumn(t, 5)
	y := positionDesc.MustField("y")

	var views []*view.View
	err := col.Each(func(i int, v *view.View) bool {
		v.SetFloat32(y, float32(i*10))
		views = append(views, v)
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := range 5 {
		got, _ := col.Get(i)
		if got.Y != float32(i*10) {
			t.Errorf("row %d Y = %v", i, got.Y)
		}
		if views[i] != views[0] {
			t.Error("Each should reuse one view")
		}
	}

	visited := 0
	_ = col.Each(func(i int, _ *view.View) bool {
		visited++
		return i < 1
	})
	if visited != 2 {
		t.Errorf("visited %d rows, want early stop after 2", visited)
	}
}

func TestColumnAllocs(t *testing.T) {
	col, _, _ := newColumn(t, 16)
	x := positionDesc.MustField("x")
	p := Position{X: 3, Y: 4}
	visit := func(i int, v *view.View) bool {
		v.SetFloat32(x, v.Float32(x)+float32(i))
		return true
	}

	var err error
	tests := []struct {
		name string
		fn   func()
	}{
		{"mut_view", func() {
			var v *view.View
			if v, err = col.MutView(7); err == nil {
				v.SetFloat32(x, 1)
			}
		}},
		{"each", func() { err = col.Each(visit) }},
		{"get_into", func() { err = col.GetInto(5, &p) }},
		{"set", func() { err = col.Set(5, &p) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := testing.AllocsPerRun(100, tt.fn); n != 0 {
				t.Errorf("%v allocations per call, want 0", n)
			}
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}
