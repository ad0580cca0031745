package component

import (
	stderrors "errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/schema"
)

type registered struct {
	name  string
	size  uint32
	align uint32
}

type fakeEngine struct {
	next  ID
	calls []registered
	fail  error
	fixed bool
}

func (e *fakeEngine) RegisterComponent(name string, size, align uint32) (ID, error) {
	if e.fail != nil {
		return 0, e.fail
	}
	e.calls = append(e.calls, registered{name, size, align})
	if !e.fixed {
		e.next++
	}
	return e.next, nil
}

type Velocity struct{ DX, DY float32 }

var velocitySchema = schema.MustNew("Velocity", schema.Float32("dx"), schema.Float32("dy"))

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	pos := MustNew[Position](positionSchema)
	vel := MustNew[Velocity](velocitySchema)

	if err := Register(reg, pos); err != nil {
		t.Fatal(err)
	}
	if err := Register(reg, vel); err != nil {
		t.Fatal(err)
	}

	got, ok := Lookup[Position](reg)
	if !ok || got != pos {
		t.Error("Lookup[Position] failed")
	}
	if _, ok := Lookup[Unit](reg); ok {
		t.Error("Unit was never registered")
	}
	if _, ok := IDOf[Position](reg); ok {
		t.Error("unbound component should have no ID")
	}
	if d, ok := reg.ByName("Velocity"); !ok || d.Name() != "Velocity" {
		t.Error("ByName failed")
	}
	if reg.Len() != 2 || reg.Descriptors()[0].Name() != "Position" {
		t.Error("registration order not preserved")
	}

	engine := &fakeEngine{}
	if err := reg.BindAll(engine); err != nil {
		t.Fatal(err)
	}
	want := []registered{{"Position", 8, 4}, {"Velocity", 8, 4}}
	if len(engine.calls) != 2 || engine.calls[0] != want[0] || engine.calls[1] != want[1] {
		t.Errorf("engine calls = %+v", engine.calls)
	}

	id, ok := IDOf[Velocity](reg)
	if !ok || id != 2 {
		t.Errorf("IDOf[Velocity] = %d, %v", id, ok)
	}
	if d, ok := reg.ByID(1); !ok || d.Name() != "Position" {
		t.Error("ByID(1) should be Position")
	}
	if _, ok := reg.ByID(99); ok {
		t.Error("ByID(99) should be absent")
	}

	if err := reg.BindAll(engine); err != nil || len(engine.calls) != 2 {
		t.Error("BindAll must not re-register bound components")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	if err := Register(reg, MustNew[Position](positionSchema)); err != nil {
		t.Fatal(err)
	}

	t.Run("same_type", func(t *testing.T) {
		err := Register(reg, MustNew[Position](positionSchema))
		if !errors.IsKind(err, errors.KindDuplicate) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("same_name", func(t *testing.T) {
		type Other struct{ X, Y float32 }
		err := Register(reg, MustNew[Other](positionSchema))
		if !errors.IsKind(err, errors.KindDuplicate) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("nil_descriptor", func(t *testing.T) {
		if err := Register[Position](reg, nil); !errors.IsKind(err, errors.KindNilPointer) {
			t.Errorf("got %v", err)
		}
	})
}

func TestBind(t *testing.T) {
	t.Run("registers_on_demand", func(t *testing.T) {
		reg := NewRegistry()
		id, err := Bind(reg, MustNew[Position](positionSchema), &fakeEngine{next: 40})
		if err != nil || id != 41 {
			t.Fatalf("Bind = %d, %v", id, err)
		}
		if _, ok := Lookup[Position](reg); !ok {
			t.Error("Bind should register the descriptor")
		}
	})

	t.Run("engine_failure", func(t *testing.T) {
		reg := NewRegistry()
		cause := stderrors.New("zero size not allowed")
		_, err := Bind(reg, MustNew[Position](positionSchema), &fakeEngine{fail: cause})
		if !errors.IsKind(err, errors.KindRegistration) || !stderrors.Is(err, cause) {
			t.Errorf("got %v", err)
		}
		if _, ok := IDOf[Position](reg); ok {
			t.Error("failed bind must not record an ID")
		}
	})

	t.Run("engine_reuses_id", func(t *testing.T) {
		reg := NewRegistry()
		engine := &fakeEngine{next: 5, fixed: true}
		if _, err := Bind(reg, MustNew[Position](positionSchema), engine); err != nil {
			t.Fatal(err)
		}
		_, err := Bind(reg, MustNew[Velocity](velocitySchema), engine)
		if !errors.IsKind(err, errors.KindDuplicate) {
			t.Errorf("got %v", err)
		}
	})

	t.Run("nil_engine", func(t *testing.T) {
		reg := NewRegistry()
		_, err := Bind(reg, MustNew[Position](positionSchema), nil)
		if !errors.IsKind(err, errors.KindNilPointer) {
			t.Errorf("got %v", err)
		}
	})
}

func TestRegistryLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	reg := NewRegistry()
	if _, err := Bind(reg, MustNew[Position](positionSchema), &fakeEngine{}); err != nil {
		t.Fatal(err)
	}

	if n := logs.FilterMessage("component registered").Len(); n != 1 {
		t.Errorf("registered logs = %d", n)
	}
	bound := logs.FilterMessage("component bound").All()
	if len(bound) != 1 || bound[0].ContextMap()["component"] != "Position" {
		t.Errorf("bound logs = %+v", bound)
	}
}
