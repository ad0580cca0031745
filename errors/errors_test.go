package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:      PhaseBind,
				Kind:       KindTypeMismatch,
				Component:  "Position",
				Path:       []string{"pos", "x"},
				GoType:     "int32",
				SchemaType: "float32",
				Detail:     "cannot bind",
			},
			contains: []string{"[bind]", "type_mismatch", "in Position", "pos.x", "int32", "float32", "cannot bind"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseAccess,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[access]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRegistry,
				Kind:   KindRegistration,
				Detail: "engine refused",
				Cause:  errors.New("zero size"),
			},
			contains: []string{"[registry]", "registration", "engine refused", "caused by", "zero size"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseHook,
		Kind:  KindFault,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseAccess,
		Kind:  KindNotFound,
		Path:  []string{"Velocity"},
	}

	if !err.Is(&Error{Phase: PhaseAccess, Kind: KindNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseSchema, Kind: KindNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseAccess, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}
	if !err.Is(&Error{Kind: KindNotFound}) {
		t.Error("Is with empty phase should match on kind")
	}
}

func TestIsKind(t *testing.T) {
	inner := OutOfBounds(PhaseAccess, []string{"row"}, 5, 3)
	wrapped := fmt.Errorf("table get: %w", inner)

	if !IsOutOfBounds(wrapped) {
		t.Error("IsOutOfBounds should see through fmt wrapping")
	}
	if IsNotFound(wrapped) {
		t.Error("IsNotFound should be false for bounds error")
	}

	chained := Wrap(PhaseAccess, KindInvalidInput, NotFound(PhaseAccess, "component", "Health"), "lookup")
	if !IsNotFound(chained) {
		t.Error("IsNotFound should follow Cause chain")
	}
	if IsKind(nil, KindFault) {
		t.Error("nil error has no kind")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseBind, KindTypeMismatch).
		Component("Label").
		Path("text").
		GoType("int").
		SchemaType("string").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "string", "int").
		Build()

	if err.Phase != PhaseBind {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseBind)
	}
	if err.Component != "Label" {
		t.Errorf("Component = %q, want Label", err.Component)
	}
	if err.Detail != "expected string, got int" {
		t.Errorf("Detail = %q", err.Detail)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err, cause) {
		t.Error("Cause not set")
	}
}

func TestConstructors(t *testing.T) {
	t.Run("missing_capacity", func(t *testing.T) {
		err := MissingCapacity("Label", "text", "string")
		if err.Phase != PhaseSchema || err.Kind != KindMissingCapacity {
			t.Errorf("got %s/%s", err.Phase, err.Kind)
		}
	})

	t.Run("invalid_capacity", func(t *testing.T) {
		err := InvalidCapacity("Label", "text", 12, "must be a power of two")
		if !strings.Contains(err.Error(), "capacity 12") {
			t.Errorf("message %q", err.Error())
		}
	})

	t.Run("fault_with_panic", func(t *testing.T) {
		err := Fault("Position", "on_add", "boom", nil)
		if !strings.Contains(err.Error(), "panicked: boom") {
			t.Errorf("message %q", err.Error())
		}
	})

	t.Run("fault_with_error", func(t *testing.T) {
		cause := errors.New("bad value")
		err := Fault("Position", "on_set", nil, cause)
		if !errors.Is(err, cause) {
			t.Error("fault should wrap callback error")
		}
	})

	t.Run("out_of_bounds", func(t *testing.T) {
		err := OutOfBounds(PhaseAccess, nil, -1, 4)
		if err.Value != -1 {
			t.Errorf("Value = %v", err.Value)
		}
	})
}
