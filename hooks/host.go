package hooks

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/ecs-abi/errors"
	"github.com/wippyai/ecs-abi/foreign"
	"github.com/wippyai/ecs-abi/internal/abi"
)

// DefaultModuleName is the import module guests use for hook trampolines.
const DefaultModuleName = "ecs_hooks"

// Hooks is the type-erased view of a Marshaler.
type Hooks interface {
	Name() string
	Size() uint32
	Has(k Kind) bool
	Dispatch(k Kind, a, b foreign.Region, count int)
	Fail(k Kind, err error)
}

// ModuleOption configures a HostModule.
type ModuleOption func(*HostModule)

// WithModuleName overrides DefaultModuleName.
func WithModuleName(name string) ModuleOption {
	return func(h *HostModule) {
		if name != "" {
			h.name = name
		}
	}
}

// HostModule exports marshaler slots to wasm guests as fixed-signature host
// functions named "<component>.<slot>":
//
//	ctor, dtor, on_add, on_set, on_remove   (ptr i32, count i32)
//	on_replace                              (old i32, new i32, count i32)
//	copy, move, copy_ctor, move_ctor        (dst i32, src i32, count i32)
//
// Each call maps the guest pointers for its own duration only.
type HostModule struct {
	name   string
	hooks  []Hooks
	scopes sync.Pool
}

// NewHostModule creates an empty host module.
func NewHostModule(opts ...ModuleOption) *HostModule {
	h := &HostModule{name: DefaultModuleName}
	for _, opt := range opts {
		opt(h)
	}
	h.scopes.New = func() any { return foreign.NewScope() }
	return h
}

// Add registers marshalers. Only slots set at Instantiate time are exported.
func (h *HostModule) Add(hs ...Hooks) *HostModule {
	h.hooks = append(h.hooks, hs...)
	return h
}

// Name returns the import module name.
func (h *HostModule) Name() string { return h.name }

// ExportName returns the host function name for a component slot.
func ExportName(component string, k Kind) string {
	return component + "." + k.String()
}

// Exports lists the host function names that Instantiate would export.
func (h *HostModule) Exports() []string {
	var out []string
	for _, hk := range h.hooks {
		for _, k := range Kinds {
			if hk.Has(k) {
				out = append(out, ExportName(hk.Name(), k))
			}
		}
	}
	return out
}

// Instantiate builds and instantiates the host module in r.
func (h *HostModule) Instantiate(ctx context.Context, r wazero.Runtime) (api.Module, error) {
	builder := r.NewHostModuleBuilder(h.name)
	seen := make(map[string]bool)

	for _, hk := range h.hooks {
		if seen[hk.Name()] {
			return nil, errors.New(errors.PhaseHook, errors.KindDuplicate).
				Component(hk.Name()).
				Detail("component added to host module %s twice", h.name).
				Build()
		}
		seen[hk.Name()] = true

		for _, k := range Kinds {
			if !hk.Has(k) {
				continue
			}
			params, names := signature(k)
			builder.NewFunctionBuilder().
				WithGoModuleFunction(h.trampoline(hk, k), params, nil).
				WithParameterNames(names...).
				Export(ExportName(hk.Name(), k))
		}
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHook, errors.KindRegistration, err, "instantiate host module "+h.name)
	}

	Logger().Debug("hook host module instantiated",
		zap.String("module", h.name),
		zap.Int("components", len(h.hooks)))
	return mod, nil
}

func signature(k Kind) ([]api.ValueType, []string) {
	i32 := api.ValueTypeI32
	switch {
	case k == KindReplace:
		return []api.ValueType{i32, i32, i32}, []string{"old", "new", "count"}
	case k.Pair():
		return []api.ValueType{i32, i32, i32}, []string{"dst", "src", "count"}
	default:
		return []api.ValueType{i32, i32}, []string{"ptr", "count"}
	}
}

func (h *HostModule) trampoline(hk Hooks, k Kind) api.GoModuleFunc {
	size := hk.Size()
	pair := k.Pair()

	return func(_ context.Context, mod api.Module, stack []uint64) {
		var first, second uint32
		var n int32
		if pair {
			first, second, n = api.DecodeU32(stack[0]), api.DecodeU32(stack[1]), api.DecodeI32(stack[2])
		} else {
			first, n = api.DecodeU32(stack[0]), api.DecodeI32(stack[1])
		}

		if n == 0 {
			return
		}
		if n < 0 {
			hk.Fail(k, errors.InvalidInput(errors.PhaseHook, "negative instance count from guest"))
			return
		}
		span, ok := abi.SafeMulU32(uint32(n), size)
		if !ok {
			hk.Fail(k, errors.Overflow(errors.PhaseHook, []string{hk.Name()}, uint64(n)*uint64(size), "uint32"))
			return
		}
		if mod.Memory() == nil {
			hk.Fail(k, errors.NilPointer(errors.PhaseHook, []string{hk.Name()}, "guest memory"))
			return
		}

		scope := h.scopes.Get().(*foreign.Scope)
		scope.Renew()
		defer func() {
			scope.End()
			h.scopes.Put(scope)
		}()

		mem := foreign.WrapMemory(mod.Memory())
		a, err := scope.Map(mem, first, span)
		if err != nil {
			hk.Fail(k, err)
			return
		}
		var b foreign.Region
		if pair {
			if b, err = scope.Map(mem, second, span); err != nil {
				hk.Fail(k, err)
				return
			}
		}

		// guest order is (old, new); Dispatch takes the written region first
		if k == KindReplace {
			a, b = b, a
		}
		hk.Dispatch(k, a, b, int(n))
	}
}
