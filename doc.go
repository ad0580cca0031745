// Package ecsabi marshals typed Go component structs to and from C-ABI memory
// owned by a native entity-component-system engine.
//
// The engine owns component storage. This module never allocates or frees
// it: it computes layouts, maps the engine's buffers as scoped regions, and
// reads or writes fields in place.
//
// # Architecture Overview
//
//	ecsabi/          Root package with the Memory interface
//	├── schema/      Component field declarations, WIT import
//	├── layout/      C-ABI size, alignment and offset calculation
//	├── component/   Typed descriptors binding Go structs to layouts, registry
//	├── foreign/     Scoped regions over engine memory (wazero or native)
//	├── view/        Pooled zero-allocation field views, per-thread stages
//	├── column/      Bounds-checked access to one dense component column
//	├── table/       Per-row access over an engine table
//	├── hooks/       Lifecycle hook marshaling and wasm trampolines
//	├── decl/        TOML/YAML component declarations
//	├── codegen/     Go source generation from declarations
//	└── errors/      Structured error types
//
// # Quick Start
//
// Describe and register a component once:
//
//	type Position struct{ X, Y float32 }
//
//	s := schema.MustNew("Position", schema.Float32("x"), schema.Float32("y"))
//	desc, err := component.New[Position](s)
//	reg := component.NewRegistry()
//	err = component.Register(reg, desc)
//
// Then, per batch, on each worker:
//
//	stage := view.NewStage()
//	stage.Begin()
//	defer stage.End()
//
//	region := stage.Scope().Pointer(ptr, count*int(desc.Size()))
//	col, err := column.New(desc, region, count, stage)
//	v, err := col.MutView(3)
//	v.SetFloat32(desc.MustField("x"), 1.5)
//
// # Threading
//
// Descriptors and the registry are read-only after registration. Views and
// pools are owned by one Stage; a Stage must not be shared between threads.
package ecsabi
