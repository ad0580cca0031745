// Package view provides pooled, zero-allocation field views over foreign
// component memory.
//
// A View is a cursor bound to one component instance inside a foreign
// region. Getters read and setters write the foreign bytes directly; a view
// never owns data. Views are not allocated per access: each Stage keeps one
// fixed ring of pre-built views per component, and Acquire hands them out
// round-robin.
//
// Within one batch the first Cap() acquisitions from a pool return distinct
// views. Acquisition Cap()+1 returns the first view again and rebinding it
// changes what earlier holders see. Code that needs more simultaneous views
// than the pool capacity must raise it with WithPoolCapacity.
//
// A Stage belongs to exactly one thread. The engine calls Begin before each
// batch and End after it; End revokes every region issued during the batch,
// so a view that escapes its batch panics instead of touching reclaimed
// memory.
package view
