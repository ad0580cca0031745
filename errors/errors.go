package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSchema   Phase = "schema"   // schema declaration (build time)
	PhaseLayout   Phase = "layout"   // layout calculation (build time)
	PhaseBind     Phase = "bind"     // Go struct binding
	PhaseAccess   Phase = "access"   // column/table/view access
	PhaseHook     Phase = "hook"     // lifecycle hook marshaling
	PhaseRegistry Phase = "registry" // component registration
	PhaseGenerate Phase = "generate" // code generation
	PhaseLoad     Phase = "load"     // declaration loading
)

// Kind categorizes the error
type Kind string

const (
	KindMissingCapacity Kind = "missing_capacity"
	KindInvalidCapacity Kind = "invalid_capacity"
	KindUnsupported     Kind = "unsupported"
	KindDuplicate       Kind = "duplicate"
	KindTypeMismatch    Kind = "type_mismatch"
	KindFieldMissing    Kind = "field_missing"
	KindFieldUnknown    Kind = "field_unknown"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindNotFound        Kind = "not_found"
	KindExpired         Kind = "expired"
	KindNilPointer      Kind = "nil_pointer"
	KindOverflow        Kind = "overflow"
	KindFault           Kind = "fault"
	KindRegistration    Kind = "registration"
	KindInvalidInput    Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	Component  string
	GoType     string
	SchemaType string
	Detail     string
	Path       []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Component != "" {
		b.WriteString(" in ")
		b.WriteString(e.Component)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.SchemaType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.SchemaType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", schema type ")
			b.WriteString(e.SchemaType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("schema type ")
			b.WriteString(e.SchemaType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.SchemaType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches on Kind alone.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Phase == "" {
			return e.Kind == t.Kind
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether any *Error in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if stderrors.As(err, &e) {
			if e.Kind == kind {
				return true
			}
			err = e.Cause
			continue
		}
		return false
	}
	return false
}

// IsNotFound reports whether err marks an absent component or column.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// IsOutOfBounds reports whether err is an index bounds violation.
func IsOutOfBounds(err error) bool {
	return IsKind(err, KindOutOfBounds)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Component sets the component name
func (b *Builder) Component(name string) *Builder {
	b.err.Component = name
	return b
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// SchemaType sets the schema kind name
func (b *Builder) SchemaType(t string) *Builder {
	b.err.SchemaType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// MissingCapacity creates an error for a string/array field declared without a capacity
func MissingCapacity(component, field, kind string) *Error {
	return &Error{
		Phase:      PhaseSchema,
		Kind:       KindMissingCapacity,
		Component:  component,
		Path:       []string{field},
		SchemaType: kind,
		Detail:     "variable-shaped field requires an explicit static capacity",
	}
}

// InvalidCapacity creates an error for a capacity that violates schema rules
func InvalidCapacity(component, field string, capacity uint32, rule string) *Error {
	return &Error{
		Phase:     PhaseSchema,
		Kind:      KindInvalidCapacity,
		Component: component,
		Path:      []string{field},
		Detail:    fmt.Sprintf("capacity %d: %s", capacity, rule),
		Value:     capacity,
	}
}

// Unsupported creates an unsupported kind or operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, schemaType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindTypeMismatch,
		Path:       path,
		GoType:     goType,
		SchemaType: schemaType,
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// FieldUnknown creates an unknown field error
func FieldUnknown(phase Phase, component, fieldName string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindFieldUnknown,
		Component: component,
		Detail:    fmt.Sprintf("unknown field %q", fieldName),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// NotFound creates a not found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Expired creates an error for a foreign region used after its scope ended
func Expired(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindExpired,
		Detail: detail,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, path []string, goType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		GoType: goType,
		Detail: "nil pointer",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindOverflow,
		Path:       path,
		SchemaType: targetType,
		Detail:     fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:      value,
	}
}

// Fault creates an error describing a contained callback fault
func Fault(component, event string, value any, cause error) *Error {
	detail := fmt.Sprintf("%s callback faulted", event)
	if value != nil {
		detail = fmt.Sprintf("%s callback panicked: %v", event, value)
	}
	return &Error{
		Phase:     PhaseHook,
		Kind:      KindFault,
		Component: component,
		Detail:    detail,
		Value:     value,
		Cause:     cause,
	}
}

// Registration creates a registration error
func Registration(component string, cause error) *Error {
	return &Error{
		Phase:     PhaseRegistry,
		Kind:      KindRegistration,
		Component: component,
		Detail:    "register component",
		Cause:     cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
