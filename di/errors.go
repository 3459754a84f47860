package di

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	// ErrNilType is returned when a nil reflect.Type is registered, described or resolved.
	ErrNilType = errors.New("di: nil reflect.Type")

	// ErrNilConstructorResult is wrapped in ConstructorFailedError when a pointer
	// constructor returns nil but a value of the pointee type was requested.
	ErrNilConstructorResult = errors.New("di: constructor returned nil")
)

// typeName renders a type for error messages without using fmt.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return strconv.Quote(t.String())
}

// UnregisteredAbstractionError is returned when an interface type has no registry
// mapping and cannot be constructed directly.
type UnregisteredAbstractionError struct{ Type reflect.Type }

// Error implements the error interface.
func (e UnregisteredAbstractionError) Error() string {
	// Example: di: abstraction "sales.ProductDatabase" is not registered
	return "di: abstraction " + typeName(e.Type) + " is not registered"
}

// AmbiguousOrMissingConstructorError is returned under the single-constructor
// selection rule when a concrete type exposes zero or more than one constructor.
type AmbiguousOrMissingConstructorError struct {
	Type  reflect.Type
	Count int
}

// Error implements the error interface.
func (e AmbiguousOrMissingConstructorError) Error() string {
	// Example: di: type "*sales.Processor" must expose exactly one constructor, found 2
	return "di: type " + typeName(e.Type) + " must expose exactly one constructor, found " + strconv.Itoa(e.Count)
}

// NoAccessibleConstructorError is returned under the fewest-parameters selection
// rule when a concrete type exposes no constructor at all.
type NoAccessibleConstructorError struct{ Type reflect.Type }

// Error implements the error interface.
func (e NoAccessibleConstructorError) Error() string {
	return "di: no constructor found for type " + typeName(e.Type)
}

// UnsupportedShapeError is returned when a type cannot be synthesized.
type UnsupportedShapeError struct {
	Type   reflect.Type
	Reason string
}

// Error implements the error interface.
func (e UnsupportedShapeError) Error() string {
	msg := "di: unsupported shape " + typeName(e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// CyclicTypeGraphError is returned when resolution exceeds the configured depth,
// which in practice means the type graph refers back to itself.
type CyclicTypeGraphError struct {
	Path     []reflect.Type
	MaxDepth int
}

// Error implements the error interface.
func (e CyclicTypeGraphError) Error() string {
	return "di: resolution exceeded max depth " + strconv.Itoa(e.MaxDepth) + " (cyclic type graph?): " + formatPath(e.Path)
}

// NotAssignableError is returned by Register when the concrete type cannot stand in
// for the abstraction.
type NotAssignableError struct {
	Abstraction reflect.Type
	Concrete    reflect.Type
}

// Error implements the error interface.
func (e NotAssignableError) Error() string {
	return "di: " + typeName(e.Concrete) + " is not assignable to " + typeName(e.Abstraction)
}

// InvalidConstructorError is returned by Provide when the value is not a usable constructor.
type InvalidConstructorError struct {
	Func   reflect.Type
	Reason string
}

// Error implements the error interface.
func (e InvalidConstructorError) Error() string {
	return "di: invalid constructor " + typeName(e.Func) + ": " + e.Reason
}

// ConstructorFailedError wraps an error returned by a constructor.
type ConstructorFailedError struct {
	Type reflect.Type
	Err  error
}

// Error implements the error interface.
func (e ConstructorFailedError) Error() string {
	return "di: constructor for " + typeName(e.Type) + " failed: " + e.Err.Error()
}

// Unwrap returns the constructor's error.
func (e ConstructorFailedError) Unwrap() error { return e.Err }

// ConstructorPanicError is returned when a constructor panics.
type ConstructorPanicError struct {
	Type  reflect.Type
	Value any
}

// Error implements the error interface.
func (e ConstructorPanicError) Error() string {
	return fmt.Sprintf("di: constructor for %s panicked: %v", typeName(e.Type), e.Value)
}

// ResolutionError wraps any failure of a top-level resolution. Path is the chain of
// types that was being resolved when the failure was detected, starting at Root.
type ResolutionError struct {
	Root reflect.Type
	Path []reflect.Type
	Err  error
}

// Error implements the error interface.
func (e ResolutionError) Error() string {
	msg := "di: resolve " + typeName(e.Root)
	if len(e.Path) > 1 {
		msg += " (" + formatPath(e.Path) + ")"
	}
	return msg + ": " + e.Err.Error()
}

// Unwrap returns the error detected during resolution.
func (e ResolutionError) Unwrap() error { return e.Err }

func formatPath(path []reflect.Type) string {
	parts := make([]string, len(path))
	for i, t := range path {
		if t == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = t.String()
	}
	return strings.Join(parts, " -> ")
}

// ErrorKind classifies err into a short, stable label. It returns "" for nil
// and "other" for errors outside the resolution taxonomy.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	var (
		unregistered UnregisteredAbstractionError
		ambiguous    AmbiguousOrMissingConstructorError
		noCtor       NoAccessibleConstructorError
		unsupported  UnsupportedShapeError
		cyclic       CyclicTypeGraphError
		failed       ConstructorFailedError
		panicked     ConstructorPanicError
	)
	switch {
	case errors.As(err, &unregistered):
		return "unregistered_abstraction"
	case errors.As(err, &ambiguous):
		return "ambiguous_or_missing_constructor"
	case errors.As(err, &noCtor):
		return "no_accessible_constructor"
	case errors.As(err, &unsupported):
		return "unsupported_shape"
	case errors.As(err, &cyclic):
		return "cyclic_type_graph"
	case errors.As(err, &panicked):
		return "constructor_panic"
	case errors.As(err, &failed):
		return "constructor_failed"
	case errors.Is(err, ErrNilType):
		return "nil_type"
	default:
		return "other"
	}
}
