package di

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a type for resolution. Every reflect.Type maps to exactly one Kind.
type Kind uint8

const (
	KindInvalid Kind = iota
	// KindPrimitive covers booleans, integers, floats, complex numbers and strings,
	// including named types defined over them.
	KindPrimitive
	// KindStructLike covers declared value types such as time.Time or uuid.UUID
	// that are produced whole rather than constructed from parts.
	KindStructLike
	// KindSequence covers slices and arrays.
	KindSequence
	// KindMap covers maps.
	KindMap
	// KindAbstraction covers interfaces.
	KindAbstraction
	// KindConcrete covers everything built through a constructor: structs, funcs, chans.
	KindConcrete
)

var kindNames = [...]string{
	KindInvalid:     "invalid",
	KindPrimitive:   "primitive",
	KindStructLike:  "struct_like",
	KindSequence:    "sequence",
	KindMap:         "map",
	KindAbstraction: "abstraction",
	KindConcrete:    "concrete",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Descriptor is the classified view of a type the resolver works with.
//
// A pointer type is Nullable: its Kind is the Kind of the pointee and Elem is the
// pointee. For sequences Elem is the element type and Len is the array length
// (-1 for slices). For maps Key and Elem are the key and value types.
type Descriptor struct {
	Type     reflect.Type
	Kind     Kind
	Nullable bool
	Elem     reflect.Type
	Key      reflect.Type
	Len      int
}

// String returns the type name and kind, e.g. "*sales.Customer(concrete, nullable)".
func (d Descriptor) String() string {
	if d.Type == nil {
		return "<nil>(" + d.Kind.String() + ")"
	}
	s := d.Type.String() + "(" + d.Kind.String()
	if d.Nullable {
		s += ", nullable"
	}
	return s + ")"
}

// defaultValueTypes are classified as KindStructLike by every container.
func defaultValueTypes() map[reflect.Type]struct{} {
	return map[reflect.Type]struct{}{
		reflect.TypeFor[time.Time]():  {},
		reflect.TypeFor[uuid.UUID](): {},
	}
}

// describe classifies t. Value types take precedence over the reflect kind, so
// uuid.UUID is struct-like rather than a 16 element array.
func describe(t reflect.Type, values map[reflect.Type]struct{}) Descriptor {
	d := Descriptor{Type: t, Len: -1}
	if _, ok := values[t]; ok {
		d.Kind = KindStructLike
		return d
	}

	switch t.Kind() {
	case reflect.Pointer:
		d.Nullable = true
		d.Elem = t.Elem()
		d.Kind = describe(t.Elem(), values).Kind
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		d.Kind = KindPrimitive
	case reflect.Interface:
		d.Kind = KindAbstraction
	case reflect.Slice:
		d.Kind = KindSequence
		d.Elem = t.Elem()
	case reflect.Array:
		d.Kind = KindSequence
		d.Elem = t.Elem()
		d.Len = t.Len()
	case reflect.Map:
		d.Kind = KindMap
		d.Key = t.Key()
		d.Elem = t.Elem()
	default:
		// struct, func, chan, unsafe.Pointer
		d.Kind = KindConcrete
	}
	return d
}
