package di

import (
	"reflect"
)

// Registration is a single abstraction -> concrete mapping in a TypeRegistry snapshot.
type Registration struct {
	Abstraction reflect.Type
	Concrete    reflect.Type
}

// TypeRegistry maps an abstraction type to the concrete type chosen to implement it.
//
// It is intentionally:
// - owned by exactly one Container
// - last write wins (re-registering silently replaces the mapping)
// - not safe for concurrent mutation
//
// Expected usage:
//
//	err := reg.Register(reflect.TypeFor[Store](), reflect.TypeFor[*MemStore]())
//	concrete, ok := reg.Lookup(reflect.TypeFor[Store]())
type TypeRegistry struct {
	items map[reflect.Type]reflect.Type
	order []reflect.Type
}

// NewTypeRegistry returns an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{items: map[reflect.Type]reflect.Type{}}
}

// Register records or replaces the mapping for abstraction.
//
// concrete must be assignable to abstraction. For non-interface keys a concrete
// type convertible to the key (a named type over the same underlying type) is
// also accepted; the resolved value is converted back to the key type.
func (r *TypeRegistry) Register(abstraction, concrete reflect.Type) error {
	if abstraction == nil || concrete == nil {
		return ErrNilType
	}
	if !canStandIn(abstraction, concrete) {
		return NotAssignableError{Abstraction: abstraction, Concrete: concrete}
	}
	if _, exists := r.items[abstraction]; !exists {
		r.order = append(r.order, abstraction)
	}
	r.items[abstraction] = concrete
	return nil
}

// Lookup returns the concrete type registered for abstraction.
func (r *TypeRegistry) Lookup(abstraction reflect.Type) (reflect.Type, bool) {
	if abstraction == nil {
		return nil, false
	}
	t, ok := r.items[abstraction]
	return t, ok
}

// MustLookup returns the concrete type or panics with a helpful message.
// Useful in tests where a missing registration should fail fast.
func (r *TypeRegistry) MustLookup(abstraction reflect.Type) reflect.Type {
	t, ok := r.Lookup(abstraction)
	if !ok {
		panic(UnregisteredAbstractionError{Type: abstraction})
	}
	return t
}

// Entries returns a snapshot of the registrations in first-registration order.
func (r *TypeRegistry) Entries() []Registration {
	out := make([]Registration, 0, len(r.order))
	for _, a := range r.order {
		out = append(out, Registration{Abstraction: a, Concrete: r.items[a]})
	}
	return out
}

// Count returns the number of registered abstractions.
func (r *TypeRegistry) Count() int { return len(r.items) }

func canStandIn(abstraction, concrete reflect.Type) bool {
	if concrete.AssignableTo(abstraction) {
		return true
	}
	// int -> string is convertible in Go but is not a stand-in.
	return abstraction.Kind() != reflect.Interface &&
		abstraction.Kind() == concrete.Kind() &&
		concrete.ConvertibleTo(abstraction)
}

// standIn converts v, produced for a registered concrete type, into a value of type t.
func standIn(v reflect.Value, t reflect.Type) reflect.Value {
	switch {
	case v.Type() == t:
		return v
	case v.Type().AssignableTo(t):
		out := reflect.New(t).Elem()
		out.Set(v)
		return out
	default:
		return v.Convert(t)
	}
}
