package di

import (
	"reflect"
)

// Register maps interface I to concrete type C in c.
//
// Example:
//
//	di.Register[sales.ProductDatabase, *sales.InventoryDatabase](c)
func Register[I any, C any](c *Container) error {
	return c.Register(reflect.TypeFor[I](), reflect.TypeFor[C]())
}

// MustRegister is Register that panics on error. Useful in composition roots
// and tests where a bad registration is a programming error.
func MustRegister[I any, C any](c *Container) {
	if err := Register[I, C](c); err != nil {
		panic(err)
	}
}

// MustProvide is (*Container).Provide that panics on error.
func MustProvide(c *Container, ctor any) {
	if err := c.Provide(ctor); err != nil {
		panic(err)
	}
}

// Resolve resolves T through r.
func Resolve[T any](r TypeResolver) (T, error) {
	var out T
	v, err := r.ResolveValue(reflect.TypeFor[T]())
	if err != nil {
		return out, err
	}
	assign(&out, v)
	return out, nil
}

// MustResolve resolves T or panics.
func MustResolve[T any](r TypeResolver) T {
	v, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	return v
}

// assign stores v into *dst, converting through the interface type when T is one.
func assign[T any](dst *T, v reflect.Value) {
	if !v.IsValid() {
		return
	}
	reflect.ValueOf(dst).Elem().Set(v)
}

// As copies a resolved value into T. It is the building block for typed helpers
// in packages that decorate the Container.
func As[T any](v reflect.Value) T {
	var out T
	assign(&out, v)
	return out
}
