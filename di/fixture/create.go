package fixture

import (
	"reflect"

	"github.com/sghaida/graphioc/di"
)

// Create resolves a fully populated T. Registrations and constructors of the
// underlying container apply; everything they cannot build is synthesized.
func Create[T any](f *Fixture) (T, error) {
	return di.Resolve[T](f)
}

// MustCreate is Create that panics on error.
func MustCreate[T any](f *Fixture) T {
	return di.MustResolve[T](f)
}

// CreateMany resolves n independent instances of T in one request. n == 0 yields
// an empty, non-nil slice.
func CreateMany[T any](f *Fixture, n int) ([]T, error) {
	if n < 0 {
		return nil, ErrNegativeCount
	}
	t := reflect.TypeFor[[]T]()
	v, err := f.Execute(f, t, func(s *di.Session) (reflect.Value, error) {
		return f.sequence(s, t, n)
	})
	if err != nil {
		return nil, err
	}
	return di.As[[]T](v), nil
}

// Freeze pins v for T: every later resolution of T, nested or not, returns v.
// Unlike Pin, the key is the static type T, so an interface can be frozen to
// one implementation.
func Freeze[T any](f *Fixture, v T) T {
	rv := reflect.ValueOf(&v).Elem()
	t := reflect.TypeFor[T]()
	f.frozen[t] = rv
	l := f.Logger()
	l.Debug().Str("type", t.String()).Msg("frozen")
	return v
}

// FreezeNew creates a T, freezes it and returns it.
func FreezeNew[T any](f *Fixture) (T, error) {
	v, err := Create[T](f)
	if err != nil {
		return v, err
	}
	return Freeze(f, v), nil
}
