package di

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrorKind verifies every error in the taxonomy has a stable label, wrapped or not.
func TestErrorKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "unregistered", err: UnregisteredAbstractionError{Type: storeType}, want: "unregistered_abstraction"},
		{name: "ambiguous", err: AmbiguousOrMissingConstructorError{Type: memStoreType, Count: 2}, want: "ambiguous_or_missing_constructor"},
		{name: "no constructor", err: NoAccessibleConstructorError{Type: memStoreType}, want: "no_accessible_constructor"},
		{name: "unsupported", err: UnsupportedShapeError{Type: reflect.TypeFor[complex64]()}, want: "unsupported_shape"},
		{name: "cyclic", err: CyclicTypeGraphError{MaxDepth: 3}, want: "cyclic_type_graph"},
		{name: "panic", err: ConstructorPanicError{Type: memStoreType, Value: "x"}, want: "constructor_panic"},
		{name: "failed", err: ConstructorFailedError{Type: memStoreType, Err: errBoom}, want: "constructor_failed"},
		{name: "nil type", err: ErrNilType, want: "nil_type"},
		{
			name: "wrapped in resolution error",
			err:  ResolutionError{Root: storeType, Err: UnregisteredAbstractionError{Type: storeType}},
			want: "unregistered_abstraction",
		},
		{name: "wrapped with fmt", err: fmt.Errorf("boot: %w", CyclicTypeGraphError{}), want: "cyclic_type_graph"},
		{name: "foreign", err: errors.New("disk full"), want: "other"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ErrorKind(tc.err))
		})
	}
}

// TestErrorMessages verifies messages name the offending types.
func TestErrorMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "unregistered",
			err:  UnregisteredAbstractionError{Type: storeType},
			want: `di: abstraction "di.store" is not registered`,
		},
		{
			name: "ambiguous",
			err:  AmbiguousOrMissingConstructorError{Type: memStoreType, Count: 0},
			want: `di: type "di.memStore" must expose exactly one constructor, found 0`,
		},
		{
			name: "no constructor",
			err:  NoAccessibleConstructorError{Type: memStoreType},
			want: `di: no constructor found for type "di.memStore"`,
		},
		{
			name: "unsupported with reason",
			err:  UnsupportedShapeError{Type: reflect.TypeFor[uintptr](), Reason: "no generator"},
			want: `di: unsupported shape "uintptr": no generator`,
		},
		{
			name: "cyclic",
			err:  CyclicTypeGraphError{Path: []reflect.Type{reflect.TypeFor[loop](), reflect.TypeFor[*loop]()}, MaxDepth: 1},
			want: `di: resolution exceeded max depth 1 (cyclic type graph?): di.loop -> *di.loop`,
		},
		{
			name: "not assignable",
			err:  NotAssignableError{Abstraction: storeType, Concrete: reflect.TypeFor[int]()},
			want: `di: "int" is not assignable to "di.store"`,
		},
		{
			name: "constructor failed",
			err:  ConstructorFailedError{Type: memStoreType, Err: errBoom},
			want: `di: constructor for "di.memStore" failed: boom`,
		},
		{
			name: "resolution without path",
			err:  ResolutionError{Root: storeType, Path: []reflect.Type{storeType}, Err: errBoom},
			want: `di: resolve "di.store": boom`,
		},
		{
			name: "nil type renders",
			err:  UnregisteredAbstractionError{},
			want: `di: abstraction <nil> is not registered`,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

// TestResolutionError_Unwrap verifies errors.Is reaches through the wrapper chain.
func TestResolutionError_Unwrap(t *testing.T) {
	t.Parallel()

	err := ResolutionError{
		Root: memStoreType,
		Err:  ConstructorFailedError{Type: memStoreType, Err: errBoom},
	}
	assert.ErrorIs(t, err, errBoom)
}
