package di

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// NewTypeRegistry / Register
// -----------------------------------------------------------------------------

// TestNewTypeRegistry_Empty verifies NewTypeRegistry initializes an empty registry.
func TestNewTypeRegistry_Empty(t *testing.T) {
	t.Parallel()

	r := NewTypeRegistry()
	require.NotNil(t, r)
	require.NotNil(t, r.items)
	assert.Equal(t, 0, r.Count())
	assert.Empty(t, r.Entries())
}

// TestRegister_StoresMapping verifies Register stores the mapping and Lookup returns it.
func TestRegister_StoresMapping(t *testing.T) {
	t.Parallel()

	r := NewTypeRegistry()
	require.NoError(t, r.Register(storeType, memStoreType))

	got, ok := r.Lookup(storeType)
	require.True(t, ok)
	assert.Equal(t, memStoreType, got)
	assert.Equal(t, 1, r.Count())
}

// TestRegister_LastWriteWins verifies re-registering replaces the mapping but keeps its position.
func TestRegister_LastWriteWins(t *testing.T) {
	t.Parallel()

	r := NewTypeRegistry()
	require.NoError(t, r.Register(storeType, memStoreType))
	require.NoError(t, r.Register(reflect.TypeFor[any](), memStoreType))
	require.NoError(t, r.Register(storeType, reflect.TypeFor[*diskStore]()))

	assert.Equal(t, 2, r.Count())
	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, Registration{Abstraction: storeType, Concrete: reflect.TypeFor[*diskStore]()}, entries[0])
	assert.Equal(t, reflect.TypeFor[any](), entries[1].Abstraction)
}

// TestRegister_Rejects verifies nil types and non-assignable pairs are refused.
func TestRegister_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		abstraction reflect.Type
		concrete    reflect.Type
		wantNil     bool
	}{
		{name: "nil abstraction", concrete: memStoreType, wantNil: true},
		{name: "nil concrete", abstraction: storeType, wantNil: true},
		{name: "not implementing", abstraction: storeType, concrete: reflect.TypeFor[int]()},
		{name: "pointer receiver only", abstraction: storeType, concrete: reflect.TypeFor[diskStore]()},
		{name: "convertible across kinds", abstraction: reflect.TypeFor[string](), concrete: reflect.TypeFor[int]()},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := NewTypeRegistry()
			err := r.Register(tc.abstraction, tc.concrete)
			require.Error(t, err)

			if tc.wantNil {
				assert.ErrorIs(t, err, ErrNilType)
				return
			}
			var na NotAssignableError
			require.True(t, errors.As(err, &na))
			assert.Equal(t, tc.abstraction, na.Abstraction)
			assert.Equal(t, tc.concrete, na.Concrete)
			assert.Equal(t, 0, r.Count())
		})
	}
}

// TestRegister_ConvertibleNamedType verifies a named type over the same struct may stand in.
func TestRegister_ConvertibleNamedType(t *testing.T) {
	t.Parallel()

	r := NewTypeRegistry()
	require.NoError(t, r.Register(reflect.TypeFor[stockChecker](), reflect.TypeFor[generousChecker]()))

	got, ok := r.Lookup(reflect.TypeFor[stockChecker]())
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[generousChecker](), got)
}

//
// -----------------------------------------------------------------------------
// Lookup / MustLookup
// -----------------------------------------------------------------------------

// TestLookup_Missing verifies Lookup returns (nil,false) for missing and nil keys.
func TestLookup_Missing(t *testing.T) {
	t.Parallel()

	r := NewTypeRegistry()

	got, ok := r.Lookup(storeType)
	assert.False(t, ok)
	assert.Nil(t, got)

	got, ok = r.Lookup(nil)
	assert.False(t, ok)
	assert.Nil(t, got)
}

// TestMustLookup_Present verifies MustLookup returns the mapping when present.
func TestMustLookup_Present(t *testing.T) {
	t.Parallel()

	r := NewTypeRegistry()
	require.NoError(t, r.Register(storeType, memStoreType))

	assert.NotPanics(t, func() {
		assert.Equal(t, memStoreType, r.MustLookup(storeType))
	})
}

// TestMustLookup_PanicsWithTypedError verifies MustLookup panics with UnregisteredAbstractionError.
func TestMustLookup_PanicsWithTypedError(t *testing.T) {
	t.Parallel()

	r := NewTypeRegistry()

	defer func() {
		rec := recover()
		require.NotNil(t, rec)

		err, ok := rec.(UnregisteredAbstractionError)
		require.True(t, ok)
		assert.Equal(t, storeType, err.Type)
		assert.Contains(t, err.Error(), "is not registered")
	}()

	_ = r.MustLookup(storeType)
}

//
// -----------------------------------------------------------------------------
// standIn
// -----------------------------------------------------------------------------

// TestStandIn verifies values are adapted to the requested key type.
func TestStandIn(t *testing.T) {
	t.Parallel()

	same := reflect.ValueOf(memStore{})
	assert.Equal(t, memStoreType, standIn(same, memStoreType).Type())

	iface := standIn(same, storeType)
	assert.Equal(t, storeType, iface.Type())
	assert.Equal(t, "mem", iface.Interface().(store).Name())

	conv := standIn(reflect.ValueOf(generousChecker{Limit: 10}), reflect.TypeFor[stockChecker]())
	assert.Equal(t, stockChecker{Limit: 10}, conv.Interface())
}
