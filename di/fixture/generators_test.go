package fixture

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type money struct {
	Amount int
}

//
// -----------------------------------------------------------------------------
// Defaults
// -----------------------------------------------------------------------------

// TestDefaultGenerators_Ranges verifies the value ranges of the built-in generators.
func TestDefaultGenerators_Ranges(t *testing.T) {
	t.Parallel()

	f := New(WithSeed(7), WithClock(clock))
	seenTrue, seenFalse := false, false

	for i := 0; i < 200; i++ {
		r := MustCreate[rune](f)
		assert.GreaterOrEqual(t, r, rune(33))
		assert.LessOrEqual(t, r, rune(126))

		fl := MustCreate[float64](f)
		assert.GreaterOrEqual(t, fl, 0.0)
		assert.Less(t, fl, 1e6)

		ts := MustCreate[time.Time](f)
		assert.WithinDuration(t, fixedClock, ts, 100*time.Millisecond)

		if MustCreate[bool](f) {
			seenTrue = true
		} else {
			seenFalse = true
		}
	}
	assert.True(t, seenTrue)
	assert.True(t, seenFalse)
}

// TestDefaultGenerators_Decimal verifies decimals carry two decimal places and stay below 1e6.
func TestDefaultGenerators_Decimal(t *testing.T) {
	t.Parallel()

	f := New(WithSeed(8))
	limit := apd.New(1_000_000, 0)

	for i := 0; i < 50; i++ {
		d := MustCreate[apd.Decimal](f)
		assert.Equal(t, int32(-2), d.Exponent)
		assert.False(t, d.Negative)
		assert.Equal(t, -1, d.Cmp(limit))
	}
}

// TestDefaultGenerators_Strfmt verifies the strfmt value types are valid formats.
func TestDefaultGenerators_Strfmt(t *testing.T) {
	t.Parallel()

	f := New()

	email := MustCreate[strfmt.Email](f)
	assert.True(t, strfmt.IsEmail(string(email)))
	assert.True(t, strings.HasSuffix(string(email), "@example.com"))

	id := MustCreate[strfmt.UUID](f)
	assert.True(t, strfmt.IsUUID4(string(id)))

	dt := MustCreate[strfmt.DateTime](f)
	assert.False(t, time.Time(dt).IsZero())
}

//
// -----------------------------------------------------------------------------
// Overrides
// -----------------------------------------------------------------------------

// TestWithGenerator_Type verifies a type generator turns a record into a value type.
func TestWithGenerator_Type(t *testing.T) {
	t.Parallel()

	f := New(WithGenerator(reflect.TypeFor[money](), func(src *Source) any {
		return money{Amount: src.Between(10, 20)}
	}))

	m := MustCreate[money](f)
	assert.GreaterOrEqual(t, m.Amount, 10)
	assert.LessOrEqual(t, m.Amount, 20)

	d, err := f.Describe(reflect.TypeFor[money]())
	require.NoError(t, err)
	assert.Equal(t, "struct_like", d.Kind.String())
}

// TestWithGenerator_NamedType verifies a generator for a named primitive wins over its kind.
func TestWithGenerator_NamedType(t *testing.T) {
	t.Parallel()

	f := New(WithGenerator(reflect.TypeFor[sku](), func(*Source) any { return "SKU-1" }))

	assert.Equal(t, sku("SKU-1"), MustCreate[sku](f))
	assert.Len(t, MustCreate[string](f), 32)
}

// TestWithKindGenerator verifies kind generators serve every type of that kind.
func TestWithKindGenerator(t *testing.T) {
	t.Parallel()

	f := New(WithKindGenerator(reflect.String, func(*Source) any { return "x" }))

	assert.Equal(t, "x", MustCreate[string](f))
	assert.Equal(t, sku("x"), MustCreate[sku](f))
}

// TestWithKindGenerator_Int32 verifies int32 defaults to printable ASCII and
// a kind generator restores full-range values.
func TestWithKindGenerator_Int32(t *testing.T) {
	t.Parallel()

	v := MustCreate[int32](New())
	assert.GreaterOrEqual(t, v, int32(33))
	assert.LessOrEqual(t, v, int32(126))

	f := New(WithKindGenerator(reflect.Int32, func(*Source) any { return int32(-70000) }))
	assert.Equal(t, int32(-70000), MustCreate[int32](f))
}

// TestSynthesize_BadGenerator verifies mismatched or nil generator output is rejected.
func TestSynthesize_BadGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		gen  Generator
	}{
		{name: "nil", gen: func(*Source) any { return nil }},
		{name: "wrong kind", gen: func(*Source) any { return 42 }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := New(WithGenerator(reflect.TypeFor[sku](), tc.gen))
			_, err := Create[sku](f)
			assert.Error(t, err)
		})
	}
}

// TestSource_Between verifies the inclusive range and degenerate bounds.
func TestSource_Between(t *testing.T) {
	t.Parallel()

	src := newSource(1, true, nil)
	for i := 0; i < 100; i++ {
		n := src.Between(2, 6)
		assert.GreaterOrEqual(t, n, 2)
		assert.LessOrEqual(t, n, 6)
	}
	assert.Equal(t, 3, src.Between(3, 3))
	assert.Equal(t, 5, src.Between(5, 1))
}
