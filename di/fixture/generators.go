package fixture

import (
	"encoding/hex"
	"reflect"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

const (
	// decimalScale is the upper bound of synthesized floats and decimals.
	decimalScale = 1_000_000
	// tick is the unit of the timestamp perturbation.
	tick = 100 * time.Nanosecond
	// maxTicks bounds the timestamp perturbation in either direction.
	maxTicks = 1_000_000
)

// Generator produces one random value. The value may be of a type convertible to
// the requested one (a generator for reflect.String serves every named string type).
type Generator func(src *Source) any

// Generators maps types and kinds to generators. Type entries win over kind
// entries; every type entry is declared as a value type on the container.
type Generators struct {
	byType map[reflect.Type]Generator
	byKind map[reflect.Kind]Generator
}

// NewGenerators returns an empty table.
func NewGenerators() *Generators {
	return &Generators{
		byType: map[reflect.Type]Generator{},
		byKind: map[reflect.Kind]Generator{},
	}
}

// DefaultGenerators returns the built-in table:
//
//	uuid.UUID, strfmt.UUID  fresh random UUID
//	string                  hex rendering of a fresh UUID
//	int, int8..int64        uniform over the full range (int32 excepted)
//	int32 (rune)            printable ASCII, 33..126 (for every int32)
//	uint, uint8..uint64     uniform over the full range
//	float32, float64        uniform in [0, 1e6)
//	apd.Decimal             uniform in [0, 1e6) with two decimal places
//	bool                    uniform
//	time.Time, DateTime     now, perturbed by up to ±1e6 ticks of 100ns
//	strfmt.Email            <hex>@example.com
func DefaultGenerators() *Generators {
	g := NewGenerators()

	g.SetKind(reflect.Bool, func(src *Source) any { return src.Rand().IntN(2) == 0 })
	g.SetKind(reflect.Int, func(src *Source) any { return int(src.Rand().Uint64()) })
	g.SetKind(reflect.Int8, func(src *Source) any { return int8(src.Rand().Uint64()) })
	g.SetKind(reflect.Int16, func(src *Source) any { return int16(src.Rand().Uint64()) })
	// rune is an alias of int32, so every int32 gets printable ASCII; override
	// with WithKindGenerator(reflect.Int32, ...) for full-range integers.
	g.SetKind(reflect.Int32, func(src *Source) any { return rune(src.Between(33, 126)) })
	g.SetKind(reflect.Int64, func(src *Source) any { return int64(src.Rand().Uint64()) })
	g.SetKind(reflect.Uint, func(src *Source) any { return uint(src.Rand().Uint64()) })
	g.SetKind(reflect.Uint8, func(src *Source) any { return uint8(src.Rand().Uint64()) })
	g.SetKind(reflect.Uint16, func(src *Source) any { return uint16(src.Rand().Uint64()) })
	g.SetKind(reflect.Uint32, func(src *Source) any { return src.Rand().Uint32() })
	g.SetKind(reflect.Uint64, func(src *Source) any { return src.Rand().Uint64() })
	g.SetKind(reflect.Float32, func(src *Source) any { return float32(src.Rand().Float64() * decimalScale) })
	g.SetKind(reflect.Float64, func(src *Source) any { return src.Rand().Float64() * decimalScale })
	g.SetKind(reflect.String, func(src *Source) any { return text(src) })

	g.SetType(reflect.TypeFor[uuid.UUID](), func(src *Source) any { return src.UUID() })
	g.SetType(reflect.TypeFor[time.Time](), func(src *Source) any { return timestamp(src) })
	g.SetType(reflect.TypeFor[apd.Decimal](), func(src *Source) any { return decimal(src) })
	g.SetType(reflect.TypeFor[strfmt.UUID](), func(src *Source) any { return strfmt.UUID(src.UUID().String()) })
	g.SetType(reflect.TypeFor[strfmt.DateTime](), func(src *Source) any { return strfmt.DateTime(timestamp(src)) })
	g.SetType(reflect.TypeFor[strfmt.Email](), func(src *Source) any { return strfmt.Email(text(src) + "@example.com") })

	return g
}

// SetType installs gen for exactly t.
func (g *Generators) SetType(t reflect.Type, gen Generator) {
	if t == nil || gen == nil {
		return
	}
	g.byType[t] = gen
}

// SetKind installs gen for every primitive type of kind k without a type entry.
func (g *Generators) SetKind(k reflect.Kind, gen Generator) {
	if gen == nil {
		return
	}
	g.byKind[k] = gen
}

// Types lists the types with an exact generator.
func (g *Generators) Types() []reflect.Type {
	out := make([]reflect.Type, 0, len(g.byType))
	for t := range g.byType {
		out = append(out, t)
	}
	return out
}

func (g *Generators) lookup(t reflect.Type) (Generator, bool) {
	if gen, ok := g.byType[t]; ok {
		return gen, true
	}
	gen, ok := g.byKind[t.Kind()]
	return gen, ok
}

func text(src *Source) string {
	u := src.UUID()
	return hex.EncodeToString(u[:])
}

func timestamp(src *Source) time.Time {
	offset := src.Rand().Int64N(2*maxTicks+1) - maxTicks
	return src.Now().UTC().Add(time.Duration(offset) * tick)
}

func decimal(src *Source) apd.Decimal {
	var d apd.Decimal
	d.SetFinite(src.Rand().Int64N(decimalScale*100), -2)
	return d
}
