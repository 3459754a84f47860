package fixture

import (
	"reflect"
	"time"

	"github.com/sghaida/graphioc/di"
)

const (
	// DefaultMinCollection is the smallest synthesized slice or map.
	DefaultMinCollection = 2
	// DefaultMaxCollection is the largest synthesized slice or map.
	DefaultMaxCollection = 6
)

type settings struct {
	seed          uint64
	seeded        bool
	minCount      int
	maxCount      int
	now           func() time.Time
	containerOpts []di.Option
	types         map[reflect.Type]Generator
	kinds         map[reflect.Kind]Generator
}

func defaultSettings() settings {
	return settings{
		minCount: DefaultMinCollection,
		maxCount: DefaultMaxCollection,
		types:    map[reflect.Type]Generator{},
		kinds:    map[reflect.Kind]Generator{},
	}
}

// Option configures a Fixture.
type Option func(*settings)

// WithSeed makes the fixture's random stream reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
		s.seeded = true
	}
}

// WithCollectionRange sets the inclusive size range of synthesized slices and
// maps. Invalid ranges (min < 0 or max < min) are ignored.
func WithCollectionRange(min, max int) Option {
	return func(s *settings) {
		if min < 0 || max < min {
			return
		}
		s.minCount, s.maxCount = min, max
	}
}

// WithClock replaces time.Now as the base of synthesized timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithContainerOptions configures the container New creates. Ignored by Wrap.
func WithContainerOptions(opts ...di.Option) Option {
	return func(s *settings) { s.containerOpts = append(s.containerOpts, opts...) }
}

// WithGenerator adds or replaces the generator for exactly t. t becomes a value type.
func WithGenerator(t reflect.Type, gen Generator) Option {
	return func(s *settings) {
		if t != nil && gen != nil {
			s.types[t] = gen
		}
	}
}

// WithKindGenerator adds or replaces the generator for primitive kind k.
func WithKindGenerator(k reflect.Kind, gen Generator) Option {
	return func(s *settings) {
		if gen != nil {
			s.kinds[k] = gen
		}
	}
}
