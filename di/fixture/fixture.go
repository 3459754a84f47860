package fixture

import (
	"errors"
	"reflect"
	"strconv"

	"github.com/sghaida/graphioc/di"
)

var (
	// ErrNilInstance is returned by Pin for a nil value.
	ErrNilInstance = errors.New("fixture: cannot pin nil instance")

	// ErrNegativeCount is returned by CreateMany for a negative count.
	ErrNegativeCount = errors.New("fixture: negative count")
)

// Fixture decorates a di.Container with synthesis and pinning.
//
// For every node of the graph the fixture checks, in order:
//
//  1. pinned instances (Freeze/Pin), returned as is
//  2. pointers, unwrapped: *T is built from a T resolved back through the fixture
//  3. slices, arrays and maps, filled with recursively resolved elements
//  4. primitives and value types, produced by a Generator
//
// Everything else (interfaces, structs, funcs) is handed to the container, whose
// nested parameter resolutions come back through the fixture.
type Fixture struct {
	*di.Container

	gens     *Generators
	src      *Source
	frozen   map[reflect.Type]reflect.Value
	minCount int
	maxCount int
}

var (
	_ di.Resolver     = (*Fixture)(nil)
	_ di.TypeResolver = (*Fixture)(nil)
)

// New returns a Fixture over a fresh container.
func New(opts ...Option) *Fixture {
	s := defaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return wrap(di.New(s.containerOpts...), s)
}

// Wrap decorates an existing container. Registrations and constructors already
// on c are used as is.
func Wrap(c *di.Container, opts ...Option) *Fixture {
	s := defaultSettings()
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return wrap(c, s)
}

func wrap(c *di.Container, s settings) *Fixture {
	gens := DefaultGenerators()
	for t, g := range s.types {
		gens.SetType(t, g)
	}
	for k, g := range s.kinds {
		gens.SetKind(k, g)
	}
	for _, t := range gens.Types() {
		c.DeclareValueType(t)
	}

	return &Fixture{
		Container: c,
		gens:      gens,
		src:       newSource(s.seed, s.seeded, s.now),
		frozen:    map[reflect.Type]reflect.Value{},
		minCount:  s.minCount,
		maxCount:  s.maxCount,
	}
}

// Source exposes the fixture's randomness, e.g. for custom generators in tests.
func (f *Fixture) Source() *Source { return f.src }

// Pin records v under its dynamic type. Every later resolution of that type,
// including nested ones, returns v itself. Pinning again replaces v.
func (f *Fixture) Pin(v any) error {
	if v == nil {
		return ErrNilInstance
	}
	rv := reflect.ValueOf(v)
	f.frozen[rv.Type()] = rv
	l := f.Logger()
	l.Debug().Str("type", rv.Type().String()).Msg("pinned")
	return nil
}

// Frozen reports whether an instance is pinned for t.
func (f *Fixture) Frozen(t reflect.Type) bool {
	_, ok := f.frozen[t]
	return ok
}

// ResolveValue resolves t with the fixture as the outermost strategy.
func (f *Fixture) ResolveValue(t reflect.Type) (reflect.Value, error) {
	return f.Container.ResolveWith(f, t)
}

// CreateType resolves t and returns the value as any.
func (f *Fixture) CreateType(t reflect.Type) (any, error) {
	v, err := f.ResolveValue(t)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// ResolveDescriptor implements di.Resolver.
func (f *Fixture) ResolveDescriptor(s *di.Session, d di.Descriptor) (reflect.Value, di.Strategy, error) {
	if v, ok := f.frozen[d.Type]; ok {
		return v, di.StrategyOverride, nil
	}
	if d.Nullable {
		return f.Container.ResolveDescriptor(s, d)
	}

	switch d.Kind {
	case di.KindSequence:
		n := d.Len
		if n < 0 {
			n = f.count()
		}
		v, err := f.sequence(s, d.Type, n)
		return v, di.StrategySequence, err
	case di.KindMap:
		v, err := f.mapping(s, d, f.count())
		return v, di.StrategyMap, err
	case di.KindPrimitive, di.KindStructLike:
		v, err := f.synthesize(d)
		return v, di.StrategySynthesis, err
	default:
		return f.Container.ResolveDescriptor(s, d)
	}
}

func (f *Fixture) count() int {
	return f.src.Between(f.minCount, f.maxCount)
}

// sequence fills a slice (n elements) or an array (all elements) of type t.
func (f *Fixture) sequence(s *di.Session, t reflect.Type, n int) (reflect.Value, error) {
	elem := t.Elem()
	if t.Kind() == reflect.Array {
		out := reflect.New(t).Elem()
		for i := 0; i < t.Len(); i++ {
			v, err := s.Resolve(elem)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(v)
		}
		return out, nil
	}

	out := reflect.MakeSlice(t, 0, n)
	for i := 0; i < n; i++ {
		v, err := s.Resolve(elem)
		if err != nil {
			return reflect.Value{}, err
		}
		out = reflect.Append(out, v)
	}
	return out, nil
}

// mapping inserts n freshly resolved key/value pairs. Colliding keys overwrite
// earlier entries, so the result may hold fewer than n entries.
func (f *Fixture) mapping(s *di.Session, d di.Descriptor, n int) (reflect.Value, error) {
	out := reflect.MakeMapWithSize(d.Type, n)
	for i := 0; i < n; i++ {
		k, err := s.Resolve(d.Key)
		if err != nil {
			return reflect.Value{}, err
		}
		v, err := s.Resolve(d.Elem)
		if err != nil {
			return reflect.Value{}, err
		}
		if err := setMapIndex(out, k, v); err != nil {
			return reflect.Value{}, err
		}
	}
	return out, nil
}

// setMapIndex recovers the panic reflect raises for unhashable dynamic keys.
func setMapIndex(m, k, v reflect.Value) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = di.UnsupportedShapeError{Type: m.Type(), Reason: "unhashable key " + k.Type().String()}
		}
	}()
	m.SetMapIndex(k, v)
	return nil
}

func (f *Fixture) synthesize(d di.Descriptor) (reflect.Value, error) {
	gen, ok := f.gens.lookup(d.Type)
	if !ok {
		return reflect.Value{}, di.UnsupportedShapeError{Type: d.Type, Reason: "no generator for kind " + d.Type.Kind().String()}
	}

	raw := reflect.ValueOf(gen(f.src))
	switch {
	case !raw.IsValid():
		return reflect.Value{}, di.UnsupportedShapeError{Type: d.Type, Reason: "generator returned nil"}
	case raw.Type() == d.Type:
		return raw, nil
	case raw.Kind() == d.Type.Kind() && raw.Type().ConvertibleTo(d.Type):
		return raw.Convert(d.Type), nil
	default:
		return reflect.Value{}, di.UnsupportedShapeError{
			Type:   d.Type,
			Reason: "generator produced " + strconv.Quote(raw.Type().String()),
		}
	}
}
