package di

import (
	"reflect"
	"time"

	"github.com/rs/zerolog"
)

// TypeResolver is implemented by anything that can produce a value for a type:
// the plain Container and the fixture that decorates it.
type TypeResolver interface {
	ResolveValue(t reflect.Type) (reflect.Value, error)
}

// Container resolves object graphs by constructor injection.
//
// It owns a TypeRegistry (abstraction -> concrete), a table of explicitly
// provided constructors, and the set of declared value types. Resolution is
// synchronous and recursive; a Container is not safe for concurrent mutation.
//
// Container is itself the plain Resolver: it consults the registry and the
// constructor table according to its Policy and has no synthesis capability.
type Container struct {
	registry *TypeRegistry
	ctors    constructorTable
	values   map[reflect.Type]struct{}
	policy   Policy
	maxDepth int
	log      zerolog.Logger
	observer Observer
}

var _ Resolver = (*Container)(nil)

// New returns an empty Container using CanonicalPolicy unless configured otherwise.
func New(opts ...Option) *Container {
	c := &Container{
		registry: NewTypeRegistry(),
		ctors:    newConstructorTable(),
		values:   defaultValueTypes(),
		policy:   CanonicalPolicy(),
		maxDepth: DefaultMaxDepth,
		log:      zerolog.Nop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Register maps abstraction to concrete. The last registration for a key wins.
func (c *Container) Register(abstraction, concrete reflect.Type) error {
	if err := c.registry.Register(abstraction, concrete); err != nil {
		return err
	}
	c.log.Debug().
		Str("abstraction", abstraction.String()).
		Str("concrete", concrete.String()).
		Msg("registered")
	return nil
}

// Provide adds an explicit constructor, func(P1..Pn) T or func(P1..Pn) (T, error),
// for T. Several constructors may be provided for the same T; whether that is an
// error is decided at resolution time by the Policy.
func (c *Container) Provide(ctor any) error {
	k, err := funcConstructor(ctor)
	if err != nil {
		return err
	}
	c.ctors.add(k)
	c.log.Debug().
		Str("type", k.Type.String()).
		Int("params", len(k.Params)).
		Msg("constructor provided")
	return nil
}

// DeclareValueType classifies t as KindStructLike from now on.
func (c *Container) DeclareValueType(t reflect.Type) {
	if t != nil {
		c.values[t] = struct{}{}
	}
}

// Registry exposes the container's TypeRegistry for diagnostics.
func (c *Container) Registry() *TypeRegistry { return c.registry }

// Policy returns the active resolution policy.
func (c *Container) Policy() Policy { return c.policy }

// MaxDepth returns the resolution depth limit.
func (c *Container) MaxDepth() int { return c.maxDepth }

// Logger returns the container's logger.
func (c *Container) Logger() zerolog.Logger { return c.log }

// Describe classifies t.
func (c *Container) Describe(t reflect.Type) (Descriptor, error) {
	if t == nil {
		return Descriptor{}, ErrNilType
	}
	return describe(t, c.values), nil
}

// Constructors lists the constructors that would be considered for t.
func (c *Container) Constructors(t reflect.Type) []Constructor {
	if t == nil {
		return nil
	}
	return c.ctors.candidates(describe(t, c.values))
}

// HasConstructor reports whether an explicit constructor was provided for t.
func (c *Container) HasConstructor(t reflect.Type) bool {
	return t != nil && c.ctors.has(t)
}

// ResolveValue resolves t with the plain strategy.
func (c *Container) ResolveValue(t reflect.Type) (reflect.Value, error) {
	return c.ResolveWith(c, t)
}

// ResolveWith resolves t, routing every node of the graph through outer.
func (c *Container) ResolveWith(outer Resolver, t reflect.Type) (reflect.Value, error) {
	return c.Execute(outer, t, func(s *Session) (reflect.Value, error) {
		return s.Resolve(t)
	})
}

// Execute runs fn as one top-level request rooted at root. Failures are wrapped
// in ResolutionError and reported to the Observer.
func (c *Container) Execute(outer Resolver, root reflect.Type, fn func(*Session) (reflect.Value, error)) (reflect.Value, error) {
	if outer == nil {
		outer = c
	}
	start := time.Now()
	s := &Session{c: c, outer: outer}

	v, err := fn(s)
	c.observer.ObserveRequest(root, time.Since(start), err)
	if err != nil {
		return reflect.Value{}, ResolutionError{Root: root, Path: s.failedAt, Err: err}
	}
	return v, nil
}

// ResolveDescriptor implements Resolver with the registry and constructor
// strategies, ordered by the container's Precedence.
func (c *Container) ResolveDescriptor(s *Session, d Descriptor) (reflect.Value, Strategy, error) {
	if c.policy.Precedence == ConcreteFirst && d.Kind == KindConcrete {
		v, err := c.construct(s, d)
		return v, StrategyConstructor, err
	}

	if concrete, ok := c.registry.Lookup(d.Type); ok {
		v, err := s.Resolve(concrete)
		if err != nil {
			return reflect.Value{}, StrategyRegistry, err
		}
		return standIn(v, d.Type), StrategyRegistry, nil
	}
	if d.Kind == KindAbstraction && !d.Nullable && !c.ctors.has(d.Type) {
		return reflect.Value{}, StrategyRegistry, UnregisteredAbstractionError{Type: d.Type}
	}

	v, err := c.construct(s, d)
	return v, StrategyConstructor, err
}

// construct selects a constructor for d, resolves its parameters left to right
// and invokes it.
func (c *Container) construct(s *Session, d Descriptor) (reflect.Value, error) {
	k, err := c.policy.selectConstructor(d, c.ctors.candidates(d))
	if err != nil {
		return reflect.Value{}, err
	}

	args := make([]reflect.Value, len(k.Params))
	for i, p := range k.Params {
		v, err := s.Resolve(p)
		if err != nil {
			return reflect.Value{}, err
		}
		args[i] = v
	}
	return k.Call(args)
}
