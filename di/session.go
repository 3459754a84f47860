package di

import (
	"reflect"
)

// Resolver is one resolution strategy over a descriptor. Nested types are always
// resolved through the Session, which routes them back to the outermost Resolver,
// so a decorating Resolver sees every node of the graph.
type Resolver interface {
	ResolveDescriptor(s *Session, d Descriptor) (reflect.Value, Strategy, error)
}

// Session is the state of one top-level request: the current path through the
// type graph and the Resolver nested types are routed to. It is not safe for
// concurrent use and must not outlive the request.
type Session struct {
	c        *Container
	outer    Resolver
	path     []reflect.Type
	failedAt []reflect.Type
}

// Container returns the container the session runs against.
func (s *Session) Container() *Container { return s.c }

// Depth returns the number of types currently being resolved.
func (s *Session) Depth() int { return len(s.path) }

// Path returns a copy of the chain of types currently being resolved.
func (s *Session) Path() []reflect.Type {
	return append([]reflect.Type(nil), s.path...)
}

// Resolve resolves t depth-first through the outermost Resolver.
func (s *Session) Resolve(t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, ErrNilType
	}
	if len(s.path) >= s.c.maxDepth {
		err := CyclicTypeGraphError{Path: append(s.Path(), t), MaxDepth: s.c.maxDepth}
		s.fail(err)
		return reflect.Value{}, err
	}

	d := describe(t, s.c.values)
	s.path = append(s.path, t)
	defer func() { s.path = s.path[:len(s.path)-1] }()

	v, strategy, err := s.outer.ResolveDescriptor(s, d)
	if err != nil {
		s.fail(err)
		return reflect.Value{}, err
	}

	s.c.log.Debug().
		Str("type", t.String()).
		Str("kind", d.Kind.String()).
		Str("strategy", strategy.String()).
		Int("depth", len(s.path)).
		Msg("resolved")
	s.c.observer.ObserveResolution(d, strategy)
	return v, nil
}

// fail remembers the path at the point of detection; outer frames see the error
// on the way up and must not overwrite it.
func (s *Session) fail(err error) {
	if s.failedAt != nil {
		return
	}
	s.failedAt = s.Path()
	s.c.log.Debug().
		Err(err).
		Str("path", formatPath(s.failedAt)).
		Msg("resolution failed")
}
