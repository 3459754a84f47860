package di

import (
	"reflect"

	"github.com/rs/zerolog"
)

// DefaultMaxDepth bounds the resolution graph depth when no explicit limit is set.
const DefaultMaxDepth = 64

// Option configures a Container.
type Option func(*Container)

// WithPolicy selects the precedence and constructor selection rules.
func WithPolicy(p Policy) Option {
	return func(c *Container) { c.policy = p }
}

// WithMaxDepth bounds how deep a single resolution may recurse. Values <= 0 use
// DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(c *Container) {
		if n <= 0 {
			n = DefaultMaxDepth
		}
		c.maxDepth = n
	}
}

// WithLogger sets the logger used for per-node debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Container) { c.log = l }
}

// WithObserver installs an Observer. A nil observer is ignored.
func WithObserver(o Observer) Option {
	return func(c *Container) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithValueTypes declares additional struct-like value types.
func WithValueTypes(types ...reflect.Type) Option {
	return func(c *Container) {
		for _, t := range types {
			c.DeclareValueType(t)
		}
	}
}
