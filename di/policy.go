package di

import (
	"errors"
	"fmt"
	"strconv"
)

// Precedence decides which strategy wins when a type is both registered and
// constructible on its own.
type Precedence uint8

const (
	// RegistrationFirst consults the TypeRegistry before anything else; a
	// registered mapping wins over direct construction.
	RegistrationFirst Precedence = iota
	// ConcreteFirst constructs concrete types directly and only consults the
	// TypeRegistry for abstractions.
	ConcreteFirst
)

// String returns the name of the precedence rule.
func (p Precedence) String() string {
	switch p {
	case RegistrationFirst:
		return "registration-first"
	case ConcreteFirst:
		return "concrete-first"
	default:
		return "precedence(" + strconv.Itoa(int(p)) + ")"
	}
}

// Selection decides which constructor drives resolution of a concrete type.
type Selection uint8

const (
	// SingleConstructor requires exactly one constructor and fails with
	// AmbiguousOrMissingConstructorError otherwise.
	SingleConstructor Selection = iota
	// FewestParameters picks the constructor with the fewest parameters (first
	// registered wins a tie) and fails with NoAccessibleConstructorError only
	// when there is none.
	FewestParameters
)

// String returns the name of the selection rule.
func (s Selection) String() string {
	switch s {
	case SingleConstructor:
		return "single-constructor"
	case FewestParameters:
		return "fewest-parameters"
	default:
		return "selection(" + strconv.Itoa(int(s)) + ")"
	}
}

// Policy is the pair of rules a Container resolves with. The two axes are
// independent; CanonicalPolicy and AlternatePolicy are the named presets.
type Policy struct {
	Precedence Precedence
	Selection  Selection
}

// CanonicalPolicy prefers registrations and requires a single constructor.
func CanonicalPolicy() Policy {
	return Policy{Precedence: RegistrationFirst, Selection: SingleConstructor}
}

// AlternatePolicy prefers direct construction and picks the constructor with the
// fewest parameters.
func AlternatePolicy() Policy {
	return Policy{Precedence: ConcreteFirst, Selection: FewestParameters}
}

// ErrUnknownPolicy is returned by ParsePolicy for unrecognized names.
var ErrUnknownPolicy = errors.New("di: unknown policy")

// ParsePolicy maps "canonical" and "alternate" to their presets.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "canonical":
		return CanonicalPolicy(), nil
	case "alternate":
		return AlternatePolicy(), nil
	default:
		return Policy{}, fmt.Errorf("%w %q", ErrUnknownPolicy, name)
	}
}

// String returns "canonical", "alternate", or "<precedence>/<selection>".
func (p Policy) String() string {
	switch p {
	case CanonicalPolicy():
		return "canonical"
	case AlternatePolicy():
		return "alternate"
	default:
		return p.Precedence.String() + "/" + p.Selection.String()
	}
}

// selectConstructor applies the selection rule to the candidates for d.
func (p Policy) selectConstructor(d Descriptor, candidates []Constructor) (Constructor, error) {
	if p.Selection == FewestParameters {
		if len(candidates) == 0 {
			return Constructor{}, NoAccessibleConstructorError{Type: d.Type}
		}
		best := candidates[0]
		for _, k := range candidates[1:] {
			if len(k.Params) < len(best.Params) {
				best = k
			}
		}
		return best, nil
	}

	if len(candidates) != 1 {
		return Constructor{}, AmbiguousOrMissingConstructorError{Type: d.Type, Count: len(candidates)}
	}
	return candidates[0], nil
}
