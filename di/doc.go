// Package di resolves object graphs by type.
//
// Given a requested type, a Container decides how to produce a value:
//
//   - by a registered abstraction mapping (interface -> concrete type), or
//   - by constructor injection: one constructor is selected for the concrete type,
//     each parameter is resolved recursively (depth-first, left to right), and the
//     constructor is invoked with the results.
//
// Go has no reflective constructors, so a type's constructors are either provided
// explicitly with Provide (func(P1..Pn) T or func(P1..Pn) (T, error)) or implied:
//
//   - a struct with no provided constructor has one memberwise constructor whose
//     parameters are its exported fields in declaration order
//   - *T with no provided constructor is built from a resolved T
//   - T with only *T constructors is built by dereferencing
//
// # Policies
//
// Two independent rules are configurable with WithPolicy:
//
//   - Precedence: RegistrationFirst consults the registry before construction;
//     ConcreteFirst constructs concrete types directly and uses the registry only
//     for interfaces. They disagree when a concrete type is itself registered.
//   - Selection: SingleConstructor fails with AmbiguousOrMissingConstructorError
//     unless exactly one constructor exists; FewestParameters picks the smallest
//     and fails with NoAccessibleConstructorError only when there is none.
//
// CanonicalPolicy (the default) is RegistrationFirst + SingleConstructor.
// AlternatePolicy is ConcreteFirst + FewestParameters.
//
// # Errors
//
// Failures propagate unchanged up the resolution chain and abort the whole request.
// The top-level call wraps them once in ResolutionError, which records the path at
// the point of detection and unwraps to the typed error:
//
//	_, err := di.Resolve[*sales.Processor](c)
//	var missing di.UnregisteredAbstractionError
//	if errors.As(err, &missing) { ... }
//
// A cyclic type graph would recurse forever; resolution depth is bounded by
// WithMaxDepth (DefaultMaxDepth by default) and reported as CyclicTypeGraphError.
//
// # Extension
//
// Every nested type is resolved through a Session that routes back to the outermost
// Resolver. Package di/fixture decorates a Container this way to pin instances and
// synthesize random primitives, collections and records for tests.
//
// Import
//
//	"github.com/sghaida/graphioc/di"
package di
