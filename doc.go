// Package graphioc is a small reflection-based object-graph resolver for Go.
//
// The repository is organised as:
//
//   - di: the container (type registry, constructor selection, recursive resolution)
//   - di/fixture: a decorating resolver that pins instances and synthesizes random
//     test data (primitives, value types, slices, maps, records)
//   - config: runtime configuration (defaults, YAML file, .env, environment)
//   - internal/telemetry: zerolog logger and prometheus observer wiring
//   - examples/sales: a small sales domain used as the composition example
//   - cmd/salesdemo: a CLI that wires the sales domain and processes sales
//
// Registrations stay explicit in your composition root; the container only
// removes the hand-written constructor plumbing between them.
//
// Package graphioc See subpackages.
package graphioc
