// Package fn holds the types shared by the composition packages: the
// railway Result[T], the arity and type-mismatch errors, and small helpers
// for inspecting errors.
//
// The operations themselves live in sub-packages:
//   - typed: generic Pipe, Compose and Curry checked by the compiler
//   - dyn: arity-explicit Pipe, Compose and Curry over any
//   - chain: fluent result-aware pipes
//   - flow: applying a composed function to many inputs concurrently
package fn
