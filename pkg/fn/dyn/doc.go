// Package dyn composes functions whose types are only known at run time.
//
// A Func pairs a callable over []any with its declared arity, since arity
// cannot be read from a Go closure of that shape. Reflect builds a Func from
// any ordinary Go function and records its parameter and result types so
// Pipe can reject mismatched steps before anything runs.
//
// Key operations:
//   - Pipe/PipeWith: left-to-right; the first step may take any number of
//     arguments, later steps take exactly one
//   - Compose: f after g, both unary
//   - Curry/CurryWith: accumulate arguments until the arity is met
//
// Errors returned by the wrapped functions are passed through unchanged.
// Arity and type problems are reported as *fn.ArityError and
// *fn.TypeMismatchError.
package dyn
