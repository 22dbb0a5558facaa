// Package chain provides a fluent, result-aware pipe: a Chain[T] carries a
// fn.Result[T] through steps left to right and stops at the first failure
// or cancellation.
//
// Key operations:
// - Start/FromValue: begin a chain from a Result[T] or value
// - Then/ThenTry/Map: next step on the successful value
// - To/ToTry: next step changing the value type
// - Ensure: side effects without changing the result
// - Finally: collapse the chain into a value via handlers
// - Pipe: fold result-returning steps into one function
package chain
