// Package typed provides compile-time typed composition: Pipe, Compose and
// Curry built on generics. Type mismatches between steps are compile errors
// here; the only runtime failure is an empty Pipe, reported as an
// fn.ArityError.
//
// Highlights:
//   - Pipe/MustPipe/PipeV: left-to-right over steps of one type
//   - Pipe2/Pipe3/Pipe4: left-to-right across changing types
//   - Compose: f after g
//   - PipeErr/Pipe2Err/ComposeErr: stop at the first error
//   - Curry2/Curry3/Curry4, Uncurry2/Uncurry3, Partial2/Partial3
package typed
