// Package flow applies a composed function to many inputs at once. Each
// call is independent: the function is shared, its arguments never are.
//
// Worker counts travel in the context (WithWorkerOptions), as does the
// choice of what to do with inputs still queued when the context is
// cancelled (WithProcessOptions).
package flow
