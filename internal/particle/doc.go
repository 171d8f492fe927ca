// Package particle owns particle positions.
//
// A [Store] only grows: indices handed out by [Store.Add] are never reused,
// removed or reordered, so an index stays valid for the life of the run.
// Accessing an index at or beyond [Store.Len] is a programming error and
// panics with an error wrapping [ErrIndexOutOfRange].
package particle
