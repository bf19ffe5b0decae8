// Package dump implements the windowed hex/character dump engine: a read-only
// byte buffer, a lazily built row-to-line index, KMP search over the buffer,
// an LRU cache of label coverage, and a highlight manager that reconciles
// named highlight classes against a window of reusable display slots.
//
// A Viewer owns all of this state for one buffer. It is not safe for
// concurrent use; every method is expected to run on the host's event loop.
// The only deferred work is label cache warming, which the host drives one
// batch at a time through WarmStep.
package dump
