// Package listview implements the list-screen data flow: a refreshable
// loader around an async fetch, plus client-style filtering and pagination
// over the loaded collection.
package listview

import (
	"context"
	"sync"
)

// FetchFunc loads the full collection for a list screen.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// Loader wraps a fetch function with the data/loading/error triple every
// list screen binds to. A cancelled context never commits state, so a stale
// response cannot overwrite a fresher one after the caller has moved on.
type Loader[T any] struct {
	fetch FetchFunc[T]

	mu      sync.Mutex
	data    []T
	loading bool
	err     string
}

// NewLoader builds a loader. When immediate is set the first fetch runs
// before returning.
func NewLoader[T any](ctx context.Context, fetch FetchFunc[T], immediate bool) *Loader[T] {
	l := &Loader[T]{fetch: fetch, data: []T{}}
	if immediate {
		_ = l.Refresh(ctx)
	}
	return l
}

// Refresh re-runs the fetch. On success the data is replaced (nil results
// coerce to an empty slice); on failure the data is cleared and the error's
// text kept. There is no retry and no caching.
func (l *Loader[T]) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.loading = true
	l.mu.Unlock()

	items, err := l.fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = false

	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		l.data = []T{}
		l.err = err.Error()
		return err
	}

	if items == nil {
		items = []T{}
	}
	l.data = items
	l.err = ""
	return nil
}

// Data returns the last successfully loaded collection.
func (l *Loader[T]) Data() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.data))
	copy(out, l.data)
	return out
}

// Loading reports whether a fetch is in flight.
func (l *Loader[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the last failure's text, or "" after a successful load.
func (l *Loader[T]) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
