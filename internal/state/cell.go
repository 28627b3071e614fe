// Package state holds observable values shared between the view-models and
// the UI.
package state

import (
	"context"
	"sync"
)

// Cell owns a value and broadcasts every change to its subscribers.
// Subscribers are conflating: one that falls behind sees the newest value
// and skips the ones in between.
type Cell[T any] struct {
	mu    sync.Mutex
	value T
	subs  map[chan T]struct{}
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{
		value: initial,
		subs:  make(map[chan T]struct{}),
	}
}

// Get returns the current value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the value and publishes it.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
	c.publish()
}

// Update applies fn to the current value atomically and publishes the
// result.
func (c *Cell[T]) Update(fn func(T) T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = fn(c.value)
	c.publish()
	return c.value
}

// Subscribe emits the current value right away and then every change until
// ctx is done, when the channel is closed.
func (c *Cell[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	c.mu.Lock()
	ch <- c.value
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.subs, ch)
		close(ch)
		c.mu.Unlock()
	}()

	return ch
}

// WaitFor blocks until the value satisfies pred or ctx is done.
func (c *Cell[T]) WaitFor(ctx context.Context, pred func(T) bool) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for v := range c.Subscribe(ctx) {
		if pred(v) {
			return v, nil
		}
	}
	var zero T
	return zero, ctx.Err()
}

// publish must be called with mu held.
func (c *Cell[T]) publish() {
	for ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- c.value
	}
}

// Combine3 calls fn with the latest value of each cell whenever any of them
// changes, starting with their current values. fn runs on a single
// goroutine that stops when ctx is done.
func Combine3[A, B, C any](ctx context.Context, a *Cell[A], b *Cell[B], c *Cell[C], fn func(A, B, C)) {
	ac, bc, cc := a.Subscribe(ctx), b.Subscribe(ctx), c.Subscribe(ctx)
	av, bv, cv := <-ac, <-bc, <-cc
	fn(av, bv, cv)

	go func() {
		for {
			select {
			case v, ok := <-ac:
				if !ok {
					return
				}
				av = v
			case v, ok := <-bc:
				if !ok {
					return
				}
				bv = v
			case v, ok := <-cc:
				if !ok {
					return
				}
				cv = v
			}
			fn(av, bv, cv)
		}
	}()
}
