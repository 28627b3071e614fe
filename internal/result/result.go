// Package result holds the three-state envelope every asynchronous
// operation reports through.
package result

import "context"

// Status is the variant of a Result
type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Result is either Loading, Success with an optional payload, or Error
// with a message.
type Result[T any] struct {
	Status  Status
	Data    *T
	Message string
}

// Loading returns the initial, payload-free variant.
func Loading[T any]() Result[T] {
	return Result[T]{Status: StatusLoading}
}

// Success wraps a payload.
func Success[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Data: &data}
}

// Empty is a Success carrying no payload.
func Empty[T any]() Result[T] {
	return Result[T]{Status: StatusSuccess}
}

// Error carries a user facing message.
func Error[T any](message string) Result[T] {
	return Result[T]{Status: StatusError, Message: message}
}

func (r Result[T]) IsLoading() bool  { return r.Status == StatusLoading }
func (r Result[T]) IsSuccess() bool  { return r.Status == StatusSuccess }
func (r Result[T]) IsError() bool    { return r.Status == StatusError }
func (r Result[T]) IsTerminal() bool { return r.Status != StatusLoading }

// Stream runs fn in a goroutine and returns its sequence: Loading first,
// then the single terminal value fn returns. The channel is closed after
// the terminal value. If ctx is done before the consumer reads the
// terminal value it is dropped.
func Stream[T any](ctx context.Context, fn func(ctx context.Context) Result[T]) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	ch <- Loading[T]()

	go func() {
		defer close(ch)

		res := fn(ctx)
		if !res.IsTerminal() {
			res = Error[T]("operation finished without a result")
		}

		select {
		case ch <- res:
		case <-ctx.Done():
		}
	}()

	return ch
}

// Last drains a sequence and returns its terminal value. A sequence that
// closes without one yields an Error.
func Last[T any](ch <-chan Result[T]) Result[T] {
	last := Error[T]("no result")
	for r := range ch {
		if r.IsTerminal() {
			last = r
		}
	}
	return last
}
