// Package repository wraps the remote and local data sources. Every
// operation reports through a result sequence and never returns an error
// past this boundary.
package repository

import (
	"context"
	"log"

	"github.com/ngmaloney/weather-terminal/internal/remote"
	"github.com/ngmaloney/weather-terminal/internal/result"
)

// User facing messages
const (
	MsgNoConnection     = "Couldn't reach server check your internet connection"
	MsgSomethingWrong   = "Oops, something went wrong"
	MsgLocationNotFound = "Sorry can't fetch location"
	MsgNoSearchResult   = "Sorry no result found."
	MsgNoForecast       = "Sorry can't fetch weather right now."
)

// errorMessage maps a data source error to its fixed message.
func errorMessage(err error) string {
	if remote.IsTransport(err) {
		return MsgNoConnection
	}
	return MsgSomethingWrong
}

func failure[T any](ctx context.Context, op string, err error) result.Result[T] {
	logf(ctx, "%s failed: %v", op, err)
	return result.Error[T](errorMessage(err))
}

// logf prefixes the line with the request id carried by ctx, if any.
func logf(ctx context.Context, format string, args ...any) {
	if id := remote.RequestID(ctx); id != "" {
		format = "[" + id + "] " + format
	}
	log.Printf(format, args...)
}

// stream is result.Stream for operations that must not panic past the
// repository boundary.
func stream[T any](ctx context.Context, op string, fn func(ctx context.Context) result.Result[T]) <-chan result.Result[T] {
	return result.Stream(ctx, func(ctx context.Context) (res result.Result[T]) {
		defer func() {
			if r := recover(); r != nil {
				logf(ctx, "%s panicked: %v", op, r)
				res = result.Error[T](MsgSomethingWrong)
			}
		}()
		return fn(ctx)
	})
}
