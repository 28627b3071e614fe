// Package remote is the shared HTTP plumbing for the geocoding and
// forecast APIs: JSON GETs behind a circuit breaker and an optional rate
// limiter, with failures classified as transport or remote errors.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const userAgent = "WeatherTerminal/1.0 (github.com/ngmaloney/weather-terminal)"

var (
	// ErrTransport means the server could not be reached at all.
	ErrTransport = errors.New("transport error")
	// ErrRemote covers non-2xx answers, undecodable bodies and an open breaker.
	ErrRemote = errors.New("remote error")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrRemote }

type requestIDKey struct{}

// WithRequestID tags every request made with ctx with id. The id is sent as
// the X-Request-ID header.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id set by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Options tunes a Client.
type Options struct {
	Name    string
	Timeout time.Duration
	// RPS <= 0 disables rate limiting.
	RPS   float64
	Burst int
}

// Client performs JSON GET requests.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
}

// NewClient creates a client. No retries are attempted: a failed call is
// reported to the caller straight away.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: opts.Timeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        opts.Name,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// an abandoned request says nothing about the server
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
		}),
	}

	if opts.RPS > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}

	return c
}

// GetJSON fetches url and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limit wait canceled: %v", ErrTransport, err)
		}
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, url)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: circuit breaker open: %v", ErrRemote, err)
		}
		return err
	}

	if err := json.Unmarshal(body.([]byte), v); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrRemote, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", ErrRemote, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if id := RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: executing request: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}

// IsTransport reports whether err means the server was unreachable.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
