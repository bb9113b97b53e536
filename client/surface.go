package client

import (
	"context"

	"github.com/adamwoolhether/wire/request"
	"github.com/adamwoolhether/wire/response"
)

// Result is the single value delivered by the stream surface.
type Result[T any] struct {
	Value T
	Err   error
}

// Bytes dispatches b and returns the accepted response body.
func (c *Client) Bytes(ctx context.Context, b request.Builder) ([]byte, error) {
	return run(ctx, c, b, response.Identity())
}

// RetrieveBytes dispatches b on a new goroutine and passes the outcome
// to fn. See [RetrieveObject].
func (c *Client) RetrieveBytes(ctx context.Context, b request.Builder, fn func([]byte, error)) context.CancelFunc {
	return RetrieveObject(ctx, c, b, response.Identity(), fn)
}

// BytesStream dispatches b on a new goroutine. See [ObjectStream].
func (c *Client) BytesStream(ctx context.Context, b request.Builder) <-chan Result[[]byte] {
	return ObjectStream(ctx, c, b, response.Identity())
}

// Object dispatches b and converts the accepted response body with conv.
func Object[T any](ctx context.Context, c *Client, b request.Builder, conv response.Converter[T]) (T, error) {
	return run(ctx, c, b, conv)
}

// RetrieveObject builds b on the calling goroutine. When the build fails
// fn is called before RetrieveObject returns and the returned cancel
// func is nil. Otherwise the exchange and conversion run on a new
// goroutine which calls fn exactly once; the returned func cancels the
// dispatch context.
func RetrieveObject[T any](ctx context.Context, c *Client, b request.Builder, conv response.Converter[T], fn func(T, error)) context.CancelFunc {
	if fn == nil {
		fn = func(T, error) {}
	}

	var zero T
	if conv == nil {
		fn(zero, errNilConverter())
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)

	req, err := c.prepare(ctx, b)
	if err != nil {
		cancel()
		fn(zero, err)
		return nil
	}

	go func() {
		defer cancel()
		fn(finish(c, req, b, conv))
	}()

	return cancel
}

// ObjectStream dispatches b on a new goroutine. The returned channel
// has capacity one, receives exactly one [Result] and is then closed,
// so the goroutine never blocks on an abandoned channel.
func ObjectStream[T any](ctx context.Context, c *Client, b request.Builder, conv response.Converter[T]) <-chan Result[T] {
	ch := make(chan Result[T], 1)

	go func() {
		defer close(ch)

		v, err := run(ctx, c, b, conv)
		ch <- Result[T]{Value: v, Err: err}
	}()

	return ch
}
