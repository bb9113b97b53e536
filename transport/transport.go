// Package transport is the boundary between the dispatch pipeline and
// the network. A [Transport] performs exactly one exchange per call and
// reports what it got back without judging it; classification belongs
// to the caller.
package transport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// ErrBodyTooLarge is reported when a response body exceeds the size set
// with [WithMaxBodySize].
var ErrBodyTooLarge = errors.New("response body too large")

// Outcome is the raw result of one exchange. Any combination of fields
// may be set; Response is usually an *http.Response but callers must
// not assume so.
type Outcome struct {
	Body     []byte
	Response any
	Err      error
}

// Transport performs a single request/response exchange. Send blocks
// until the exchange completes or the request context ends.
type Transport interface {
	Send(*http.Request) Outcome
}

// Func adapts a function to the [Transport] interface.
type Func func(*http.Request) Outcome

// Send calls f.
func (f Func) Send(r *http.Request) Outcome {
	return f(r)
}

// /////////////////////////////////////////////////////////////////
// net/http adapter

// HTTPOption configures the adapter returned by [NewHTTP].
type HTTPOption func(*HTTP)

// WithLogger sets the logger used for body close failures.
func WithLogger(logger *slog.Logger) HTTPOption {
	return func(h *HTTP) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMaxBodySize caps the number of body bytes read. A longer body fails
// the exchange with [ErrBodyTooLarge]. Zero means no cap.
func WithMaxBodySize(n int64) HTTPOption {
	return func(h *HTTP) {
		h.maxBody = n
	}
}

// HTTP sends requests through an [http.Client].
type HTTP struct {
	hc      *http.Client
	logger  *slog.Logger
	maxBody int64
}

// NewHTTP returns a Transport backed by hc, or [http.DefaultClient]
// when hc is nil.
func NewHTTP(hc *http.Client, optFns ...HTTPOption) *HTTP {
	if hc == nil {
		hc = http.DefaultClient
	}

	h := HTTP{
		hc:     hc,
		logger: slog.Default(),
	}
	for _, opt := range optFns {
		opt(&h)
	}

	return &h
}

// Client returns the underlying http.Client.
func (h *HTTP) Client() *http.Client {
	return h.hc
}

// Send performs the exchange and reads the whole body before closing it.
func (h *HTTP) Send(r *http.Request) Outcome {
	resp, err := h.hc.Do(r)
	if err != nil {
		return Outcome{Response: resp, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			h.logger.Error("failed to close response body", "error", err)
		}
	}()

	var body io.Reader = resp.Body
	if h.maxBody > 0 {
		body = io.LimitReader(resp.Body, h.maxBody+1)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return Outcome{Response: resp, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if h.maxBody > 0 && int64(len(b)) > h.maxBody {
		return Outcome{Response: resp, Err: fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, h.maxBody)}
	}

	return Outcome{Body: b, Response: resp}
}
