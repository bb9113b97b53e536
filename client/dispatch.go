package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/adamwoolhether/wire/errs"
	"github.com/adamwoolhether/wire/request"
	"github.com/adamwoolhether/wire/response"
	"github.com/adamwoolhether/wire/transport"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNilBuilder   = errors.New("builder must not be nil")
	ErrNilConverter = errors.New("converter must not be nil")
)

// prepare runs the build stage. Every build failure is reported at the
// builder stage, wrapping whatever the builder returned.
func (c *Client) prepare(ctx context.Context, b request.Builder) (*http.Request, error) {
	if b == nil {
		return nil, errs.Builder(ErrNilBuilder)
	}

	d, err := b.Build()
	if err != nil {
		return nil, errs.Builder(err)
	}

	req, err := d.HTTPRequest(ctx)
	if err != nil {
		return nil, errs.Builder(err)
	}

	return req, nil
}

// exchange sends req exactly once and classifies the outcome.
func (c *Client) exchange(req *http.Request, b request.Builder) ([]byte, error) {
	id := uuid.NewString()

	ctx, span := c.tracer.Start(req.Context(), "wire.dispatch", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("wire.dispatch_id", id),
		attribute.String("http.request.method", req.Method),
		attribute.String("url.full", req.URL.String()),
	)

	req = req.WithContext(ctx)
	c.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))

	c.observer.DispatchStarted(b)
	c.logger.Debug("dispatch started", "dispatch_id", id, "method", req.Method, "url", req.URL.String())
	start := time.Now()

	out := c.transport.Send(req)

	data, status, err := classify(out, c.accepted)
	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("dispatch failed", "dispatch_id", id, "status", status, "elapsed", time.Since(start).String(), "error", err)
		return nil, err
	}

	c.logger.Debug("dispatch completed", "dispatch_id", id, "status", status, "bytes", len(data), "elapsed", time.Since(start).String())
	c.observer.BytesRetrieved(data, b)

	return data, nil
}

// classify checks the outcome in a fixed order: transport error, missing
// response, non-HTTP response, unaccepted status, missing body. The
// returned status is zero when no HTTP response was seen.
func classify(out transport.Outcome, accepted map[int]struct{}) ([]byte, int, error) {
	if out.Err != nil {
		return nil, 0, errs.Session(out.Err)
	}

	if out.Response == nil {
		return nil, 0, errs.NoResponse()
	}

	resp, ok := out.Response.(*http.Response)
	if !ok {
		return nil, 0, errs.NotHTTP(out.Response)
	}
	if resp == nil {
		return nil, 0, errs.NoResponse()
	}

	if _, ok := accepted[resp.StatusCode]; !ok {
		return nil, resp.StatusCode, errs.HTTPStatus(resp.StatusCode, out.Body)
	}

	if out.Body == nil {
		return nil, resp.StatusCode, errs.NoData()
	}

	return out.Body, resp.StatusCode, nil
}

// run is the whole pipeline for one dispatch.
func run[T any](ctx context.Context, c *Client, b request.Builder, conv response.Converter[T]) (T, error) {
	var zero T

	if conv == nil {
		return zero, errNilConverter()
	}

	req, err := c.prepare(ctx, b)
	if err != nil {
		return zero, err
	}

	return finish(c, req, b, conv)
}

func finish[T any](c *Client, req *http.Request, b request.Builder, conv response.Converter[T]) (T, error) {
	data, err := c.exchange(req, b)
	if err != nil {
		var zero T
		return zero, err
	}

	v, err := conv.Convert(data)
	if err != nil {
		var zero T
		return zero, errs.Converter(err)
	}

	return v, nil
}

func errNilConverter() error {
	return errs.Converter(ErrNilConverter)
}
