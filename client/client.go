package client

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adamwoolhether/wire/throttle"
	"github.com/adamwoolhether/wire/transport"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Client runs the dispatch pipeline. It owns its transport and holds no
// mutable state after [Build] returns, so it is safe for concurrent use.
type Client struct {
	transport  transport.Transport
	logger     *slog.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	observer   Observer
	accepted   map[int]struct{}
}

// Build returns a Client configured by optFns. Without [WithTransport]
// the Client sends through net/http using a private copy of
// [http.DefaultClient] or of the client given to [WithClient].
func Build(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	client := Client{
		logger:     slog.Default(),
		tracer:     noop.NewTracerProvider().Tracer("no-op tracer"),
		propagator: otel.GetTextMapPropagator(),
		observer:   ObserverFuncs{},
		accepted:   map[int]struct{}{http.StatusOK: {}},
	}

	if opts.logger != nil {
		client.logger = opts.logger
	}
	if opts.tracer != nil {
		client.tracer = opts.tracer
	}
	if opts.propagator != nil {
		client.propagator = opts.propagator
	}
	if opts.observer != nil {
		client.observer = opts.observer
	}
	if len(opts.accepted) > 0 {
		client.accepted = make(map[int]struct{}, len(opts.accepted))
		for _, code := range opts.accepted {
			client.accepted[code] = struct{}{}
		}
	}

	if opts.transport != nil {
		if opts.usesHTTP() {
			return nil, ErrTransportConflict
		}
		client.transport = opts.transport
		return &client, nil
	}

	hc, err := opts.httpClient(func() *slog.Logger { return client.logger })
	if err != nil {
		return nil, err
	}
	client.transport = transport.NewHTTP(hc, transport.WithLogger(client.logger), transport.WithMaxBodySize(opts.maxBody))

	return &client, nil
}

// httpClient assembles the net/http client and its RoundTripper chain:
// throttle, then user agent, then the base transport.
func (o options) httpClient(logger func() *slog.Logger) (*http.Client, error) {
	hc := *http.DefaultClient
	if o.client != nil {
		hc = *o.client
	}

	if o.timeout != nil {
		hc.Timeout = *o.timeout
	}

	if o.noFollowRedirects {
		hc.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var rt http.RoundTripper
	switch {
	case o.rt != nil:
		rt = o.rt
	case hc.Transport != nil:
		rt = hc.Transport
	default:
		rt = http.DefaultTransport
	}
	if o.userAgent != "" {
		rt = userAgent{value: o.userAgent, base: rt}
	}
	if o.throttle != nil {
		throttled, err := throttle.NewRoundTripper(*o.throttle, rt, logger)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		rt = throttled
	}
	hc.Transport = rt

	return &hc, nil
}

// userAgent is an http.RoundTripper setting a fixed User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
