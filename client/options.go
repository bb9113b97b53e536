package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/adamwoolhether/wire/throttle"
	"github.com/adamwoolhether/wire/transport"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ErrTransportConflict is returned by [Build] when [WithTransport] is
// combined with an option that configures the net/http transport.
var ErrTransportConflict = errors.New("custom transport cannot be combined with http client options")

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error
type options struct {
	client            *http.Client
	rt                http.RoundTripper
	transport         transport.Transport
	timeout           *time.Duration
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	maxBody           int64
	logger            *slog.Logger
	tracer            trace.Tracer
	propagator        propagation.TextMapPropagator
	observer          Observer
	accepted          []int
}

func (o options) usesHTTP() bool {
	return o.client != nil ||
		o.rt != nil ||
		o.timeout != nil ||
		o.userAgent != "" ||
		o.throttle != nil ||
		o.noFollowRedirects ||
		o.maxBody != 0
}

// WithClient uses a copy of hc for net/http dispatches.
func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithRoundTripper sets the base [http.RoundTripper] for net/http dispatches.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("round tripper must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTransport replaces net/http entirely. It cannot be combined with
// the options that configure the net/http client.
func WithTransport(t transport.Transport) Option {
	return func(o *options) error {
		if t == nil {
			return errors.New("transport must not be nil")
		}
		o.transport = t
		return nil
	}
}

// WithTimeout sets the overall dispatch timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent sets the User-Agent header on every outgoing request,
// replacing any value set by request modifiers.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given
// dispatches per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		cfg := throttle.Config{RPS: rps, Burst: burst}
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.throttle = &cfg
		return nil
	}
}

// WithNoFollowRedirects stops net/http from following redirects; the
// redirect response itself is then classified.
func WithNoFollowRedirects() Option {
	return func(o *options) error {
		o.noFollowRedirects = true
		return nil
	}
}

// WithMaxBodySize caps the number of response bytes read per dispatch.
func WithMaxBodySize(n int64) Option {
	return func(o *options) error {
		if n < 0 {
			return errors.New("max body size must not be negative")
		}
		o.maxBody = n
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used for dispatch spans. The default is a
// no-op tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		o.tracer = tracer
		return nil
	}
}

// WithPropagator sets the propagator that writes trace context into
// outgoing headers. The default is the global otel propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(o *options) error {
		o.propagator = p
		return nil
	}
}

// WithObserver registers an observer notified of dispatch progress.
func WithObserver(obs Observer) Option {
	return func(o *options) error {
		o.observer = obs
		return nil
	}
}

// WithAcceptedStatus replaces the set of status codes treated as
// success. The default set holds only 200.
func WithAcceptedStatus(codes ...int) Option {
	return func(o *options) error {
		if len(codes) == 0 {
			return errors.New("accepted status set must not be empty")
		}
		for _, code := range codes {
			if code < 100 || code > 599 {
				return fmt.Errorf("status code %d out of range", code)
			}
		}
		o.accepted = codes
		return nil
	}
}
