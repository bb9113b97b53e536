// Package throttle provides an [http.RoundTripper] that holds outbound
// dispatches to a token-bucket rate using [golang.org/x/time/rate].
//
// A dispatch that finds the bucket empty blocks until a token is
// available or its context ends. The wait is logged at info level when
// a logger is available.
package throttle

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// Config holds the sustained rate, in dispatches per second, and the
// burst size of the bucket.
type Config struct {
	RPS   int
	Burst int
}

// Validate reports whether both values are positive.
func (c Config) Validate() error {
	if c.RPS <= 0 || c.Burst <= 0 {
		return fmt.Errorf("rps[%d] and burst[%d] %w", c.RPS, c.Burst, ErrMustNotBeZero)
	}

	return nil
}

type roundTripper struct {
	cfg     Config
	limiter *rate.Limiter
	next    http.RoundTripper
	logger  func() *slog.Logger
}

// NewRoundTripper wraps next with a limiter built from cfg. logger is
// resolved per dispatch so the owner may swap it after construction;
// it may be nil or return nil to disable logging. A nil next means
// [http.DefaultTransport].
func NewRoundTripper(cfg Config, next http.RoundTripper, logger func() *slog.Logger) (http.RoundTripper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = func() *slog.Logger { return nil }
	}

	rt := roundTripper{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		next:    next,
		logger:  logger,
	}

	return rt, nil
}

func (rt roundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w before wait: %w", ErrContextEnded, err)
	}

	if log := rt.logger(); log != nil && rt.limiter.Tokens() < 1 {
		start := time.Now()
		log.Info("dispatch throttled", "rps", rt.cfg.RPS, "burst", rt.cfg.Burst, "host", r.URL.Host)
		defer func() {
			log.Info("dispatch released", "waited", time.Since(start).String(), "host", r.URL.Host)
		}()
	}

	if err := rt.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w after wait: %w", ErrContextEnded, err)
	}

	return rt.next.RoundTrip(r)
}
