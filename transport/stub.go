package transport

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
)

// ErrNoStub is returned by [Stub] for requests with no registered handler.
var ErrNoStub = errors.New("no stub registered")

// Stub is an in-memory Transport keyed by method and URL. It records
// every request it receives. The zero value is ready to use.
type Stub struct {
	mu       sync.RWMutex
	handlers map[string]Func
	requests []*http.Request
}

// Handle registers fn for requests matching method and rawURL exactly.
func (s *Stub) Handle(method, rawURL string, fn Func) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handlers == nil {
		s.handlers = make(map[string]Func)
	}
	s.handlers[stubKey(method, rawURL)] = fn
}

// Respond registers a fixed outcome for method and rawURL.
func (s *Stub) Respond(method, rawURL string, out Outcome) {
	s.Handle(method, rawURL, func(*http.Request) Outcome { return out })
}

// Send implements Transport.
func (s *Stub) Send(r *http.Request) Outcome {
	key := stubKey(r.Method, r.URL.String())

	s.mu.Lock()
	s.requests = append(s.requests, r)
	fn, ok := s.handlers[key]
	s.mu.Unlock()

	if !ok {
		return Outcome{Err: fmt.Errorf("%w: %s", ErrNoStub, key)}
	}

	return fn(r)
}

// Requests returns the requests received so far, oldest first.
func (s *Stub) Requests() []*http.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.requests)
}

// Reply builds the outcome of a completed HTTP exchange.
func Reply(status int, body []byte) Outcome {
	resp := http.Response{
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode: status,
		Header:     make(http.Header),
	}

	return Outcome{Body: body, Response: &resp}
}

func stubKey(method, rawURL string) string {
	return method + " " + rawURL
}
