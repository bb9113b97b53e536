// Package request assembles outgoing HTTP requests from reusable pieces.
//
// A [Builder] produces a [Descriptor]; a [Modifier] takes a Descriptor and
// returns a new one. Builders include raw descriptors, parsed URLs, URL
// strings and [Resource] values; modifiers include headers, methods and
// JSON, plain-text and URL-encoded bodies. Every modifier works on a copy,
// so builders and modifiers can be shared between goroutines.
//
//	d, err := request.String("https://api.example.com/v1/items").Build()
//	d, err = request.Apply(d,
//		request.POST,
//		request.Bearer(token),
//		request.JSONBody(item),
//	)
package request

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Descriptor is the in-memory form of an outgoing HTTP request.
type Descriptor struct {
	URL    *url.URL
	Method string
	Header http.Header
	Body   []byte
}

// NewDescriptor returns a GET descriptor for u.
func NewDescriptor(u *url.URL) Descriptor {
	return Descriptor{
		URL:    cloneURL(u),
		Method: http.MethodGet,
		Header: http.Header{},
	}
}

// Build implements [Builder]. It returns a copy of d.
func (d Descriptor) Build() (Descriptor, error) {
	return d.Clone(), nil
}

// Clone returns a deep copy of d.
func (d Descriptor) Clone() Descriptor {
	c := Descriptor{
		URL:    cloneURL(d.URL),
		Method: d.Method,
		Header: d.Header.Clone(),
		Body:   bytes.Clone(d.Body),
	}
	if c.Header == nil {
		c.Header = http.Header{}
	}

	return c
}

// HTTPRequest converts d into an *http.Request bound to ctx.
func (d Descriptor) HTTPRequest(ctx context.Context) (*http.Request, error) {
	if d.URL == nil {
		return nil, ErrEmptyURL
	}

	method := d.Method
	if method == "" {
		method = http.MethodGet
	}

	var body *bytes.Reader
	if d.Body != nil {
		body = bytes.NewReader(d.Body)
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, d.URL.String(), body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, d.URL.String(), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("instantiating request: %w", err)
	}

	req.Header = d.Header.Clone()
	if req.Header == nil {
		req.Header = http.Header{}
	}

	return req, nil
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}

	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}

	return &c
}
