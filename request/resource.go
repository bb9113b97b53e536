package request

import (
	"bytes"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"
)

// Resource is a [Builder] describing a request by its parts.
type Resource struct {
	URL     *url.URL
	Method  Method
	Headers []Header
	Body    []byte
}

// NewResource parses rawURL and returns a GET resource for it.
func NewResource(rawURL string, headers ...Header) (Resource, error) {
	u, err := ParseURL(rawURL)
	if err != nil {
		return Resource{}, err
	}

	return Resource{URL: u, Method: GET, Headers: slices.Clone(headers)}, nil
}

// Build implements [Builder].
func (r Resource) Build() (Descriptor, error) {
	if r.URL == nil {
		return Descriptor{}, ErrEmptyURL
	}

	d := NewDescriptor(r.URL)
	if r.Method != "" {
		d.Method = string(r.Method)
	}
	for _, h := range r.Headers {
		h.apply(&d)
	}
	d.Body = bytes.Clone(r.Body)

	return d, nil
}

// String returns a multi-line description for debugging.
func (r Resource) String() string {
	var u string
	if r.URL != nil {
		u = r.URL.String()
	}

	method := r.Method
	if method == "" {
		method = GET
	}

	headers := make([]string, 0, len(r.Headers))
	for _, h := range r.Headers {
		headers = append(headers, h.Key+": "+h.Value)
	}
	slices.Sort(headers)

	var body string
	switch {
	case r.Body == nil:
		body = "Empty body"
	case !utf8.Valid(r.Body):
		body = "Body is not UTF8 encoded"
	default:
		body = string(r.Body)
	}

	return fmt.Sprintf("URLString = %s\nMethod = %s\nHeaders = %s\nbody = %s",
		u, method, strings.Join(headers, ", "), body)
}
