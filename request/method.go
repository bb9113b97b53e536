package request

import (
	"github.com/google/uuid"
)

// Method is an HTTP verb. It is a [Modifier] that overwrites the
// descriptor's method and never fails.
type Method string

const (
	GET     Method = "GET"
	HEAD    Method = "HEAD"
	POST    Method = "POST"
	PUT     Method = "PUT"
	DELETE  Method = "DELETE"
	CONNECT Method = "CONNECT"
	OPTIONS Method = "OPTIONS"
	TRACE   Method = "TRACE"
	PATCH   Method = "PATCH"
)

// Modify implements [Modifier].
func (m Method) Modify(d Descriptor) (Descriptor, error) {
	d = d.Clone()
	d.Method = string(m)
	return d, nil
}

// RequestIDHeader is the header set by [RequestID].
const RequestIDHeader = "X-Request-ID"

// RequestID returns a modifier that sets a fresh random UUID as the
// X-Request-ID header each time it runs, unless one is already present.
func RequestID() Modifier {
	return ModifierFunc(func(d Descriptor) (Descriptor, error) {
		if d.Header.Get(RequestIDHeader) == "" {
			d.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return d, nil
	})
}
