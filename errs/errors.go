// Package errs defines the error taxonomy shared by every stage of the
// request pipeline.
//
// An [*Error] records which stage failed: the source string, the request
// builder chain, the transport, or the response converter chain. Two errors
// are considered equal when their stage and kind match and their comparable
// fields match; wrapped causes, response bodies and response values are
// carried for diagnostics but ignored by [Equal].
package errs

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Stage identifies the pipeline stage that produced an [Error].
type Stage int

const (
	// StageSource is set when a string could not be interpreted as a URL.
	StageSource Stage = iota + 1
	// StageBuilder is set when a builder or a request modifier failed.
	StageBuilder
	// StageTransport is set when the transport failed or its outcome was rejected.
	StageTransport
	// StageConverter is set when a data modifier or the terminal converter failed.
	StageConverter
)

func (s Stage) String() string {
	switch s {
	case StageSource:
		return "source"
	case StageBuilder:
		return "builder"
	case StageTransport:
		return "transport"
	case StageConverter:
		return "converter"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Kind narrows a [StageTransport] error.
type Kind int

const (
	KindNone Kind = iota
	// KindSession is a failure reported by the transport itself.
	KindSession
	// KindNoResponse means the transport produced no response metadata.
	KindNoResponse
	// KindNotHTTP means the response metadata is not an HTTP response.
	KindNotHTTP
	// KindHTTPStatus means the response status is not accepted.
	KindHTTPStatus
	// KindNoData means an accepted response arrived without a body.
	KindNoData
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSession:
		return "session"
	case KindNoResponse:
		return "no response"
	case KindNotHTTP:
		return "not http"
	case KindHTTPStatus:
		return "http status"
	case KindNoData:
		return "no data"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the structured error returned by the pipeline.
type Error struct {
	Stage Stage
	Kind  Kind

	// URL holds the rejected string of a StageSource error.
	URL string
	// StatusCode and Body describe a KindHTTPStatus error.
	StatusCode int
	Body       []byte
	// Response holds the metadata of a KindNotHTTP error.
	Response any

	Err error
}

// InvalidURL reports that raw is not a valid absolute URL.
func InvalidURL(raw string) *Error {
	return &Error{Stage: StageSource, URL: raw}
}

// Builder wraps a failure of a builder or request modifier.
func Builder(err error) *Error {
	return &Error{Stage: StageBuilder, Err: err}
}

// Session wraps a failure reported by the transport.
func Session(err error) *Error {
	return &Error{Stage: StageTransport, Kind: KindSession, Err: err}
}

// NoResponse reports that the transport produced no response.
func NoResponse() *Error {
	return &Error{Stage: StageTransport, Kind: KindNoResponse}
}

// NotHTTP reports that the response metadata is not HTTP shaped.
func NotHTTP(response any) *Error {
	return &Error{Stage: StageTransport, Kind: KindNotHTTP, Response: response}
}

// HTTPStatus reports a response whose status code was not accepted.
func HTTPStatus(code int, body []byte) *Error {
	return &Error{Stage: StageTransport, Kind: KindHTTPStatus, StatusCode: code, Body: body}
}

// NoData reports an accepted response that carried no body.
func NoData() *Error {
	return &Error{Stage: StageTransport, Kind: KindNoData}
}

// Converter wraps a failure of a data modifier or response converter.
func Converter(err error) *Error {
	return &Error{Stage: StageConverter, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Stage {
	case StageSource:
		return fmt.Sprintf("`%s` is not a valid URL", e.URL)
	case StageBuilder:
		return fmt.Sprintf("request builder: %v", e.Err)
	case StageConverter:
		return fmt.Sprintf("response converter: %v", e.Err)
	case StageTransport:
		switch e.Kind {
		case KindSession:
			return fmt.Sprintf("transport session: %v", e.Err)
		case KindNoResponse:
			return "server did not provide a response"
		case KindNotHTTP:
			return fmt.Sprintf("response is not http: %T", e.Response)
		case KindHTTPStatus:
			return fmt.Sprintf("http response status code: %d, body: %s", e.StatusCode, bodyText(e.Body))
		case KindNoData:
			return "server did not provide data"
		}
	}

	return fmt.Sprintf("%s error: %v", e.Stage, e.Err)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error equal to e, see [Equal].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return Equal(e, t)
}

// Equal compares two errors by stage, kind and the fields each kind
// declares comparable: the URL string of a source error and the status
// code of an http status error. Causes, bodies and responses are ignored.
func Equal(a, b *Error) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Stage != b.Stage || a.Kind != b.Kind {
		return false
	}

	switch {
	case a.Stage == StageSource:
		return a.URL == b.URL
	case a.Stage == StageTransport && a.Kind == KindHTTPStatus:
		return a.StatusCode == b.StatusCode
	default:
		return true
	}
}

// As returns the first *Error in err's tree.
func As(err error) (*Error, bool) {
	return errors.AsType[*Error](err)
}

// StageOf returns the stage of the first *Error in err's tree, or zero.
func StageOf(err error) Stage {
	e, ok := As(err)
	if !ok {
		return 0
	}

	return e.Stage
}

func bodyText(b []byte) string {
	if !utf8.Valid(b) {
		return "* content not UTF-8 *"
	}

	return string(b)
}
