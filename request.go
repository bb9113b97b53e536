package wire

import (
	"context"
	"errors"
	"slices"

	"github.com/adamwoolhether/wire/client"
	"github.com/adamwoolhether/wire/request"
	"github.com/adamwoolhether/wire/response"
)

var (
	ErrNilBuilder   = errors.New("request has no builder")
	ErrNilConverter = errors.New("request has no converter")
)

// Option configures the modifier chains of a [Request].
type Option func(*options)

type options struct {
	modifiers []request.Modifier
	data      []response.DataModifier
}

// WithRequestModifiers appends modifiers applied, in order, to the
// built descriptor.
func WithRequestModifiers(mods ...request.Modifier) Option {
	return func(o *options) {
		o.modifiers = append(o.modifiers, mods...)
	}
}

// WithDataModifiers appends modifiers applied, in order, to the
// response bytes before conversion.
func WithDataModifiers(mods ...response.DataModifier) Option {
	return func(o *options) {
		o.data = append(o.data, mods...)
	}
}

// Request is an immutable bundle of a builder, request modifiers, data
// modifiers and a converter producing a T. It is safe for concurrent use.
type Request[T any] struct {
	builder   request.Builder
	modifiers []request.Modifier
	data      []response.DataModifier
	converter response.Converter[T]
}

// New returns a Request converting response bytes with conv.
func New[T any](b request.Builder, conv response.Converter[T], opts ...Option) *Request[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return &Request[T]{
		builder:   b,
		modifiers: slices.Clone(o.modifiers),
		data:      slices.Clone(o.data),
		converter: conv,
	}
}

// NewFunc returns a Request converting response bytes with fn.
func NewFunc[T any](b request.Builder, fn func([]byte) (T, error), opts ...Option) *Request[T] {
	var conv response.Converter[T]
	if fn != nil {
		conv = response.ConverterFunc[T](fn)
	}

	return New(b, conv, opts...)
}

// NewBytes returns a Request whose output is the modified response bytes.
func NewBytes(b request.Builder, opts ...Option) *Request[[]byte] {
	return New(b, response.Identity(), opts...)
}

// Build builds the descriptor and applies the request modifiers in order,
// stopping at the first failure.
func (r *Request[T]) Build() (request.Descriptor, error) {
	if r.builder == nil {
		return request.Descriptor{}, ErrNilBuilder
	}

	d, err := r.builder.Build()
	if err != nil {
		return request.Descriptor{}, err
	}

	return request.Apply(d, r.modifiers...)
}

// ModifyData applies the data modifiers in order, stopping at the first
// failure.
func (r *Request[T]) ModifyData(data []byte) ([]byte, error) {
	return response.Apply(data, r.data...)
}

// Convert applies the data modifiers then the converter.
func (r *Request[T]) Convert(data []byte) (T, error) {
	var zero T
	if r.converter == nil {
		return zero, ErrNilConverter
	}

	data, err := r.ModifyData(data)
	if err != nil {
		return zero, err
	}

	return r.converter.Convert(data)
}

func (r *Request[T]) bytes() response.Converter[[]byte] {
	return response.ConverterFunc[[]byte](r.ModifyData)
}

// Bytes dispatches r with c and returns the response bytes after the
// data modifiers, skipping the converter.
func (r *Request[T]) Bytes(ctx context.Context, c *client.Client) ([]byte, error) {
	return client.Object(ctx, c, r, r.bytes())
}

// Object dispatches r with c and returns the converted value.
func (r *Request[T]) Object(ctx context.Context, c *client.Client) (T, error) {
	return client.Object[T](ctx, c, r, r)
}

// RetrieveBytes is the callback form of [Request.Bytes]. See
// [client.RetrieveObject] for the delivery rules.
func (r *Request[T]) RetrieveBytes(ctx context.Context, c *client.Client, fn func([]byte, error)) context.CancelFunc {
	return client.RetrieveObject(ctx, c, r, r.bytes(), fn)
}

// RetrieveObject is the callback form of [Request.Object].
func (r *Request[T]) RetrieveObject(ctx context.Context, c *client.Client, fn func(T, error)) context.CancelFunc {
	return client.RetrieveObject[T](ctx, c, r, r, fn)
}

// BytesStream is the stream form of [Request.Bytes].
func (r *Request[T]) BytesStream(ctx context.Context, c *client.Client) <-chan client.Result[[]byte] {
	return client.ObjectStream(ctx, c, r, r.bytes())
}

// ObjectStream is the stream form of [Request.Object].
func (r *Request[T]) ObjectStream(ctx context.Context, c *client.Client) <-chan client.Result[T] {
	return client.ObjectStream[T](ctx, c, r, r)
}
