// Package response turns retrieved bytes into typed values.
//
// A [DataModifier] transforms bytes into bytes; a [Converter] is the terminal
// step that turns bytes into an output value. Both fail with an error
// instead of panicking and hold no mutable state.
package response

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/adamwoolhether/wire/internal/fold"
	"golang.org/x/text/encoding"
)

var (
	// ErrNotBase64 is returned when the input is not valid base64.
	ErrNotBase64 = errors.New("input not base64 encoded")
	// ErrEncodingMismatch is returned when decoded bytes are not valid text
	// in the requested encoding.
	ErrEncodingMismatch = errors.New("string encoding mismatch")
)

// DataModifier transforms response bytes or fails.
type DataModifier interface {
	Modify([]byte) ([]byte, error)
}

// DataModifierFunc adapts a function to the [DataModifier] interface.
type DataModifierFunc func([]byte) ([]byte, error)

// Modify calls f.
func (f DataModifierFunc) Modify(data []byte) ([]byte, error) {
	return f(data)
}

// Apply runs modifiers over data in order, stopping at the first failure.
func Apply(data []byte, modifiers ...DataModifier) ([]byte, error) {
	return fold.UntilFailure(data, modifiers)
}

// Base64Option configures the base64 modifier and converter.
type Base64Option func(*base64Opts)

type base64Opts struct {
	enc           *base64.Encoding
	ignoreUnknown bool
	text          encoding.Encoding
}

// WithBase64Encoding selects the base64 alphabet and padding. The default
// is [base64.StdEncoding].
func WithBase64Encoding(enc *base64.Encoding) Base64Option {
	return func(opts *base64Opts) {
		opts.enc = enc
	}
}

// IgnoreUnknownCharacters drops bytes outside the base64 alphabet before
// decoding.
func IgnoreUnknownCharacters() Base64Option {
	return func(opts *base64Opts) {
		opts.ignoreUnknown = true
	}
}

// WithStringEncoding sets the text encoding used by [Base64String].
// UTF-8 is the default.
func WithStringEncoding(enc encoding.Encoding) Base64Option {
	return func(opts *base64Opts) {
		opts.text = enc
	}
}

func newBase64Opts(optFns []Base64Option) base64Opts {
	opts := base64Opts{enc: base64.StdEncoding}
	for _, opt := range optFns {
		opt(&opts)
	}

	return opts
}

func (o base64Opts) decode(data []byte) ([]byte, error) {
	if o.ignoreUnknown {
		data = o.keepAlphabet(data)
	}

	out := make([]byte, o.enc.DecodedLen(len(data)))
	n, err := o.enc.Decode(out, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotBase64, err)
	}

	return out[:n], nil
}

// keepAlphabet drops every byte the configured encoding cannot decode.
// The padding byte is kept only for padded encodings.
func (o base64Opts) keepAlphabet(data []byte) []byte {
	var known [256]bool
	for i := range 64 {
		known[o.enc.EncodeToString([]byte{byte(i << 2)})[0]] = true
	}
	if o.enc.EncodedLen(1) == 4 {
		known[o.enc.EncodeToString([]byte{0})[3]] = true
	}

	out := make([]byte, 0, len(data))
	for _, b := range data {
		if known[b] {
			out = append(out, b)
		}
	}

	return out
}

// Base64Decode returns a modifier that decodes base64 input.
func Base64Decode(optFns ...Base64Option) DataModifier {
	opts := newBase64Opts(optFns)

	return DataModifierFunc(opts.decode)
}
