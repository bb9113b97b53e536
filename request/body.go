package request

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adamwoolhether/wire/internal/textcodec"
	"github.com/adamwoolhether/wire/validate"
	"golang.org/x/text/encoding"
)

var (
	// ErrEncodingFailure is returned by [PlainTextBody] when the text
	// cannot be represented in the requested encoding.
	ErrEncodingFailure = errors.New("text encoding failure")
	// ErrEmptyURL is returned when a descriptor has no URL.
	ErrEmptyURL = errors.New("request contains empty url")
	// ErrParseComponents is returned when a URL cannot be decomposed
	// into components.
	ErrParseComponents = errors.New("failed to parse url components")
)

// JSONOption configures [JSONBody].
type JSONOption func(*jsonOpts)

type jsonOpts struct {
	marshal  func(any) ([]byte, error)
	validate bool
}

// WithEncoder replaces [json.Marshal] as the payload encoder.
func WithEncoder(marshal func(any) ([]byte, error)) JSONOption {
	return func(opts *jsonOpts) {
		opts.marshal = marshal
	}
}

// WithPayloadValidation validates a struct payload against its
// `validate` tags before it is encoded.
func WithPayloadValidation() JSONOption {
	return func(opts *jsonOpts) {
		opts.validate = true
	}
}

// JSONBody returns a modifier that encodes payload as the request body
// and sets the JSON Content-Type.
func JSONBody(payload any, optFns ...JSONOption) Modifier {
	opts := jsonOpts{marshal: json.Marshal}
	for _, opt := range optFns {
		opt(&opts)
	}

	return ModifierFunc(func(d Descriptor) (Descriptor, error) {
		if opts.validate {
			if err := validate.Struct(payload); err != nil {
				return Descriptor{}, fmt.Errorf("validating payload: %w", err)
			}
		}

		body, err := opts.marshal(payload)
		if err != nil {
			return Descriptor{}, fmt.Errorf("encoding json payload: %w", err)
		}

		ContentTypeJSON.Header().apply(&d)
		d.Body = body

		return d, nil
	})
}

// TextOption configures [PlainTextBody].
type TextOption func(*textOpts)

type textOpts struct {
	enc encoding.Encoding
}

// WithTextEncoding sets the encoding used for the body. UTF-8 is the default.
func WithTextEncoding(enc encoding.Encoding) TextOption {
	return func(opts *textOpts) {
		opts.enc = enc
	}
}

// PlainTextBody returns a modifier that encodes text as the request body
// and sets the plain text Content-Type.
func PlainTextBody(text string, optFns ...TextOption) Modifier {
	var opts textOpts
	for _, opt := range optFns {
		opt(&opts)
	}

	return ModifierFunc(func(d Descriptor) (Descriptor, error) {
		body, err := textcodec.Encode(text, opts.enc)
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: %w", ErrEncodingFailure, err)
		}

		ContentTypePlainText.Header().apply(&d)
		d.Body = body

		return d, nil
	})
}
