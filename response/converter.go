package response

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/adamwoolhether/wire/internal/textcodec"
	"github.com/adamwoolhether/wire/validate"
	"golang.org/x/text/encoding"
)

// Converter is the terminal step turning response bytes into a T.
type Converter[T any] interface {
	Convert([]byte) (T, error)
}

// ConverterFunc adapts a function to the [Converter] interface.
type ConverterFunc[T any] func([]byte) (T, error)

// Convert calls f.
func (f ConverterFunc[T]) Convert(data []byte) (T, error) {
	return f(data)
}

// Identity returns a converter that hands the bytes back unchanged.
func Identity() Converter[[]byte] {
	return ConverterFunc[[]byte](func(data []byte) ([]byte, error) {
		return data, nil
	})
}

// /////////////////////////////////////////////////////////////////
// JSON

// JSONOption configures the JSON converter.
type JSONOption func(*jsonOpts)

type jsonOpts struct {
	useNumber      bool
	disallowFields bool
	validate       bool
}

// UseNumber decodes numbers into json.Number instead of float64.
func UseNumber() JSONOption {
	return func(opts *jsonOpts) {
		opts.useNumber = true
	}
}

// DisallowUnknownFields rejects objects with keys that do not map
// to a field of the destination.
func DisallowUnknownFields() JSONOption {
	return func(opts *jsonOpts) {
		opts.disallowFields = true
	}
}

// WithValidation runs struct validation on the decoded value.
func WithValidation() JSONOption {
	return func(opts *jsonOpts) {
		opts.validate = true
	}
}

// JSON returns a converter decoding the bytes as JSON into a T.
func JSON[T any](optFns ...JSONOption) Converter[T] {
	var opts jsonOpts
	for _, opt := range optFns {
		opt(&opts)
	}

	return ConverterFunc[T](func(data []byte) (T, error) {
		var v T

		dec := json.NewDecoder(bytes.NewReader(data))
		if opts.useNumber {
			dec.UseNumber()
		}
		if opts.disallowFields {
			dec.DisallowUnknownFields()
		}

		if err := dec.Decode(&v); err != nil {
			return v, fmt.Errorf("decoding json: %w", err)
		}
		if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
			return v, fmt.Errorf("decoding json: unexpected data after top-level value")
		}

		if opts.validate {
			if err := validate.Struct(v); err != nil {
				return v, fmt.Errorf("validating response: %w", err)
			}
		}

		return v, nil
	})
}

// /////////////////////////////////////////////////////////////////
// Base64 text

// Base64String returns a converter that decodes base64 and interprets
// the result as text in the configured encoding.
func Base64String(optFns ...Base64Option) Converter[string] {
	opts := newBase64Opts(optFns)

	return ConverterFunc[string](func(data []byte) (string, error) {
		raw, err := opts.decode(data)
		if err != nil {
			return "", err
		}

		text, err := textcodec.Decode(raw, opts.text)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncodingMismatch, err)
		}

		return text, nil
	})
}

// Base64EncodeString encodes text with enc, UTF-8 when nil, and returns
// it as standard base64.
func Base64EncodeString(text string, enc encoding.Encoding) ([]byte, error) {
	raw, err := textcodec.Encode(text, enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodingMismatch, err)
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)

	return out, nil
}
