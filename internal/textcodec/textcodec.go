// Package textcodec converts between Go strings and bytes in a
// specific text encoding, failing instead of substituting when a value
// cannot be represented.
package textcodec

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrUnrepresentable is returned when text cannot be encoded.
	ErrUnrepresentable = errors.New("text not representable in encoding")
	// ErrMalformed is returned when bytes are not valid in the encoding.
	ErrMalformed = errors.New("bytes not valid in encoding")
)

// Encode returns text encoded with enc. A nil enc means UTF-8.
func Encode(text string, enc encoding.Encoding) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: invalid UTF-8 input", ErrUnrepresentable)
	}
	if isUTF8(enc) {
		return []byte(text), nil
	}

	b, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnrepresentable, err)
	}

	return b, nil
}

// Decode interprets b as text in enc. Bytes that do not survive a
// decode/encode round trip are rejected. A nil enc means UTF-8.
func Decode(b []byte, enc encoding.Encoding) (string, error) {
	if isUTF8(enc) {
		if !utf8.Valid(b) {
			return "", ErrMalformed
		}
		return string(b), nil
	}

	decoded, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	reencoded, err := enc.NewEncoder().Bytes(decoded)
	if err != nil || !bytes.Equal(reencoded, b) {
		return "", ErrMalformed
	}

	return string(decoded), nil
}

func isUTF8(enc encoding.Encoding) bool {
	return enc == nil || enc == unicode.UTF8
}
