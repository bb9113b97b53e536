package request

import "strings"

const unreserved = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

// RFC3986Allowed is the default set of characters left unescaped in
// URL-encoded queries: the RFC 3986 unreserved characters plus the
// sub-delims and gen-delims that carry no meaning inside a query value.
// '&', '=', '+', ';', '#', '[' and ']' are always escaped.
var RFC3986Allowed = NewAllowedSet(unreserved + "!$'()*,/:?@")

// AllowedSet is a set of ASCII characters that percent-encoding leaves
// untouched.
type AllowedSet struct {
	set [128]bool
}

// NewAllowedSet returns the set of ASCII characters in chars. Non-ASCII
// characters are ignored; they are always escaped.
func NewAllowedSet(chars string) AllowedSet {
	var a AllowedSet
	for i := 0; i < len(chars); i++ {
		if c := chars[i]; c < 128 {
			a.set[c] = true
		}
	}

	return a
}

func (a AllowedSet) contains(c byte) bool {
	return c < 128 && a.set[c]
}

// Escape percent-encodes every byte of s's UTF-8 form that is not in a.
func (a AllowedSet) Escape(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if a.contains(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}

	return b.String()
}
