package request

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/adamwoolhether/wire/errs"
	"golang.org/x/net/idna"
)

// Builder produces a request descriptor or fails.
type Builder interface {
	Build() (Descriptor, error)
}

// BuilderFunc adapts a function to the [Builder] interface.
type BuilderFunc func() (Descriptor, error)

// Build calls f.
func (f BuilderFunc) Build() (Descriptor, error) {
	return f()
}

// FromURL returns a [Builder] that always succeeds with a GET descriptor for u.
func FromURL(u *url.URL) Builder {
	u = cloneURL(u)
	return BuilderFunc(func() (Descriptor, error) {
		return NewDescriptor(u), nil
	})
}

// String is a [Builder] for a URL string. Building fails with an
// [errs.StageSource] error carrying the original string when it is not a
// syntactically valid absolute URL.
type String string

// Build implements [Builder].
func (s String) Build() (Descriptor, error) {
	u, err := ParseURL(string(s))
	if err != nil {
		return Descriptor{}, err
	}

	return NewDescriptor(u), nil
}

// ParseURL parses raw as an absolute URL with a host whose String method
// returns raw unchanged. Raw spaces, backslashes, non-ASCII characters,
// malformed escapes, undecodable punycode labels and strings net/url would
// rewrite are rejected with an [errs.StageSource] error.
func ParseURL(raw string) (*url.URL, error) {
	u, err := parseAbsolute(raw)
	if err != nil {
		e := errs.InvalidURL(raw)
		e.Err = err
		return nil, e
	}

	return u, nil
}

var (
	errRelative = errors.New("url is not absolute")
	errNoHost   = errors.New("url has no host")

	// errNotCanonical marks strings net/url cannot reproduce, such as an
	// empty fragment or a needlessly escaped user name.
	errNotCanonical = errors.New("url does not round-trip")
)

func parseAbsolute(raw string) (*url.URL, error) {
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '%':
			if i+2 >= len(raw) || !isHex(raw[i+1]) || !isHex(raw[i+2]) {
				return nil, fmt.Errorf("malformed escape at offset %d", i)
			}
		case !uriChars.contains(c):
			return nil, fmt.Errorf("invalid character %q at offset %d", c, i)
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, errRelative
	}
	if u.Host == "" {
		return nil, errNoHost
	}

	if err := checkPunycode(u.Hostname()); err != nil {
		return nil, err
	}

	// url.Parse lowercases the scheme; keep it as written. http.Request
	// parses the URL again and normalizes it there.
	u.Scheme = raw[:len(u.Scheme)]
	if u.String() != raw {
		return nil, errNotCanonical
	}

	return u, nil
}

// checkPunycode rejects host labels carrying the ACE prefix that do not
// decode. Other labels are left to the resolver.
func checkPunycode(host string) error {
	if net.ParseIP(host) != nil {
		return nil
	}

	for label := range strings.SplitSeq(host, ".") {
		label = strings.ToLower(label)
		if !strings.HasPrefix(label, "xn--") {
			continue
		}
		if _, err := idna.Punycode.ToUnicode(label); err != nil {
			return fmt.Errorf("invalid host label %q: %w", label, err)
		}
	}

	return nil
}

// uriChars holds every character that may appear unescaped in a URI
// reference: unreserved, gen-delims and sub-delims.
var uriChars = NewAllowedSet(unreserved + ":/?#[]@" + "!$&'()*+,;=")

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}
