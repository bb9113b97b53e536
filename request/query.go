package request

import (
	"slices"
	"strings"
)

// Destination selects where [URLEncodedQuery] writes its items.
type Destination int

const (
	// QueryString appends the encoded items to the URL's query.
	QueryString Destination = iota
	// HTTPBody writes the encoded items as a form body.
	HTTPBody
)

// QueryItem is a name with an optional value.
type QueryItem struct {
	Name  string
	Value *string
}

// Item returns a QueryItem with a value.
func Item(name, value string) QueryItem {
	return QueryItem{Name: name, Value: &value}
}

// Flag returns a QueryItem without a value.
func Flag(name string) QueryItem {
	return QueryItem{Name: name}
}

// QueryOption configures [URLEncodedQuery].
type QueryOption func(*queryOpts)

type queryOpts struct {
	allowed AllowedSet
}

// WithAllowedCharacters overrides [RFC3986Allowed].
func WithAllowedCharacters(a AllowedSet) QueryOption {
	return func(opts *queryOpts) {
		opts.allowed = a
	}
}

// URLEncodedQuery returns a modifier that percent-encodes items into the
// URL query or into an application/x-www-form-urlencoded body.
//
// For [QueryString] the encoded items are appended after any existing
// query; it fails with [ErrEmptyURL] when the descriptor has no URL and
// with [ErrParseComponents] when the URL is opaque. For [HTTPBody], items
// without a value are skipped.
func URLEncodedQuery(items []QueryItem, dest Destination, optFns ...QueryOption) Modifier {
	opts := queryOpts{allowed: RFC3986Allowed}
	for _, opt := range optFns {
		opt(&opts)
	}
	items = slices.Clone(items)

	q := urlEncodedQuery{items: items, dest: dest, allowed: opts.allowed}
	return ModifierFunc(q.modify)
}

// URLEncodedParams is [URLEncodedQuery] for a map of parameters, encoded in
// key order.
func URLEncodedParams(params map[string]string, dest Destination, optFns ...QueryOption) Modifier {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	items := make([]QueryItem, 0, len(keys))
	for _, k := range keys {
		items = append(items, Item(k, params[k]))
	}

	return URLEncodedQuery(items, dest, optFns...)
}

type urlEncodedQuery struct {
	items   []QueryItem
	dest    Destination
	allowed AllowedSet
}

func (q urlEncodedQuery) modify(d Descriptor) (Descriptor, error) {
	if q.dest == HTTPBody {
		pairs := make([]string, 0, len(q.items))
		for _, it := range q.items {
			if it.Value == nil {
				continue
			}
			pairs = append(pairs, q.allowed.Escape(it.Name)+"="+q.allowed.Escape(*it.Value))
		}

		ContentTypeURLEncodedForm.Header().apply(&d)
		d.Body = []byte(strings.Join(pairs, "&"))

		return d, nil
	}

	if d.URL == nil {
		return Descriptor{}, ErrEmptyURL
	}
	if d.URL.Opaque != "" {
		return Descriptor{}, ErrParseComponents
	}

	encoded := make([]string, 0, len(q.items)+1)
	if d.URL.RawQuery != "" {
		encoded = append(encoded, d.URL.RawQuery)
	}
	for _, it := range q.items {
		pair := q.allowed.Escape(it.Name)
		if it.Value != nil {
			pair += "=" + q.allowed.Escape(*it.Value)
		}
		encoded = append(encoded, pair)
	}

	d.URL.RawQuery = strings.Join(encoded, "&")
	d.URL.ForceQuery = false

	return d, nil
}
