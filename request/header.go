package request

// MergePolicy decides how a [Header] treats an existing field of the same key.
type MergePolicy int

const (
	// Append adds the value next to any existing values.
	Append MergePolicy = iota
	// Replace discards any existing values.
	Replace
)

// Header is a single header field. It is a [Modifier] that never fails.
type Header struct {
	Key   string
	Value string
	Merge MergePolicy
}

// AddHeader returns a header that is appended to existing values.
func AddHeader(key, value string) Header {
	return Header{Key: key, Value: value, Merge: Append}
}

// SetHeader returns a header that replaces existing values.
func SetHeader(key, value string) Header {
	return Header{Key: key, Value: value, Merge: Replace}
}

// WithMerge returns a copy of h using policy p.
func (h Header) WithMerge(p MergePolicy) Header {
	h.Merge = p
	return h
}

// Modify implements [Modifier].
func (h Header) Modify(d Descriptor) (Descriptor, error) {
	d = d.Clone()
	h.apply(&d)
	return d, nil
}

func (h Header) apply(d *Descriptor) {
	if h.Merge == Replace {
		d.Header.Set(h.Key, h.Value)
		return
	}
	d.Header.Add(h.Key, h.Value)
}

// Common header fields. Fields that may legitimately repeat append;
// single-valued fields replace.

func Accept(ct ContentType) Header { return AddHeader("Accept", string(ct)) }

func AcceptCharset(v string) Header { return AddHeader("Accept-Charset", v) }

func AcceptEncoding(v string) Header { return AddHeader("Accept-Encoding", v) }

func AcceptLanguage(v string) Header { return AddHeader("Accept-Language", v) }

func CacheControl(v string) Header { return AddHeader("Cache-Control", v) }

func Cookie(v string) Header { return AddHeader("Cookie", v) }

func IfMatch(v string) Header { return AddHeader("If-Match", v) }

func Referer(v string) Header { return SetHeader("Referer", v) }

func UserAgent(v string) Header { return SetHeader("User-Agent", v) }

func ContentMD5(v string) Header { return SetHeader("Content-MD5", v) }

// ContentType is a Content-Type header value.
type ContentType string

const (
	ContentTypeFormData       ContentType = "multipart/form-data"
	ContentTypeURLEncodedForm ContentType = "application/x-www-form-urlencoded;charset=utf-8"
	ContentTypeJSON           ContentType = "application/json;charset=utf-8"
	ContentTypePlainText      ContentType = "text/plain;charset=utf-8"
)

// Header returns the Content-Type field, replacing existing values.
func (ct ContentType) Header() Header {
	return SetHeader("Content-Type", string(ct))
}

// Modify implements [Modifier].
func (ct ContentType) Modify(d Descriptor) (Descriptor, error) {
	return ct.Header().Modify(d)
}

// Authorization is an Authorization header value.
type Authorization string

// Bearer returns a bearer token authorization.
func Bearer(token string) Authorization { return Authorization("Bearer " + token) }

// Basic returns a basic authorization with an already encoded token.
func Basic(token string) Authorization { return Authorization("Basic " + token) }

// Digest returns a digest authorization.
func Digest(token string) Authorization { return Authorization("Digest " + token) }

// Header returns the Authorization field, replacing existing values.
func (a Authorization) Header() Header {
	return SetHeader("Authorization", string(a))
}

// Modify implements [Modifier].
func (a Authorization) Modify(d Descriptor) (Descriptor, error) {
	return a.Header().Modify(d)
}
