package wire_test

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/adamwoolhether/wire"
	"github.com/adamwoolhether/wire/client"
	"github.com/adamwoolhether/wire/errs"
	"github.com/adamwoolhether/wire/request"
	"github.com/adamwoolhether/wire/response"
	"github.com/adamwoolhether/wire/transport"
	"github.com/google/go-cmp/cmp"
)

const baseURL = "https://example.com/v1/users"

type user struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestRequest_Build(t *testing.T) {
	r := wire.NewBytes(request.String(baseURL), wire.WithRequestModifiers(
		request.POST,
		request.Accept(request.ContentTypeJSON),
		request.URLEncodedParams(map[string]string{"say": "台灣難波萬"}, request.QueryString),
	))

	d, err := r.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if d.Method != http.MethodPost {
		t.Errorf("Method = %q, want POST", d.Method)
	}
	if d.URL.RawQuery != "say=%E5%8F%B0%E7%81%A3%E9%9B%A3%E6%B3%A2%E8%90%AC" {
		t.Errorf("RawQuery = %q", d.URL.RawQuery)
	}
	if got := d.Header.Get("Accept"); got != string(request.ContentTypeJSON) {
		t.Errorf("Accept = %q", got)
	}

	again, err := r.Build()
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if again.URL.String() != d.URL.String() {
		t.Errorf("builds differ: %q vs %q", again.URL, d.URL)
	}
}

func TestRequest_Nested(t *testing.T) {
	var order []string
	tag := func(name string) request.Modifier {
		return request.ModifierFunc(func(d request.Descriptor) (request.Descriptor, error) {
			order = append(order, name)
			d.Header.Add("X-Order", name)
			return d, nil
		})
	}
	suffix := func(s string) response.DataModifier {
		return response.DataModifierFunc(func(b []byte) ([]byte, error) {
			return append(b, s...), nil
		})
	}

	inner := wire.NewBytes(request.String(baseURL),
		wire.WithRequestModifiers(tag("inner")),
		wire.WithDataModifiers(suffix("-inner")),
	)
	outer := wire.New[[]byte](inner, inner,
		wire.WithRequestModifiers(tag("outer")),
		wire.WithDataModifiers(suffix("-outer")),
	)

	d, err := outer.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if diff := cmp.Diff([]string{"inner", "outer"}, d.Header.Values("X-Order")); diff != "" {
		t.Errorf("modifier order mismatch (-want +got):\n%s", diff)
	}

	got, err := outer.Convert([]byte("data"))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if string(got) != "data-outer-inner" {
		t.Errorf("convert = %q, want %q", got, "data-outer-inner")
	}
}

func TestRequest_ConvertShortCircuit(t *testing.T) {
	errStop := errors.New("stop")

	var ran []string
	track := func(name string, err error) response.DataModifier {
		return response.DataModifierFunc(func(b []byte) ([]byte, error) {
			ran = append(ran, name)
			return b, err
		})
	}

	converted := false
	r := wire.NewFunc(request.String(baseURL), func(b []byte) (string, error) {
		converted = true
		return string(b), nil
	}, wire.WithDataModifiers(track("a", nil), track("b", errStop), track("c", nil)))

	if _, err := r.Convert([]byte("x")); !errors.Is(err, errStop) {
		t.Fatalf("err = %v, want %v", err, errStop)
	}
	if diff := cmp.Diff([]string{"a", "b"}, ran); diff != "" {
		t.Errorf("ran mismatch (-want +got):\n%s", diff)
	}
	if converted {
		t.Error("converter ran after a data modifier failed")
	}
}

func TestRequest_Invalid(t *testing.T) {
	if _, err := wire.NewBytes(nil).Build(); !errors.Is(err, wire.ErrNilBuilder) {
		t.Errorf("err = %v, want %v", err, wire.ErrNilBuilder)
	}
	if _, err := wire.NewFunc[int](request.String(baseURL), nil).Convert(nil); !errors.Is(err, wire.ErrNilConverter) {
		t.Errorf("err = %v, want %v", err, wire.ErrNilConverter)
	}
	if _, err := wire.NewBytes(request.String("bad url")).Build(); !errors.Is(err, errs.InvalidURL("bad url")) {
		t.Errorf("err = %v, want source error", err)
	}
}

func TestRequest_Options_Isolated(t *testing.T) {
	mods := []request.Modifier{request.AddHeader("X-A", "1")}
	r := wire.NewBytes(request.String(baseURL), wire.WithRequestModifiers(mods...))
	mods[0] = request.AddHeader("X-B", "2")

	d, err := r.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if d.Header.Get("X-A") != "1" || d.Header.Get("X-B") != "" {
		t.Errorf("request shares the caller's modifier slice: %v", d.Header)
	}
}

func TestRequest_Dispatch(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"id":9,"name":"grace"}`))

	stub := new(transport.Stub)
	stub.Handle(http.MethodGet, baseURL+"/9", func(r *http.Request) transport.Outcome {
		if r.Header.Get("Authorization") != "Bearer token" {
			return transport.Reply(http.StatusUnauthorized, []byte("no token"))
		}
		return transport.Reply(http.StatusOK, []byte(encoded))
	})

	var seen []request.Builder
	c, err := wire.NewClient(
		client.WithTransport(stub),
		client.WithObserver(client.ObserverFuncs{
			Started: func(b request.Builder) { seen = append(seen, b) },
		}),
	)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	r := wire.New(request.String(baseURL+"/9"), response.JSON[user](),
		wire.WithRequestModifiers(request.Bearer("token")),
		wire.WithDataModifiers(response.Base64Decode()),
	)

	got, err := r.Object(t.Context(), c)
	if err != nil {
		t.Fatalf("object: %v", err)
	}
	if diff := cmp.Diff(user{ID: 9, Name: "grace"}, got); diff != "" {
		t.Errorf("object mismatch (-want +got):\n%s", diff)
	}

	raw, err := r.Bytes(t.Context(), c)
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	if string(raw) != `{"id":9,"name":"grace"}` {
		t.Errorf("bytes = %q", raw)
	}

	done := make(chan client.Result[user], 1)
	r.RetrieveObject(t.Context(), c, func(u user, err error) {
		done <- client.Result[user]{Value: u, Err: err}
	})
	if res := <-done; res.Err != nil || res.Value.Name != "grace" {
		t.Errorf("callback = %+v", res)
	}

	rawDone := make(chan error, 1)
	r.RetrieveBytes(t.Context(), c, func(_ []byte, err error) { rawDone <- err })
	if err := <-rawDone; err != nil {
		t.Errorf("callback bytes: %v", err)
	}

	if res := <-r.ObjectStream(t.Context(), c); res.Err != nil || res.Value.ID != 9 {
		t.Errorf("stream = %+v", res)
	}
	if res := <-r.BytesStream(t.Context(), c); res.Err != nil || !strings.Contains(string(res.Value), "grace") {
		t.Errorf("bytes stream = %+v", res)
	}

	for i, b := range seen {
		if b != request.Builder(r) {
			t.Errorf("observer %d got %T, want the request itself", i, b)
		}
	}
	if len(seen) != 6 {
		t.Errorf("observer saw %d dispatches, want 6", len(seen))
	}
}

func TestRequest_DispatchErrors(t *testing.T) {
	stub := new(transport.Stub)
	stub.Respond(http.MethodGet, baseURL, transport.Reply(http.StatusOK, []byte("%%% not base64")))

	c, err := wire.NewClient(client.WithTransport(stub))
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	r := wire.New(request.String(baseURL), response.Base64String(), wire.WithRequestModifiers(
		request.JSONBody(struct{}{}, request.WithEncoder(func(any) ([]byte, error) {
			return nil, errors.New("encoder down")
		})),
	))
	if _, err := r.Object(t.Context(), c); errs.StageOf(err) != errs.StageBuilder {
		t.Errorf("err = %v, want builder stage", err)
	}
	if n := len(stub.Requests()); n != 0 {
		t.Errorf("transport invoked %d times after a build failure", n)
	}

	plain := wire.New(request.String(baseURL), response.Base64String())
	_, err = plain.Object(t.Context(), c)
	if errs.StageOf(err) != errs.StageConverter || !errors.Is(err, response.ErrNotBase64) {
		t.Errorf("err = %v, want converter stage wrapping ErrNotBase64", err)
	}

	if _, err := plain.Bytes(t.Context(), c); err != nil {
		t.Errorf("bytes should skip the converter: %v", err)
	}
}
