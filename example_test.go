package wire_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/adamwoolhether/wire"
	"github.com/adamwoolhether/wire/client"
	"github.com/adamwoolhether/wire/errs"
	"github.com/adamwoolhether/wire/request"
	"github.com/adamwoolhether/wire/response"
)

func ExampleNewClient() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"msg":"hello"}`)
	}))
	defer ts.Close()

	c, err := wire.NewClient(client.WithTimeout(5 * time.Second))
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	type message struct {
		Msg string `json:"msg"`
	}

	r := wire.New(request.String(ts.URL), response.JSON[message]())

	resp, err := r.Object(context.Background(), c)
	if err != nil {
		fmt.Println("dispatch error:", err)
		return
	}

	fmt.Println(resp.Msg)
	// Output: hello
}

func ExampleRequest_Bytes() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.URL.RawQuery)
	}))
	defer ts.Close()

	c, err := wire.NewClient()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	r := wire.NewBytes(request.String(ts.URL), wire.WithRequestModifiers(
		request.URLEncodedParams(map[string]string{"say": "台灣難波萬"}, request.QueryString),
	))

	data, err := r.Bytes(context.Background(), c)
	if err != nil {
		fmt.Println("dispatch error:", err)
		return
	}

	fmt.Println(string(data))
	// Output: say=%E5%8F%B0%E7%81%A3%E9%9B%A3%E6%B3%A2%E8%90%AC
}

func ExampleRequest_ObjectStream() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "token expired")
	}))
	defer ts.Close()

	c, err := wire.NewClient()
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	r := wire.NewFunc(request.String(ts.URL), func(b []byte) (int, error) { return len(b), nil })

	res := <-r.ObjectStream(context.Background(), c)
	if e, ok := errs.As(res.Err); ok {
		fmt.Println(e.Stage, e.StatusCode, string(e.Body))
	}
	// Output: transport 401 token expired
}
