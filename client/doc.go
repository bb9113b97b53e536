// Package client dispatches request builders over a [transport.Transport]
// and classifies what comes back.
//
// # Building a Client
//
// Use [Build] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("myapp/1.0"),
//		client.WithThrottle(10, 5),
//	)
//
// # Dispatching
//
// Every dispatch runs the same pipeline: build the descriptor, send it
// exactly once, classify the outcome, then convert the bytes. A failure
// at any stage stops the pipeline and is reported as an [*errs.Error].
//
// The pipeline is exposed three ways. The blocking form returns the
// value directly:
//
//	data, err := c.Bytes(ctx, request.String("https://api.example.com/v1/items"))
//	item, err := client.Object(ctx, c, b, response.JSON[Item]())
//
// The callback form runs the dispatch on its own goroutine and returns
// a cancel func, nil when the builder failed:
//
//	cancel := c.RetrieveBytes(ctx, b, func(data []byte, err error) { ... })
//
// The stream form delivers exactly one [Result] on a buffered channel
// and then closes it:
//
//	res := <-client.ObjectStream(ctx, c, b, response.JSON[Item]())
//
// All three report identical errors for identical transport outcomes.
//
// # Testing
//
// Inject a [transport.Stub] with [WithTransport] to return synthetic
// outcomes without a network.
package client
