// Package wire composes HTTP requests from reusable pieces and turns the
// responses into typed values.
//
// A [Request] bundles a [request.Builder], an ordered chain of
// [request.Modifier] values applied before sending, an ordered chain of
// [response.DataModifier] values applied to the received bytes, and a
// terminal [response.Converter]. A Request is itself a Builder and a
// Converter, so it can be nested inside another Request or handed
// directly to a [client.Client].
//
//	items := wire.New(
//		request.String("https://api.example.com/v1/items"),
//		response.JSON[[]Item](),
//		wire.WithRequestModifiers(request.Bearer(token), request.RequestID()),
//	)
//	got, err := items.Object(ctx, c)
//
// Every failure is an [*errs.Error] naming the stage that failed.
package wire

import (
	"github.com/adamwoolhether/wire/client"
)

// NewClient instantiates a new *client.Client with the provided options.
// If not specified, net/http's default client and transport are used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}
