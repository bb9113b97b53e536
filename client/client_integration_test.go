//go:build integration

package client_test

import (
	"strings"
	"testing"
	"time"

	"github.com/adamwoolhether/wire/client"
	"github.com/adamwoolhether/wire/request"
	"github.com/adamwoolhether/wire/response"
)

func TestIntegration_RemoteBytes(t *testing.T) {
	c, err := client.Build(client.WithTimeout(10 * time.Second))
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	data, err := c.Bytes(t.Context(), request.String("https://go.dev/VERSION?m=text"))
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}

	if !strings.HasPrefix(string(data), "go") {
		t.Errorf("expected content to start with %q, got %q", "go", string(data))
	}
}

func TestIntegration_RemoteObject(t *testing.T) {
	type release struct {
		Version string `json:"version"`
		Stable  bool   `json:"stable"`
	}

	c, err := client.Build(client.WithTimeout(10 * time.Second))
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}

	b := request.String("https://go.dev/dl/?mode=json")
	releases, err := client.Object(t.Context(), c, b, response.JSON[[]release]())
	if err != nil {
		t.Fatalf("object: %v", err)
	}

	if len(releases) == 0 || !strings.HasPrefix(releases[0].Version, "go") {
		t.Errorf("unexpected releases: %+v", releases)
	}
}
