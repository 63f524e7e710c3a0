package info

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/photobook/pkg/config"
)

func init() {
	color.NoColor = true
}

func TestInfoNotReady(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Project: "book", Docs: config.Placeholder + "DOCS_PATH"}
	n := Info{Config: cfg, Out: &buf}
	err := n.Do(context.Background())
	if !errors.Is(err, config.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	out := buf.String()
	for _, want := range []string{"✓ project", "✗ docs_path", "still a placeholder", "✗ blobs_path", "not set", config.DisabledMessage} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestInfoReady(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{
		Project: "book",
		Docs:    t.TempDir(),
		Blobs:   t.TempDir(),
		Gallery: config.Gallery{PageSize: 4, Unresolved: "drop"},
	}
	n := Info{Config: cfg, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v\n%s", err, buf.String())
	}
	if !strings.Contains(buf.String(), "Photos: 0") {
		t.Fatalf("expected photo count:\n%s", buf.String())
	}
}
