package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/photobook/pkg/photo"
)

type testConfig struct {
	path string
}

func (t testConfig) DocsPath() string {
	return t.path
}

func (t testConfig) BlobsPath() string {
	return t.path
}

func nextSnapshot(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("live query closed unexpectedly")
		}
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return Snapshot{}
}

func TestLiveQueryEmitsSnapshots(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base}, WithThrottle(20*time.Millisecond))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.LiveQuery(ctx)
	if err != nil {
		t.Fatalf("live query: %v", err)
	}

	initial := nextSnapshot(t, ch)
	if initial.Err != nil || len(initial.Records) != 0 {
		t.Fatalf("expected empty initial snapshot, got %+v", initial)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if _, err := p.Append(ctx, photo.Record{Month: 5, DownloadURL: "file:///a.jpg"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-ch:
			if snap.Err != nil {
				t.Fatalf("snapshot error: %v", snap.Err)
			}
			if len(snap.Records) == 1 {
				if snap.Records[0].DownloadURL != "file:///a.jpg" {
					t.Fatalf("unexpected record %+v", snap.Records[0])
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot with appended record")
		}
	}
}

func TestLiveQueryClosesOnCancel(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.LiveQuery(ctx)
	if err != nil {
		t.Fatalf("live query: %v", err)
	}
	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}
