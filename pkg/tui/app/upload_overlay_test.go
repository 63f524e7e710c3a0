package teaui

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/photobook/pkg/app"
	"tableflip.dev/photobook/pkg/category"
	"tableflip.dev/photobook/pkg/config"
	"tableflip.dev/photobook/pkg/photo"
	"tableflip.dev/photobook/pkg/store"
	"tableflip.dev/photobook/pkg/upload"
)

type fakeDocs struct {
	mu      sync.Mutex
	records []photo.Record
}

func (f *fakeDocs) List(context.Context) ([]photo.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]photo.Record(nil), f.records...), nil
}

func (f *fakeDocs) Append(_ context.Context, r photo.Record) (photo.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = r.Filename
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeDocs) LiveQuery(context.Context) (<-chan store.Snapshot, error) {
	return nil, errors.New("not supported")
}

func (f *fakeDocs) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeBlobs struct {
	failOn string
	gate   chan struct{}
}

func (f *fakeBlobs) Put(ctx context.Context, r io.Reader, size int64, blobPath, contentType string, progress func(store.Progress)) (store.Token, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return store.Token{}, ctx.Err()
		}
	}
	if f.failOn != "" && strings.HasSuffix(blobPath, f.failOn) {
		return store.Token{}, errors.New("quota exceeded")
	}
	if progress != nil {
		progress(store.Progress{Transferred: size, Total: size})
	}
	return store.Token{Path: blobPath, Size: size}, nil
}

func (f *fakeBlobs) ResolveURL(_ context.Context, tok store.Token) (string, error) {
	return "file:///" + tok.Path, nil
}

func newUploadModel(t *testing.T, blobs *fakeBlobs) (*Model, *fakeDocs) {
	t.Helper()
	docs := &fakeDocs{}
	svc := &app.Service{Docs: docs, Blobs: blobs, Model: category.Months(), Policy: category.DropUnresolved}
	m, err := New(svc, Options{PageSize: 4})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return m, docs
}

func photoFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
		if err := os.WriteFile(paths[i], []byte("jpeg-"+n), 0o644); err != nil {
			t.Fatalf("write %s: %v", n, err)
		}
	}
	return strings.Join(paths, ", ")
}

// settle runs a command the way the runtime would, batches concurrently,
// and returns the non-nil messages in arrival order.
func settle(cmd tea.Cmd) ([]tea.Msg, error) {
	if cmd == nil {
		return nil, nil
	}
	first := cmd()
	batch, ok := first.(tea.BatchMsg)
	if !ok {
		if first == nil {
			return nil, nil
		}
		return []tea.Msg{first}, nil
	}
	out := make(chan tea.Msg, len(batch))
	for _, c := range batch {
		go func(c tea.Cmd) { out <- c() }(c)
	}
	var msgs []tea.Msg
	for range batch {
		select {
		case msg := <-out:
			if msg != nil {
				msgs = append(msgs, msg)
			}
		case <-time.After(5 * time.Second):
			return msgs, errors.New("command did not settle")
		}
	}
	return msgs, nil
}

func mustSettle(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	msgs, err := settle(cmd)
	if err != nil {
		t.Fatalf("settle: %v", err)
	}
	return msgs
}

var (
	keyUpload = tea.KeyPressMsg{Text: "u", Code: 'u'}
	keyEnter  = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func TestUploadOverlayOpensAndCloses(t *testing.T) {
	m, _ := newUploadModel(t, &fakeBlobs{})
	m = send(t, m, keyUpload)
	if !m.UploadOpen() || !strings.Contains(m.View(), "Upload photos") {
		t.Fatalf("expected the upload form:\n%s", m.View())
	}
	m = send(t, m, keyQuit)
	if m.ctx.Err() != nil || !m.UploadOpen() {
		t.Fatalf("q inside the form must not quit")
	}
	m = send(t, m, keyEsc)
	if m.UploadOpen() {
		t.Fatalf("esc should close the form")
	}
}

func TestUploadOverlayRequiresMonth(t *testing.T) {
	m, docs := newUploadModel(t, &fakeBlobs{})
	m = send(t, m, keyUpload)
	m.upload.files.SetValue(photoFiles(t, "a.jpg"))
	_, cmd := m.Update(keyEnter)
	if cmd != nil {
		t.Fatalf("nothing should start without a month")
	}
	if !strings.Contains(m.View(), "Pick a month.") {
		t.Fatalf("expected month message:\n%s", m.View())
	}
	if docs.count() != 0 {
		t.Fatalf("store touched before validation passed")
	}
}

func TestUploadOverlayRequiresFiles(t *testing.T) {
	m, _ := newUploadModel(t, &fakeBlobs{})
	m = send(t, m, keyUpload, keyRight)
	if _, cmd := m.Update(keyEnter); cmd != nil {
		t.Fatalf("nothing should start without files")
	}
	if !strings.Contains(m.View(), upload.Message(upload.ErrNoFiles)) {
		t.Fatalf("expected files message:\n%s", m.View())
	}
}

func TestUploadOverlayResetsAfterSuccess(t *testing.T) {
	m, docs := newUploadModel(t, &fakeBlobs{})
	m = send(t, m, keyUpload, keyRight, keyRight)
	if got := m.upload.Form().Category; got != 1 {
		t.Fatalf("month = %d, want February", got)
	}
	m.upload.author.SetValue("Ada")
	m.upload.notes.SetValue("snow day")
	m.upload.files.SetValue(photoFiles(t, "a.jpg", "b.jpg"))

	_, cmd := m.Update(keyEnter)
	if cmd == nil {
		t.Fatalf("expected the batch to start")
	}
	if !m.upload.busy() {
		t.Fatalf("controls must be disabled while the batch runs")
	}
	m = send(t, m, mustSettle(t, cmd)...)

	if m.upload.busy() {
		t.Fatalf("controls must be re-enabled after the batch")
	}
	if !strings.Contains(m.View(), "Upload complete!") {
		t.Fatalf("expected summary:\n%s", m.View())
	}
	f := m.upload.Form()
	if f.Category != 1 || f.Author != "" || f.Note != "" || len(f.Files) != 0 || m.upload.files.Value() != "" {
		t.Fatalf("form not reset with month kept: %+v files=%q", f, m.upload.files.Value())
	}
	if docs.count() != 2 {
		t.Fatalf("expected 2 records, got %d", docs.count())
	}
	recs, _ := docs.List(context.Background())
	for _, r := range recs {
		if r.Month != 1 || r.Photographer == nil || *r.Photographer != "Ada" {
			t.Fatalf("unexpected record %+v", r)
		}
	}
}

func TestUploadOverlayKeepsFormOnPartialFailure(t *testing.T) {
	m, docs := newUploadModel(t, &fakeBlobs{failOn: "b.jpg"})
	m = send(t, m, keyUpload, keyRight)
	m.upload.author.SetValue("Ada")
	m.upload.files.SetValue(photoFiles(t, "a.jpg", "b.jpg"))

	_, cmd := m.Update(keyEnter)
	m = send(t, m, mustSettle(t, cmd)...)

	view := m.View()
	if !strings.Contains(view, "Uploaded 1 of 2. Retry failed files: b.jpg") || !strings.Contains(view, "✗ b.jpg") {
		t.Fatalf("expected partial summary:\n%s", view)
	}
	if m.upload.Form().Author != "Ada" || m.upload.files.Value() == "" {
		t.Fatalf("form must be kept for a retry")
	}
	if docs.count() != 1 {
		t.Fatalf("expected the successful record, got %d", docs.count())
	}
}

func TestUploadOverlaySingleFlight(t *testing.T) {
	gate := make(chan struct{})
	m, _ := newUploadModel(t, &fakeBlobs{gate: gate})
	m = send(t, m, keyUpload, keyRight)
	m.upload.files.SetValue(photoFiles(t, "a.jpg"))

	_, cmd := m.Update(keyEnter)
	if cmd == nil {
		t.Fatalf("expected the batch to start")
	}
	type settled struct {
		msgs []tea.Msg
		err  error
	}
	done := make(chan settled, 1)
	go func() {
		msgs, err := settle(cmd)
		done <- settled{msgs, err}
	}()

	deadline := time.Now().Add(5 * time.Second)
	for !m.upload.coord.InFlight() {
		if time.Now().After(deadline) {
			t.Fatalf("batch never started")
		}
		time.Sleep(time.Millisecond)
	}
	if _, err := m.upload.coord.Submit(context.Background(), upload.Batch{Category: 0, Files: []upload.File{{Name: "x.jpg"}}}); !errors.Is(err, upload.ErrInFlight) {
		t.Fatalf("second submit err = %v, want ErrInFlight", err)
	}
	if _, cmd := m.Update(keyEnter); cmd != nil {
		t.Fatalf("enter must be inert while uploading")
	}
	if m = send(t, m, keyEsc); !m.UploadOpen() {
		t.Fatalf("esc must be inert while uploading")
	}
	if !strings.Contains(m.View(), "Uploading, please wait...") {
		t.Fatalf("expected busy hint:\n%s", m.View())
	}

	close(gate)
	res := <-done
	if res.err != nil {
		t.Fatalf("settle: %v", res.err)
	}
	m = send(t, m, res.msgs...)
	if m.upload.coord.InFlight() || m.upload.busy() {
		t.Fatalf("guard must be released")
	}
}

func TestUploadOverlayShowsProgress(t *testing.T) {
	m, _ := newUploadModel(t, &fakeBlobs{})
	m = send(t, m, keyUpload)
	m.upload.submitting = true
	u := upload.Update{Ordinal: 0, Total: 2, File: "a.jpg", Progress: store.Progress{Transferred: 1, Total: 2}}
	m = send(t, m, uploadProgressMsg{update: u})
	if !strings.Contains(m.View(), u.Status()) {
		t.Fatalf("expected %q in:\n%s", u.Status(), m.View())
	}
}

func TestUploadUnavailableWhenDisabled(t *testing.T) {
	m, err := New(nil, Options{Disabled: config.DisabledMessage})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	m = send(t, m, keyUpload)
	if m.UploadOpen() {
		t.Fatalf("disabled gallery must not offer uploads")
	}
}
