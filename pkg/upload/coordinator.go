package upload

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/photobook/pkg/photo"
	"tableflip.dev/photobook/pkg/store"
)

// Update is a progress notification for one file of a batch.
type Update struct {
	Ordinal  int
	Total    int
	File     string
	Progress store.Progress
}

// Status renders the update as "Uploading i/N... p%".
func (u Update) Status() string {
	return fmt.Sprintf("Uploading %d/%d... %d%%", u.Ordinal+1, u.Total, u.Progress.Percent())
}

// Outcome is the settled result of one file.
type Outcome struct {
	File       string
	StoredName string
	URL        string
	Record     photo.Record
	Err        error
}

// OK reports whether the file was uploaded and committed.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Result aggregates the outcomes of a batch in submission order.
type Result struct {
	Outcomes []Outcome
}

// Succeeded counts files that were fully committed.
func (r Result) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed lists the original names of files that did not make it.
func (r Result) Failed() []string {
	var out []string
	for _, o := range r.Outcomes {
		if !o.OK() {
			out = append(out, o.File)
		}
	}
	return out
}

// Complete reports whether every file succeeded.
func (r Result) Complete() bool {
	return len(r.Outcomes) > 0 && r.Succeeded() == len(r.Outcomes)
}

// Summary is the status line shown once the batch settled.
func (r Result) Summary() string {
	if r.Complete() {
		return "Upload complete! Your photos will appear in the book shortly."
	}
	return fmt.Sprintf("Uploaded %d of %d. Retry failed files: %s",
		r.Succeeded(), len(r.Outcomes), strings.Join(r.Failed(), ", "))
}

// Coordinator runs submissions against a document and blob store. Only one
// submission runs at a time; a second one is rejected, not queued.
type Coordinator struct {
	Docs  store.DocStore
	Blobs store.BlobStore

	// Categories bounds valid category indices when positive.
	Categories int
	// Concurrency limits simultaneous file pipelines; zero means no limit.
	Concurrency int

	Now func() time.Time
	Log *slog.Logger

	// Progress receives upload updates. Calls are serialized.
	Progress func(Update)

	inFlight   atomic.Bool
	progressMu sync.Mutex
}

// InFlight reports whether a submission is running; controls should be
// disabled while it is.
func (c *Coordinator) InFlight() bool {
	return c.inFlight.Load()
}

// Submit validates b and uploads every file concurrently, waiting for all of
// them to settle. A non-nil error means nothing was attempted; per-file
// failures are reported in the Result.
func (c *Coordinator) Submit(ctx context.Context, b Batch) (Result, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrInFlight
	}
	defer c.inFlight.Store(false)

	if err := b.Validate(); err != nil {
		return Result{}, err
	}
	if c.Categories > 0 && b.Category >= c.Categories {
		return Result{}, ErrNoCategory
	}
	if c.Docs == nil || c.Blobs == nil {
		return Result{}, fmt.Errorf("upload: stores not configured")
	}

	now := c.Now
	if now == nil {
		now = time.Now
	}
	at := now()
	log := c.logger()

	outcomes := make([]Outcome, len(b.Files))
	var g errgroup.Group
	if c.Concurrency > 0 {
		g.SetLimit(c.Concurrency)
	}
	for i, f := range b.Files {
		i, f := i, f
		g.Go(func() error {
			// Errors stay in the outcome so one failure never stops the rest.
			outcomes[i] = c.uploadOne(ctx, b, i, f, at)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Outcomes: outcomes}
	for _, o := range outcomes {
		if !o.OK() {
			log.Error("photo upload failed", "file", o.File, "stored", o.StoredName, "error", o.Err)
		}
	}
	log.Info("upload batch settled", "files", len(outcomes), "succeeded", res.Succeeded())
	return res, nil
}

func (c *Coordinator) uploadOne(ctx context.Context, b Batch, ordinal int, f File, at time.Time) Outcome {
	stored := StoredName(at, ordinal, f.Name)
	out := Outcome{File: f.Name, StoredName: stored}

	report := func(p store.Progress) {
		c.report(Update{Ordinal: ordinal, Total: len(b.Files), File: f.Name, Progress: p})
	}
	tok, err := c.Blobs.Put(ctx, bytesReader(f.Data), int64(len(f.Data)), BlobPath(b.Category, stored), f.ContentType, report)
	if err != nil {
		out.Err = fmt.Errorf("upload %s: %w", f.Name, err)
		return out
	}
	url, err := c.Blobs.ResolveURL(ctx, tok)
	if err != nil {
		out.Err = fmt.Errorf("resolve %s: %w", f.Name, err)
		return out
	}
	out.URL = url
	rec, err := c.Docs.Append(ctx, photo.Record{
		Month:        b.Category,
		Photographer: photo.Optional(b.Author),
		Notes:        photo.Optional(b.Note),
		Filename:     stored,
		DownloadURL:  url,
	})
	if err != nil {
		out.Err = fmt.Errorf("record %s: %w", f.Name, err)
		return out
	}
	out.Record = rec
	return out
}

func (c *Coordinator) report(u Update) {
	if c.Progress == nil {
		return
	}
	c.progressMu.Lock()
	defer c.progressMu.Unlock()
	c.Progress(u)
}

func (c *Coordinator) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}
