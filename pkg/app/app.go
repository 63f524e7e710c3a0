package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/photobook/pkg/category"
	"tableflip.dev/photobook/pkg/config"
	"tableflip.dev/photobook/pkg/projection"
	"tableflip.dev/photobook/pkg/store"
	"tableflip.dev/photobook/pkg/upload"
)

// Service wires the stores to the gallery engine so the TUI and CLI share
// one setup path.
type Service struct {
	Docs   store.DocStore
	Blobs  store.BlobStore
	Model  category.Model
	Policy category.Policy
	Log    *slog.Logger

	// Concurrency bounds upload fan-out, 0 is unbounded.
	Concurrency int
}

var ErrNoStore = errors.New("app: no document store configured")

// Open checks cfg and loads both stores. A config that is not ready fails
// with an error wrapping config.ErrNotReady before any store is touched.
func Open(cfg *config.Config, log *slog.Logger) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: %w: no config", config.ErrNotReady)
	}
	if err := cfg.Ready(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	docs, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	blobs, err := store.LoadBlobs(cfg)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	log.Debug("stores opened", "project", cfg.Project, "docs", cfg.DocsPath(), "blobs", cfg.BlobsPath())
	return &Service{
		Docs:        docs,
		Blobs:       blobs,
		Model:       category.Months(),
		Policy:      policy,
		Log:         log,
		Concurrency: cfg.Upload.Concurrency,
	}, nil
}

func (s *Service) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Projection lists every record once and projects it.
func (s *Service) Projection(ctx context.Context) (projection.Projection, error) {
	if s.Docs == nil {
		return projection.Projection{}, ErrNoStore
	}
	records, err := s.Docs.List(ctx)
	if err != nil {
		return projection.Projection{}, err
	}
	p := projection.New(s.Model, s.Policy).Apply(records)
	if n := p.Dropped(); n > 0 {
		s.logger().Debug("records without a resolvable month", "dropped", n)
	}
	return p, nil
}

// Watch subscribes to live snapshots of the photo collection.
func (s *Service) Watch(ctx context.Context) (<-chan store.Snapshot, error) {
	if s.Docs == nil {
		return nil, ErrNoStore
	}
	return s.Docs.LiveQuery(ctx)
}

// Uploader returns a coordinator bound to the service stores. Callers keep
// the returned value; its single-flight guard is per coordinator.
func (s *Service) Uploader(progress func(upload.Update)) *upload.Coordinator {
	return &upload.Coordinator{
		Docs:        s.Docs,
		Blobs:       s.Blobs,
		Categories:  s.Model.Len(),
		Concurrency: s.Concurrency,
		Log:         s.logger(),
		Progress:    progress,
	}
}
