package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/photobook/pkg/photo"
)

// Collection is the diskv bucket photo documents live in.
const Collection = "photos"

// DocStore is the document side of the backend: ordered live queries over
// photo records and appends that assign id and creation instant.
type DocStore interface {
	List(ctx context.Context) ([]photo.Record, error)
	Append(ctx context.Context, r photo.Record) (photo.Record, error)
	LiveQuery(ctx context.Context) (<-chan Snapshot, error)
}

// Config locates the document store on disk.
type Config interface {
	DocsPath() string
}

// Option customises Load.
type Option func(*persistence)

// WithLogger routes diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(p *persistence) {
		if l != nil {
			p.log = l
		}
	}
}

// WithClock overrides the creation instant source.
func WithClock(now func() time.Time) Option {
	return func(p *persistence) {
		if now != nil {
			p.now = now
		}
	}
}

// WithThrottle sets how long change notifications are coalesced before a
// new snapshot is read.
func WithThrottle(d time.Duration) Option {
	return func(p *persistence) {
		if d > 0 {
			p.throttle = d
		}
	}
}

// Load creates a DocStore backed by diskv under cfg.DocsPath().
func Load(cfg Config, opts ...Option) (DocStore, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	basePath := strings.TrimSpace(cfg.DocsPath())
	if basePath == "" {
		return nil, errors.New("store: docs path required")
	}
	basePath = filepath.Clean(basePath)
	// Temp files live beside the base so the watcher and Keys never see them.
	tempDir := filepath.Join(filepath.Dir(basePath), "."+filepath.Base(basePath)+".tmp")

	p := &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           tempDir,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		throttle: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *slog.Logger
	now      func() time.Time
	throttle time.Duration
}

func (p *persistence) read(key string) (photo.Record, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return photo.Record{}, err
	}
	var r photo.Record
	if err := json.Unmarshal(val, &r); err != nil {
		return photo.Record{}, err
	}
	r.ID = keyToPathTransform(key).FileName
	return r, nil
}

// List returns every photo record, newest first.
func (p *persistence) List(ctx context.Context) ([]photo.Record, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	all := make([]photo.Record, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); len(pk.Path) == 0 || pk.Path[0] != Collection {
			continue
		}
		r, err := p.read(key)
		if err != nil {
			p.log.Warn("skipping unreadable record", "key", key, "error", err)
			continue
		}
		all = append(all, r)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortRecords(all)
	return all, nil
}

// Append stores r under a fresh id, stamping the creation instant.
func (p *persistence) Append(ctx context.Context, r photo.Record) (photo.Record, error) {
	if err := ctx.Err(); err != nil {
		return photo.Record{}, err
	}
	r.ID = uuid.NewString()
	r.CreatedAt = photo.Timestamp{Time: p.now().UTC()}
	data, err := json.Marshal(r)
	if err != nil {
		return photo.Record{}, fmt.Errorf("store: encode record: %w", err)
	}
	if err := p.d.Write(toKey(r.ID), data); err != nil {
		return photo.Record{}, fmt.Errorf("store: write record: %w", err)
	}
	return r, nil
}

// sortRecords orders newest first; records without a creation instant sort
// last and ties break on id.
func sortRecords(records []photo.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		lt := records[i].CreatedAt.Time
		rt := records[j].CreatedAt.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return records[i].ID < records[j].ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return records[i].ID < records[j].ID
			}
			return lt.After(rt)
		}
	})
}

// keyToPathTransform maps `collection-id` onto collection/id. Only the first
// dash separates, ids keep theirs.
func keyToPathTransform(s string) *diskv.PathKey {
	collection, id, ok := strings.Cut(s, "-")
	if !ok {
		return &diskv.PathKey{FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{collection},
		FileName: id,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func toKey(id string) string {
	return fmt.Sprintf("%s-%s", Collection, id)
}
