package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// ErrBadPath is returned for blob paths that are empty or escape the root.
var ErrBadPath = errors.New("store: invalid blob path")

// Progress reports bytes transferred for one blob upload.
type Progress struct {
	Transferred int64
	Total       int64
}

// Percent is the rounded share transferred, 0 when the size is unknown.
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return int((p.Transferred*100 + p.Total/2) / p.Total)
}

// Token identifies a completed upload.
type Token struct {
	Path        string
	ContentType string
	Size        int64
}

// BlobStore is the blob side of the backend.
type BlobStore interface {
	Put(ctx context.Context, r io.Reader, size int64, blobPath, contentType string, progress func(Progress)) (Token, error)
	ResolveURL(ctx context.Context, tok Token) (string, error)
}

// BlobConfig locates the blob store on disk.
type BlobConfig interface {
	BlobsPath() string
}

// LoadBlobs returns a filesystem BlobStore rooted at cfg.BlobsPath().
func LoadBlobs(cfg BlobConfig) (BlobStore, error) {
	if cfg == nil {
		return nil, errors.New("store: config required")
	}
	root := strings.TrimSpace(cfg.BlobsPath())
	if root == "" {
		return nil, errors.New("store: blobs path required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("store: resolve blobs path: %w", err)
	}
	return &fileBlobs{root: abs}, nil
}

type fileBlobs struct {
	root string
}

func (b *fileBlobs) resolve(blobPath string) (string, error) {
	trimmed := strings.TrimSpace(blobPath)
	// Rooting before Clean keeps ".." from climbing out of the store.
	clean := path.Clean("/" + trimmed)
	if trimmed == "" || clean == "/" || clean != "/"+strings.TrimPrefix(path.Clean(trimmed), "/") {
		return "", fmt.Errorf("%w: %q", ErrBadPath, blobPath)
	}
	return filepath.Join(b.root, filepath.FromSlash(clean)), nil
}

// Put writes r to blobPath atomically, reporting progress as bytes are
// copied. A cancelled ctx aborts the copy and leaves no file behind.
func (b *fileBlobs) Put(ctx context.Context, r io.Reader, size int64, blobPath, contentType string, progress func(Progress)) (Token, error) {
	full, err := b.resolve(blobPath)
	if err != nil {
		return Token{}, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Token{}, fmt.Errorf("store: ensure blob dir: %w", err)
	}
	pr := &progressReader{ctx: ctx, r: r, total: size, report: progress}
	if err := atomic.WriteFile(full, pr); err != nil {
		return Token{}, fmt.Errorf("store: write blob %s: %w", blobPath, err)
	}
	if progress != nil && pr.n == 0 {
		progress(Progress{Transferred: 0, Total: size})
	}
	return Token{Path: path.Clean(blobPath), ContentType: contentType, Size: pr.n}, nil
}

// ResolveURL returns a durable file:// URL for an uploaded blob.
func (b *fileBlobs) ResolveURL(ctx context.Context, tok Token) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full, err := b.resolve(tok.Path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(full); err != nil {
		return "", fmt.Errorf("store: resolve blob %s: %w", tok.Path, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(full)}
	return u.String(), nil
}

type progressReader struct {
	ctx    context.Context
	r      io.Reader
	n      int64
	total  int64
	report func(Progress)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.r.Read(buf)
	if n > 0 {
		p.n += int64(n)
		if p.report != nil {
			p.report(Progress{Transferred: p.n, Total: p.total})
		}
	}
	return n, err
}
