package upload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestReadFilesContentType(t *testing.T) {
	dir := t.TempDir()
	files, err := ReadFiles(writeFile(t, dir, "a.png", []byte("x")), writeFile(t, dir, "noext", []byte("\x89PNG\r\n\x1a\n0000")))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if files[0].ContentType != "image/png" || files[0].Name != "a.png" {
		t.Fatalf("unexpected file %+v", files[0])
	}
	if files[1].ContentType != "image/png" {
		t.Fatalf("sniffed type = %q", files[1].ContentType)
	}
	if _, err := ReadFiles("/no/such/file.jpg"); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestSplitPaths(t *testing.T) {
	got := SplitPaths(" a.jpg, ,b c.png,")
	if diff := cmp.Diff([]string{"a.jpg", "b c.png"}, got); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}
	if got := SplitPaths("   "); len(got) != 0 {
		t.Fatalf("expected no paths, got %v", got)
	}
}
