package upload

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// ReadFiles loads each path as an upload payload, sniffing its content type
// from the extension or, failing that, the data. A leading ~ is expanded.
func ReadFiles(paths ...string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		full, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		ct := mime.TypeByExtension(filepath.Ext(full))
		if ct == "" {
			ct = http.DetectContentType(data)
		}
		files = append(files, File{Name: filepath.Base(full), ContentType: ct, Data: data})
	}
	return files, nil
}

// SplitPaths splits a comma separated list of paths, dropping blanks.
func SplitPaths(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
