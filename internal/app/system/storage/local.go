// internal/app/system/storage/local.go
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local stores blobs on the local filesystem under a base directory and
// serves them from a URL prefix mounted in the router.
type Local struct {
	basePath  string
	urlPrefix string
}

// NewLocal creates the base directory if needed.
func NewLocal(basePath, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", basePath, err)
	}
	return &Local{basePath: basePath, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// BasePath returns the directory blobs are written to.
func (l *Local) BasePath() string { return l.basePath }

// Save writes the blob under a uuid file name. The reference is the bare
// file name, never a path, so references stay portable across backends.
func (l *Local) Save(ctx context.Context, r io.Reader, ext string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := uuid.NewString() + strings.ToLower(ext)

	f, err := os.Create(filepath.Join(l.basePath, name))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return name, nil
}

// URL resolves a reference to its serving path.
func (l *Local) URL(ref string) string {
	return l.urlPrefix + "/" + ref
}
