// Package storage persists uploaded photo blobs. The Mongo documents keep
// only the reference a Store hands back.
package storage

import (
	"context"
	"io"
)

// Store writes photo blobs and resolves their public URLs.
type Store interface {
	// Save writes the blob and returns its storage reference. ext is the
	// file extension including the dot (".jpg").
	Save(ctx context.Context, r io.Reader, ext string) (ref string, err error)
	// URL resolves a storage reference to the path clients fetch it from.
	URL(ref string) string
}
