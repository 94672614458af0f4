// Package media manages uploaded attachments: the bytes in a blob
// backend, the rows in table_media, and the HTTP file server in front.
package media

import (
	"context"
	"io"
)

// BlobStore abstracts where media bytes live. Links are relative paths
// of the form images/<ownerID>/<timestamp>_<filename> and double as the
// storage key for every backend.
//
// Remove wraps fs.ErrNotExist when the blob is already gone so callers
// can decide how severe a missing file is.
type BlobStore interface {
	Write(ctx context.Context, link string, r io.Reader) error
	Open(ctx context.Context, link string) (io.ReadCloser, int64, error)
	Remove(ctx context.Context, link string) error
}
