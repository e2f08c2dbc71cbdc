package storage

import (
	"errors"
	"io"
	"path"
	"time"
)

var ErrNotFound = errors.New("blob not found")

type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
	SignedURL(key string) (string, error) // fs returns "file://..." for dev
}

// ExportKey is where a report export taken at t is stored.
func ExportKey(assessmentID string, t time.Time) string {
	return path.Join("exports", assessmentID, t.UTC().Format("20060102T150405Z")+".json")
}
