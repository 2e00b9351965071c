package object

import (
	"context"
	"io"
	"strings"
)

// ObjectStore writes documents to a bucket-like namespace with public-read
// visibility. Implementations are safe for concurrent use once constructed.
type ObjectStore interface {
	// Put stores size bytes from body under key and makes the object publicly readable.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// Location returns the logical document location callers use to reference key.
	Location(key string) string
}

// JoinLocation joins a document-location base and a storage key with a single slash.
func JoinLocation(base, key string) string {
	cleanBase := strings.TrimRight(strings.TrimSpace(base), "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanBase == "" {
		return cleanKey
	}
	return cleanBase + "/" + cleanKey
}
