// Package archive stores fetched EDINET documents, either on a local
// filesystem or in an S3-compatible bucket.
package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/s0up4200/edinet/edinet"
)

// Store persists document payloads under a key.
// Implementations are safe for concurrent use.
type Store interface {
	// Put writes data under key, replacing any existing object
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Exists reports whether key has already been stored
	Exists(ctx context.Context, key string) (bool, error)
	// Location describes where key lives, for display
	Location(key string) string
}

// Key returns the storage key for one document variant:
// YYYY-MM-DD/{docID}_{format}.{ext}
func Key(date time.Time, docID string, format edinet.Format) string {
	return fmt.Sprintf("%s/%s_%s.%s", edinet.FormatDate(date), docID, format, format.Extension())
}
