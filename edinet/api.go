package edinet

import (
	"context"
	"time"
)

// API defines the interface for EDINET operations
type API interface {
	// ListDocuments retrieves the filing list for a date
	ListDocuments(ctx context.Context, date time.Time, mode ListMode) (*ListResponse, error)

	// FetchDocument retrieves the raw bytes of one document variant
	FetchDocument(ctx context.Context, documentID string, format Format) ([]byte, error)
}

var _ API = (*Client)(nil)
