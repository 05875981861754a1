// Package service defines the interfaces for all pipeline collaborators.
package service

import (
	"context"
	"time"

	"github.com/mwhitfield/salespipe/internal/model"
)

// LineReader supplies already-decoded text lines from the input file.
// Encoding resolution lives entirely behind this boundary; the pipeline
// never sees raw bytes.
type LineReader interface {
	ReadLines(path string) ([]string, error)
}

// CatalogFetcher retrieves product entries from the external catalog.
// Implementations must honor the context deadline; the pipeline treats a
// fetch failure as a degraded (empty) catalog, never as a fatal error.
type CatalogFetcher interface {
	Fetch(ctx context.Context) ([]model.CatalogProduct, error)
}

// RetryOptions configures retry behavior for external calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
