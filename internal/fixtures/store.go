// Package fixtures reads the hand-maintained per-category product fixtures and
// serves them as the local product source.
package fixtures

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("fixture not found")

// Store hands out fixture documents by key. Missing keys report ErrNotFound.
type Store interface {
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Ready(ctx context.Context) error
}
