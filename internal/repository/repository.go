// Package repository defines persistence contracts for the bundled layout
// store. Implementations live in subpackages.
package repository

import (
	"context"
	"errors"

	"toposcope/internal/domain"
)

// ErrNotFound is returned when no layout exists under the requested name.
var ErrNotFound = errors.New("layout not found")

// LayoutRepository stores named layout documents. Put overwrites silently,
// matching the store's idempotent save contract.
type LayoutRepository interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (*domain.Layout, error)
	Put(ctx context.Context, name string, l *domain.Layout) error
	Close() error
}
