// Package storage provides retention of processing results so callers can
// retrieve the outcome of a run after the fact.
package storage

import (
	"context"
	"errors"

	"github.com/probatech/estadoc/pkg/domain"
)

// ErrNotFound is returned when no result exists for the requested document.
var ErrNotFound = errors.New("processing result not found")

var errInvalidResult = errors.New("result must carry a document id")

// ResultStore exposes persistence operations for processing results.
type ResultStore interface {
	SaveResult(ctx context.Context, result *domain.ProcessingResult) error
	GetResult(ctx context.Context, documentID string) (*domain.ProcessingResult, error)
	RecentResults(ctx context.Context, limit int) ([]*domain.ProcessingResult, error)
	Close() error
}
