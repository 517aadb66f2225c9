package repositories

import (
	"context"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
)

// SequenceRepositoryFacade defines operations on document number counters.
type SequenceRepositoryFacade interface {
	// FindSequence retrieves the counter row for a scope without mutation.
	FindSequence(ctx context.Context, scope domain.NumberingScope) (*domain.DocumentSequence, error)

	// IssueNumber atomically increments the scope's counter and returns the
	// issued number together with the scope prefix. Two concurrent callers
	// never receive the same number.
	IssueNumber(ctx context.Context, scope domain.NumberingScope) (int64, string, error)

	// SaveSequence creates a counter row for a new scope.
	SaveSequence(ctx context.Context, seq domain.DocumentSequence) error
}
