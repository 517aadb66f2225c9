package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/middleware"
	"github.com/ezbillify/ezbillify-backend/internal/utils/gst"
)

const (
	issueRetryAttempts = 3
	issueRetryBaseWait = 20 * time.Millisecond
)

var ErrPrefixRequired = errors.New("sequence prefix is required")

// numberingService issues branch-scoped document numbers.
type numberingService struct {
	sequenceRepo portsrepo.SequenceRepositoryFacade
}

// NewNumberingService creates a new NumberingService.
func NewNumberingService(sequenceRepo portsrepo.SequenceRepositoryFacade) portssvc.NumberingSvcFacade {
	return &numberingService{sequenceRepo: sequenceRepo}
}

var _ portssvc.NumberingSvcFacade = (*numberingService)(nil)

// Preview formats the number the next issued document will receive. It never
// mutates the counter: previewing and then issuing yields the same number
// when no other writer intervenes.
func (s *numberingService) Preview(ctx context.Context, scope domain.NumberingScope, date time.Time) (string, error) {
	seq, err := s.sequenceRepo.FindSequence(ctx, scope)
	if err != nil {
		return "", err
	}
	return gst.FormatDocumentNumber(seq.Prefix, seq.Counter, date), nil
}

// Next issues a number, advancing the scope counter atomically. Concurrent
// callers never receive the same number. Serialization failures are retried
// with exponential backoff a bounded number of times, then surface as
// ErrConflict.
func (s *numberingService) Next(ctx context.Context, scope domain.NumberingScope, date time.Time) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var lastErr error
	for attempt := 0; attempt < issueRetryAttempts; attempt++ {
		if attempt > 0 {
			wait := issueRetryBaseWait << (attempt - 1)
			logger.WarnContext(ctx, "retrying number issue",
				slog.Int("attempt", attempt+1),
				slog.Duration("wait", wait),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait):
			}
		}

		number, prefix, err := s.sequenceRepo.IssueNumber(ctx, scope)
		if err == nil {
			return gst.FormatDocumentNumber(prefix, number, date), nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("issuing number for scope %s/%s/%s: %w",
		scope.CompanyID, scope.BranchID, scope.DocType, lastErr)
}

// CreateScope seeds the counter for a new (branch, doc type) scope.
func (s *numberingService) CreateScope(ctx context.Context, userID string, scope domain.NumberingScope, prefix string, startAt int64) error {
	if prefix == "" {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrPrefixRequired)
	}
	if startAt < 1 {
		startAt = 1
	}
	err := s.sequenceRepo.SaveSequence(ctx, domain.DocumentSequence{
		CompanyID: scope.CompanyID,
		BranchID:  scope.BranchID,
		DocType:   scope.DocType,
		Prefix:    prefix,
		Counter:   startAt,
	})
	if err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).InfoContext(ctx, "numbering scope created",
		slog.String("branchID", scope.BranchID),
		slog.String("docType", string(scope.DocType)),
		slog.String("createdBy", userID),
	)
	return nil
}
