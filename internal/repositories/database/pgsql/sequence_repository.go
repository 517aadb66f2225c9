package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	pool *pgxpool.Pool
}

// newPgxSequenceRepository creates a new repository for document number counters.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepositoryFacade {
	return &PgxSequenceRepository{pool: pool}
}

var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

// FindSequence reads the counter row without touching it.
func (r *PgxSequenceRepository) FindSequence(ctx context.Context, scope domain.NumberingScope) (*domain.DocumentSequence, error) {
	query := `
		SELECT company_id, branch_id, doc_type, prefix, counter
		FROM document_sequences
		WHERE company_id = $1 AND branch_id = $2 AND doc_type = $3;
	`
	seq := domain.DocumentSequence{}
	err := r.pool.QueryRow(ctx, query, scope.CompanyID, scope.BranchID, scope.DocType).Scan(
		&seq.CompanyID,
		&seq.BranchID,
		&seq.DocType,
		&seq.Prefix,
		&seq.Counter,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no numbering scope for %s/%s/%s",
				apperrors.ErrNotFound, scope.CompanyID, scope.BranchID, scope.DocType)
		}
		return nil, fmt.Errorf("failed to find sequence: %w", err)
	}
	return &seq, nil
}

// IssueNumber advances the counter in one atomic statement and returns the
// issued number. The row lock taken by UPDATE serializes concurrent issuers;
// the counter always holds the next unissued number.
func (r *PgxSequenceRepository) IssueNumber(ctx context.Context, scope domain.NumberingScope) (int64, string, error) {
	query := `
		UPDATE document_sequences
		SET counter = counter + 1
		WHERE company_id = $1 AND branch_id = $2 AND doc_type = $3
		RETURNING counter - 1, prefix;
	`
	var number int64
	var prefix string
	err := r.pool.QueryRow(ctx, query, scope.CompanyID, scope.BranchID, scope.DocType).Scan(&number, &prefix)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", fmt.Errorf("%w: no numbering scope for %s/%s/%s",
				apperrors.ErrNotFound, scope.CompanyID, scope.BranchID, scope.DocType)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == serializationFailure {
			return 0, "", fmt.Errorf("%w: number issue lost serialization race", apperrors.ErrConflict)
		}
		return 0, "", fmt.Errorf("failed to issue number: %w", err)
	}
	return number, prefix, nil
}

// SaveSequence creates a counter row for a new scope.
func (r *PgxSequenceRepository) SaveSequence(ctx context.Context, seq domain.DocumentSequence) error {
	query := `
		INSERT INTO document_sequences (company_id, branch_id, doc_type, prefix, counter)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.pool.Exec(ctx, query, seq.CompanyID, seq.BranchID, seq.DocType, seq.Prefix, seq.Counter)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: numbering scope already exists for %s/%s",
				apperrors.ErrDuplicate, seq.BranchID, seq.DocType)
		}
		return fmt.Errorf("failed to save sequence: %w", err)
	}
	return nil
}
