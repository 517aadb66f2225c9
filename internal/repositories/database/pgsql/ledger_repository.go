package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	"github.com/ezbillify/ezbillify-backend/internal/models"
	"github.com/ezbillify/ezbillify-backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

// newPgxLedgerRepository creates a read-side repository over posted ledger
// entries. Writes happen only inside payment and document transactions.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerEntryColumns = `entry_id, account_id, company_id, document_id, entry_date, debit_amount, credit_amount, sequence, narration, created_at, created_by, last_updated_at, last_updated_by`

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.AccountID,
		&m.CompanyID,
		&m.DocumentID,
		&m.EntryDate,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.Sequence,
		&m.Narration,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindEntriesByAccount returns entries within [from, to) in fold order:
// entry date first, insert sequence as the tie-break.
func (r *PgxLedgerRepository) FindEntriesByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE account_id = $1 AND entry_date >= $2 AND entry_date < $3
		ORDER BY entry_date, sequence;
	`
	rows, err := r.pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0)
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// SumEntriesBefore totals the debit and credit sides of all entries strictly
// before a date, for deriving period opening balances.
func (r *PgxLedgerRepository) SumEntriesBefore(ctx context.Context, accountID string, before time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
		FROM ledger_entries
		WHERE account_id = $1 AND entry_date < $2;
	`
	var debits, credits decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, accountID, before).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return debits, credits, nil
}
