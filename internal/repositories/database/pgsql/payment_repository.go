package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	"github.com/ezbillify/ezbillify-backend/internal/models"
	"github.com/ezbillify/ezbillify-backend/internal/utils/mapping"
	"github.com/ezbillify/ezbillify-backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payments and their
// allocations.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, company_id, party_id, payment_date, amount, method, mode, reference, advance_remainder, sequence, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID,
		&m.CompanyID,
		&m.PartyID,
		&m.PaymentDate,
		&m.Amount,
		&m.Method,
		&m.Mode,
		&m.Reference,
		&m.AdvanceRemainder,
		&m.Sequence,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePayment persists the payment, applies the balance and status effects to
// the target documents, inserts the allocations and ledger entries, and moves
// the party's advance balance, all inside one transaction. Each document
// update re-checks the balance; a concurrent change means the payment was
// built against stale balances and the whole transaction fails with
// ErrConflict.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, allocations []domain.Allocation, applications []portsrepo.DocumentApplication, entries []domain.LedgerEntry, advanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (
			payment_id, company_id, party_id, payment_date, amount, method, mode,
			reference, advance_remainder,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID, m.CompanyID, m.PartyID, m.PaymentDate, m.Amount, m.Method, m.Mode,
		m.Reference, m.AdvanceRemainder,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: payment %s already exists", apperrors.ErrDuplicate, m.PaymentID)
		}
		return fmt.Errorf("failed to save payment %s: %w", m.PaymentID, err)
	}

	if err := r.applyDocumentApplications(ctx, tx, applications, payment.LastUpdatedAt, payment.LastUpdatedBy); err != nil {
		return err
	}
	if err := r.insertAllocations(ctx, tx, allocations); err != nil {
		return err
	}
	if err := r.insertLedgerEntries(ctx, tx, entries); err != nil {
		return err
	}
	if err := r.applyAdvanceDelta(ctx, tx, payment.PartyID, advanceDelta); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceAllocations rebuilds a payment's allocation set in one transaction:
// the old document effects are reversed, the allocation rows are swapped and
// the new effects applied. Ledger entries stay as posted since the payment
// amount itself never changes here.
func (r *PgxPaymentRepository) ReplaceAllocations(ctx context.Context, payment domain.Payment, reversals []portsrepo.DocumentApplication, allocations []domain.Allocation, applications []portsrepo.DocumentApplication, advanceDelta decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.applyDocumentApplications(ctx, tx, reversals, payment.LastUpdatedAt, payment.LastUpdatedBy); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM payment_allocations WHERE payment_id = $1;`, payment.PaymentID); err != nil {
		return fmt.Errorf("failed to delete allocations for payment %s: %w", payment.PaymentID, err)
	}

	if err := r.applyDocumentApplications(ctx, tx, applications, payment.LastUpdatedAt, payment.LastUpdatedBy); err != nil {
		return err
	}
	if err := r.insertAllocations(ctx, tx, allocations); err != nil {
		return err
	}

	updatePayment := `
		UPDATE payments
		SET advance_remainder = $2, last_updated_at = $3, last_updated_by = $4
		WHERE payment_id = $1;
	`
	tag, err := tx.Exec(ctx, updatePayment,
		payment.PaymentID, payment.AdvanceRemainder, payment.LastUpdatedAt, payment.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", payment.PaymentID))
	}

	if err := r.applyAdvanceDelta(ctx, tx, payment.PartyID, advanceDelta); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// applyDocumentApplications moves each target document's paid and balance
// amounts by the application delta. The balance guard only bites for positive
// deltas; reversals carry negative amounts and always pass.
func (r *PgxPaymentRepository) applyDocumentApplications(ctx context.Context, tx pgx.Tx, applications []portsrepo.DocumentApplication, updatedAt time.Time, updatedBy string) error {
	query := `
		UPDATE documents
		SET paid_amount = paid_amount + $2,
			balance_amount = balance_amount - $2,
			status = $3,
			last_updated_at = $4,
			last_updated_by = $5
		WHERE document_id = $1 AND balance_amount >= $2;
	`
	for _, app := range applications {
		tag, err := tx.Exec(ctx, query, app.DocumentID, app.Amount, string(app.NewStatus), updatedAt, updatedBy)
		if err != nil {
			return fmt.Errorf("failed to apply payment to document %s: %w", app.DocumentID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewConflictError(fmt.Sprintf("document %s balance changed concurrently", app.DocumentID))
		}
	}
	return nil
}

func (r *PgxPaymentRepository) insertAllocations(ctx context.Context, tx pgx.Tx, allocations []domain.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, alloc := range allocations {
		batch.Queue(`
			INSERT INTO payment_allocations (allocation_id, payment_id, document_id, amount)
			VALUES ($1, $2, $3, $4);
		`, alloc.AllocationID, alloc.PaymentID, alloc.DocumentID, alloc.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range allocations {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert allocation: %w", err)
		}
	}
	return br.Close()
}

// insertLedgerEntries posts the payment's double entry. The sequence column
// is database-assigned so fold order follows commit order.
func (r *PgxPaymentRepository) insertLedgerEntries(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		batch.Queue(`
			INSERT INTO ledger_entries (
				entry_id, account_id, company_id, document_id, entry_date,
				debit_amount, credit_amount, narration,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`,
			m.EntryID, m.AccountID, m.CompanyID, m.DocumentID, m.EntryDate,
			m.DebitAmount, m.CreditAmount, m.Narration,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert ledger entry: %w", err)
		}
	}
	return br.Close()
}

func (r *PgxPaymentRepository) applyAdvanceDelta(ctx context.Context, tx pgx.Tx, partyID string, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	query := `UPDATE parties SET advance_balance = advance_balance + $2 WHERE party_id = $1;`
	tag, err := tx.Exec(ctx, query, partyID, delta)
	if err != nil {
		return fmt.Errorf("failed to update advance balance for party %s: %w", partyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("party %s not found", partyID))
	}
	return nil
}

func (r *PgxPaymentRepository) UpdatePaymentMetadata(ctx context.Context, payment domain.Payment) error {
	query := `
		UPDATE payments
		SET payment_date = $2, method = $3, reference = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE payment_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		payment.PaymentID, payment.PaymentDate, payment.Method, payment.Reference,
		payment.LastUpdatedAt, payment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment %s: %w", payment.PaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", payment.PaymentID))
	}
	return nil
}

func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", paymentID))
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	payment := mapping.ToDomainPayment(m)
	return &payment, nil
}

func (r *PgxPaymentRepository) FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.Allocation, error) {
	query := `
		SELECT allocation_id, payment_id, document_id, amount, created_at
		FROM payment_allocations
		WHERE payment_id = $1
		ORDER BY created_at, allocation_id;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	allocations := make([]models.PaymentAllocation, 0)
	for rows.Next() {
		var m models.PaymentAllocation
		if err := rows.Scan(&m.AllocationID, &m.PaymentID, &m.DocumentID, &m.Amount, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapping.ToDomainAllocationSlice(allocations), nil
}

// ListPaymentsByCompany pages newest first with a (payment_date, sequence)
// keyset cursor.
func (r *PgxPaymentRepository) ListPaymentsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := []interface{}{companyID}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE company_id = $1`

	if nextToken != nil && *nextToken != "" {
		date, sequence, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (payment_date, sequence) < ($2, $3)`
		args = append(args, date, sequence)
	}
	query += fmt.Sprintf(` ORDER BY payment_date DESC, sequence DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0, limit)
	var lastModel models.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		if len(payments) < limit {
			payments = append(payments, mapping.ToDomainPayment(m))
			lastModel = m
			continue
		}
		token := pagination.EncodeToken(lastModel.PaymentDate, lastModel.Sequence)
		return payments, &token, rows.Err()
	}
	return payments, nil, rows.Err()
}
