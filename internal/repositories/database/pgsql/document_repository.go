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
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for financial documents.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, company_id, branch_id, party_id, doc_type, document_number, document_date, due_date, gst_type, subtotal, discount_amount, cgst_amount, sgst_amount, igst_amount, total_amount, paid_amount, balance_amount, status, notes, sequence, created_at, created_by, last_updated_at, last_updated_by`

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.CompanyID,
		&m.BranchID,
		&m.PartyID,
		&m.DocType,
		&m.DocumentNumber,
		&m.DocumentDate,
		&m.DueDate,
		&m.GSTType,
		&m.Subtotal,
		&m.DiscountAmount,
		&m.CGSTAmount,
		&m.SGSTAmount,
		&m.IGSTAmount,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.BalanceAmount,
		&m.Status,
		&m.Notes,
		&m.Sequence,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func queueItemInsert(batch *pgx.Batch, item models.DocumentItem) {
	batch.Queue(`
		INSERT INTO document_items (
			line_item_id, document_id, item_id, description, hsn_sac_code,
			quantity, rate, discount_percentage, tax_rate,
			cgst_rate, sgst_rate, igst_rate,
			discount_amount, taxable_amount, cgst_amount, sgst_amount, igst_amount, total_amount
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`,
		item.LineItemID,
		item.DocumentID,
		item.ItemID,
		item.Description,
		item.HSNSACCode,
		item.Quantity,
		item.Rate,
		item.DiscountPercentage,
		item.TaxRate,
		item.CGSTRate,
		item.SGSTRate,
		item.IGSTRate,
		item.DiscountAmount,
		item.TaxableAmount,
		item.CGSTAmount,
		item.SGSTAmount,
		item.IGSTAmount,
		item.TotalAmount,
	)
}

// SaveDocument inserts the document header and its line items in one
// transaction. The sequence column is database-assigned.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.FinancialDocument, items []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDocument(doc)
	query := `
		INSERT INTO documents (
			document_id, company_id, branch_id, party_id, doc_type, document_number,
			document_date, due_date, gst_type,
			subtotal, discount_amount, cgst_amount, sgst_amount, igst_amount,
			total_amount, paid_amount, balance_amount, status, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err = tx.Exec(ctx, query,
		m.DocumentID, m.CompanyID, m.BranchID, m.PartyID, m.DocType, m.DocumentNumber,
		m.DocumentDate, m.DueDate, m.GSTType,
		m.Subtotal, m.DiscountAmount, m.CGSTAmount, m.SGSTAmount, m.IGSTAmount,
		m.TotalAmount, m.PaidAmount, m.BalanceAmount, m.Status, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: document number %s already exists", apperrors.ErrDuplicate, m.DocumentNumber)
		}
		return fmt.Errorf("failed to save document %s: %w", m.DocumentID, err)
	}

	if err := r.insertItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxDocumentRepository) insertItems(ctx context.Context, tx pgx.Tx, items []domain.LineItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, item := range items {
		queueItemInsert(batch, mapping.ToModelDocumentItem(item))
	}
	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert document item: %w", err)
		}
	}
	return br.Close()
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.FinancialDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", documentID))
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}
	doc := mapping.ToDomainDocument(m)
	return &doc, nil
}

func (r *PgxDocumentRepository) FindItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_item_id, document_id, item_id, description, hsn_sac_code,
			quantity, rate, discount_percentage, tax_rate,
			cgst_rate, sgst_rate, igst_rate,
			discount_amount, taxable_amount, cgst_amount, sgst_amount, igst_amount, total_amount
		FROM document_items
		WHERE document_id = $1
		ORDER BY line_item_id;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list document items: %w", err)
	}
	defer rows.Close()

	items := make([]models.DocumentItem, 0)
	for rows.Next() {
		var m models.DocumentItem
		err := rows.Scan(
			&m.LineItemID, &m.DocumentID, &m.ItemID, &m.Description, &m.HSNSACCode,
			&m.Quantity, &m.Rate, &m.DiscountPercentage, &m.TaxRate,
			&m.CGSTRate, &m.SGSTRate, &m.IGSTRate,
			&m.DiscountAmount, &m.TaxableAmount, &m.CGSTAmount, &m.SGSTAmount, &m.IGSTAmount, &m.TotalAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document item: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapping.ToDomainDocumentItemSlice(items), nil
}

// ListDocumentsByCompany pages newest first with a (document_date, sequence)
// keyset cursor.
func (r *PgxDocumentRepository) ListDocumentsByCompany(ctx context.Context, companyID string, docType domain.DocumentType, limit int, nextToken *string) ([]domain.FinancialDocument, *string, error) {
	args := []interface{}{companyID, string(docType)}
	query := `SELECT ` + documentColumns + ` FROM documents WHERE company_id = $1 AND doc_type = $2`

	if nextToken != nil && *nextToken != "" {
		date, sequence, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		query += ` AND (document_date, sequence) < ($3, $4)`
		args = append(args, date, sequence)
	}
	query += fmt.Sprintf(` ORDER BY document_date DESC, sequence DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.FinancialDocument, 0, limit)
	var lastModel models.Document
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan document: %w", err)
		}
		if len(docs) < limit {
			docs = append(docs, mapping.ToDomainDocument(m))
			lastModel = m
			continue
		}
		// limit+1 rows fetched: more pages exist.
		token := pagination.EncodeToken(lastModel.DocumentDate, lastModel.Sequence)
		return docs, &token, rows.Err()
	}
	return docs, nil, rows.Err()
}

// ListOpenDocumentsByParty returns posted documents with a positive balance,
// oldest first: due date, document date, then id.
func (r *PgxDocumentRepository) ListOpenDocumentsByParty(ctx context.Context, companyID, partyID string, docType domain.DocumentType) ([]domain.FinancialDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE company_id = $1 AND party_id = $2 AND doc_type = $3
			AND status IN ('POSTED', 'PARTIALLY_PAID')
			AND balance_amount > 0
		ORDER BY due_date, document_date, document_id;
	`
	rows, err := r.Pool.Query(ctx, query, companyID, partyID, string(docType))
	if err != nil {
		return nil, fmt.Errorf("failed to list open documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.FinancialDocument, 0)
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, mapping.ToDomainDocument(m))
	}
	return docs, rows.Err()
}

// ReplaceDocumentItems updates the stored totals and swaps the entire item
// set in one transaction. Items are never patched row by row.
func (r *PgxDocumentRepository) ReplaceDocumentItems(ctx context.Context, doc domain.FinancialDocument, items []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDocument(doc)
	query := `
		UPDATE documents
		SET document_date = $2, due_date = $3, gst_type = $4, notes = $5,
			subtotal = $6, discount_amount = $7, cgst_amount = $8, sgst_amount = $9,
			igst_amount = $10, total_amount = $11, balance_amount = $12,
			last_updated_at = $13, last_updated_by = $14
		WHERE document_id = $1 AND paid_amount = 0;
	`
	tag, err := tx.Exec(ctx, query,
		m.DocumentID, m.DocumentDate, m.DueDate, m.GSTType, m.Notes,
		m.Subtotal, m.DiscountAmount, m.CGSTAmount, m.SGSTAmount,
		m.IGSTAmount, m.TotalAmount, m.BalanceAmount,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", m.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError(fmt.Sprintf("document %s changed concurrently", m.DocumentID))
	}

	if _, err := tx.Exec(ctx, `DELETE FROM document_items WHERE document_id = $1;`, m.DocumentID); err != nil {
		return fmt.Errorf("failed to delete document items: %w", err)
	}
	if err := r.insertItems(ctx, tx, items); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxDocumentRepository) UpdateDocumentMetadata(ctx context.Context, doc domain.FinancialDocument) error {
	query := `
		UPDATE documents
		SET document_date = $2, due_date = $3, notes = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE document_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		doc.DocumentID, doc.DocumentDate, doc.DueDate, doc.Notes,
		doc.LastUpdatedAt, doc.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", doc.DocumentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", doc.DocumentID))
	}
	return nil
}

func (r *PgxDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE documents
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE document_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, documentID, string(status), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update document status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", documentID))
	}
	return nil
}
