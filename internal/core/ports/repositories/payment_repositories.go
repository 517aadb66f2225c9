package repositories

import (
	"context"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentApplication is the balance effect of one allocation on a document,
// applied inside the payment transaction.
type DocumentApplication struct {
	DocumentID string
	Amount     decimal.Decimal
	NewStatus  domain.DocumentStatus
}

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment header.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindAllocationsByPaymentID retrieves the allocation set of a payment.
	FindAllocationsByPaymentID(ctx context.Context, paymentID string) ([]domain.Allocation, error)

	// ListPaymentsByCompany retrieves a keyset-paginated list of payments.
	ListPaymentsByCompany(ctx context.Context, companyID string, limit int, nextToken *string) ([]domain.Payment, *string, error)
}

// PaymentWriter defines write operations for payments.
type PaymentWriter interface {
	// SavePayment persists a payment, its allocations, the document balance
	// and status updates, the ledger entries and the party advance delta in
	// ONE transaction. Target documents are locked and their balances
	// re-checked; a concurrent change surfaces as ErrConflict.
	SavePayment(ctx context.Context, payment domain.Payment, allocations []domain.Allocation, applications []DocumentApplication, entries []domain.LedgerEntry, advanceDelta decimal.Decimal) error

	// UpdatePaymentMetadata patches non-financial payment fields.
	UpdatePaymentMetadata(ctx context.Context, payment domain.Payment) error

	// ReplaceAllocations reverses the payment's current allocation effects on
	// documents, deletes the allocation rows and applies the new set, all in
	// one transaction. Ledger entries are untouched: they book the payment
	// amount, which reallocation never changes.
	ReplaceAllocations(ctx context.Context, payment domain.Payment, reversals []DocumentApplication, allocations []domain.Allocation, applications []DocumentApplication, advanceDelta decimal.Decimal) error
}

// PaymentRepositoryFacade combines all payment repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
