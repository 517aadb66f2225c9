package repositories

import (
	"context"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountRepositoryFacade defines operations for ledger accounts.
type AccountRepositoryFacade interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// FindAccountByID retrieves an account by its identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccountsByCompany retrieves all active accounts of a company.
	ListAccountsByCompany(ctx context.Context, companyID string) ([]domain.Account, error)
}

// LedgerRepositoryFacade defines read operations over posted ledger entries.
// Entries are written only through PaymentWriter/DocumentWriter transactions.
type LedgerRepositoryFacade interface {
	// FindEntriesByAccount retrieves entries of an account within [from, to),
	// ordered by (entry_date, sequence) ascending.
	FindEntriesByAccount(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerEntry, error)

	// SumEntriesBefore returns the debit and credit totals of all entries
	// strictly before the given date; used to derive period opening balances.
	SumEntriesBefore(ctx context.Context, accountID string, before time.Time) (debits, credits decimal.Decimal, err error)
}
