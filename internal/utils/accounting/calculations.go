package accounting

import (
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount converts a ledger entry into the signed delta it applies to
// an account balance, based on the account's normal balance side.
// Debit-normal accounts (asset/expense) grow with debits; credit-normal
// accounts (liability/equity/income) grow with credits.
func SignedAmount(entry domain.LedgerEntry, normal domain.NormalBalance) decimal.Decimal {
	if normal == domain.DebitNormal {
		return entry.DebitAmount.Sub(entry.CreditAmount)
	}
	return entry.CreditAmount.Sub(entry.DebitAmount)
}
