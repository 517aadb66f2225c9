package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType.
type AccountType string

// Account is the persisted form of a ledger account.
type Account struct {
	AccountID      string          `json:"accountID"`
	CompanyID      string          `json:"companyID"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// LedgerEntry is the persisted form of one posted ledger line.
type LedgerEntry struct {
	EntryID      string          `json:"entryID"`
	AccountID    string          `json:"accountID"`
	CompanyID    string          `json:"companyID"`
	DocumentID   *string         `json:"documentID,omitempty"`
	EntryDate    time.Time       `json:"entryDate"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Sequence     int64           `json:"sequence"`
	Narration    string          `json:"narration"`
	AuditFields
}
