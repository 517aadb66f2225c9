package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of a ledger account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side that increases an account.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// NormalSide returns the normal balance side for the account type.
// DEBIT increases ASSET/EXPENSE; CREDIT increases LIABILITY/EQUITY/INCOME.
func (t AccountType) NormalSide() NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account is a ledger account within a company.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary Key (UUID)
	CompanyID      string          `json:"companyID"` // FK -> companies.company_id (Not Null)
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // All-time opening, signed on the normal side
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// LedgerEntry is one posted side of a transaction against one account.
// Running balances are never stored; they are folded at read time over
// entries ordered by (entry_date, sequence).
type LedgerEntry struct {
	EntryID      string          `json:"entryID"`   // Primary Key (UUID)
	AccountID    string          `json:"accountID"` // FK -> accounts.account_id (Not Null)
	CompanyID    string          `json:"companyID"`
	DocumentID   *string         `json:"documentID,omitempty"` // Back-reference only, never ownership
	EntryDate    time.Time       `json:"entryDate"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Sequence     int64           `json:"sequence"` // Monotonic, assigned at posting time; date tie-break
	Narration    string          `json:"narration"`
	AuditFields
}

// ProjectedEntry pairs a ledger entry with its read-time running balance.
type ProjectedEntry struct {
	Entry          LedgerEntry     `json:"entry"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}
