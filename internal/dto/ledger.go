package dto

import (
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a ledger account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required,max=255"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,accounttype"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
}

// AccountResponse is the API representation of a ledger account.
type AccountResponse struct {
	AccountID      string               `json:"accountId"`
	CompanyID      string               `json:"companyId"`
	Name           string               `json:"name"`
	AccountType    domain.AccountType   `json:"accountType"`
	NormalBalance  domain.NormalBalance `json:"normalBalance"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	IsActive       bool                 `json:"isActive"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}

// LedgerQueryParams bound the statement period. To is exclusive.
type LedgerQueryParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// LedgerEntryResponse is one statement line with its running balance.
type LedgerEntryResponse struct {
	EntryID        string          `json:"entryId"`
	EntryDate      time.Time       `json:"entryDate"`
	DocumentID     *string         `json:"documentId,omitempty"`
	Narration      string          `json:"narration,omitempty"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerResponse is an account statement for a period.
type LedgerResponse struct {
	AccountID      string                `json:"accountId"`
	AccountName    string                `json:"accountName"`
	NormalBalance  domain.NormalBalance  `json:"normalBalance"`
	From           time.Time             `json:"from"`
	To             time.Time             `json:"to"`
	OpeningBalance decimal.Decimal       `json:"openingBalance"`
	Entries        []LedgerEntryResponse `json:"entries"`
	ClosingBalance decimal.Decimal       `json:"closingBalance"`
}
