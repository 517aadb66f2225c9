package domain

import "github.com/shopspring/decimal"

// PartyType distinguishes customers from vendors.
type PartyType string

const (
	PartyCustomer PartyType = "CUSTOMER"
	PartyVendor   PartyType = "VENDOR"
)

// Party is a counterparty (customer or vendor) of a company.
// AdvanceBalance is the explicit ledger of unapplied payment amounts.
type Party struct {
	PartyID         string          `json:"partyID"`   // Primary Key (UUID)
	CompanyID       string          `json:"companyID"` // FK -> companies.company_id (Not Null)
	Name            string          `json:"name"`
	PartyType       PartyType       `json:"partyType"`
	GSTIN           string          `json:"gstin"` // Nullable
	LedgerAccountID string          `json:"ledgerAccountID"` // FK -> accounts.account_id
	AdvanceBalance  decimal.Decimal `json:"advanceBalance"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}
