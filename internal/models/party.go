package models

import "github.com/shopspring/decimal"

// PartyType mirrors domain.PartyType.
type PartyType string

// Party is the persisted form of a counterparty.
type Party struct {
	PartyID         string          `json:"partyID"`
	CompanyID       string          `json:"companyID"`
	Name            string          `json:"name"`
	PartyType       PartyType       `json:"partyType"`
	GSTIN           string          `json:"gstin"`
	LedgerAccountID string          `json:"ledgerAccountID"`
	AdvanceBalance  decimal.Decimal `json:"advanceBalance"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}
