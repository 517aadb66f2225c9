package dto

import (
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartyRequest is the payload for creating a customer or vendor.
// A ledger account is opened for the party as part of creation.
type CreatePartyRequest struct {
	Name      string           `json:"name" binding:"required,max=255"`
	PartyType domain.PartyType `json:"partyType" binding:"required,partytype"`
	GSTIN     string           `json:"gstin" binding:"omitempty,len=15"`
}

// PartyResponse is the API representation of a party.
type PartyResponse struct {
	PartyID         string           `json:"partyId"`
	CompanyID       string           `json:"companyId"`
	Name            string           `json:"name"`
	PartyType       domain.PartyType `json:"partyType"`
	GSTIN           string           `json:"gstin,omitempty"`
	LedgerAccountID string           `json:"ledgerAccountId"`
	AdvanceBalance  decimal.Decimal  `json:"advanceBalance"`
	IsActive        bool             `json:"isActive"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// ListPartiesParams are the query parameters for listing parties.
type ListPartiesParams struct {
	PartyType *domain.PartyType `form:"partyType" binding:"omitempty,partytype"`
}
