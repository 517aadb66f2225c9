package dto

import (
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationSelectionInput pins part of a payment to one document.
type AllocationSelectionInput struct {
	DocumentID string          `json:"documentId" binding:"required,uuid"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// CreatePaymentRequest is the payload for recording a payment. In
// AGAINST_DOCUMENTS mode an empty Selections spreads the amount over the
// party's open documents oldest first; a non-empty one is applied
// all-or-nothing. ADVANCE mode books the whole amount to the party advance.
type CreatePaymentRequest struct {
	PartyID          string                     `json:"partyId" binding:"required,uuid"`
	DepositAccountID string                     `json:"depositAccountId" binding:"required,uuid"`
	PaymentDate      time.Time                  `json:"paymentDate" binding:"required"`
	Amount           decimal.Decimal            `json:"amount" binding:"required"`
	Mode             domain.PaymentMode         `json:"mode" binding:"required,txmode"`
	Method           string                     `json:"method" binding:"required,max=50"`
	Reference        string                     `json:"reference" binding:"max=100"`
	Selections       []AllocationSelectionInput `json:"selections,omitempty" binding:"omitempty,max=200,dive"`
}

// UpdatePaymentRequest patches a payment. A nil Selections pointer leaves
// allocations untouched; a non-nil one replaces the allocation set.
type UpdatePaymentRequest struct {
	PaymentDate *time.Time                  `json:"paymentDate,omitempty"`
	Method      *string                     `json:"method,omitempty" binding:"omitempty,max=50"`
	Reference   *string                     `json:"reference,omitempty" binding:"omitempty,max=100"`
	Selections  *[]AllocationSelectionInput `json:"selections,omitempty" binding:"omitempty,dive"`
}

// AllocationResponse is one applied allocation of a payment.
type AllocationResponse struct {
	AllocationID   string          `json:"allocationId"`
	DocumentID     string          `json:"documentId"`
	DocumentNumber string          `json:"documentNumber,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
}

// PaymentResponse is the API representation of a payment.
type PaymentResponse struct {
	PaymentID        string               `json:"paymentId"`
	CompanyID        string               `json:"companyId"`
	PartyID          string               `json:"partyId"`
	PaymentDate      time.Time            `json:"paymentDate"`
	Amount           decimal.Decimal      `json:"amount"`
	Mode             domain.PaymentMode   `json:"mode"`
	Method           string               `json:"method"`
	Reference        string               `json:"reference,omitempty"`
	AdvanceRemainder decimal.Decimal      `json:"advanceRemainder"`
	Allocations      []AllocationResponse `json:"allocations"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// ListPaymentsParams are the query parameters for listing payments.
type ListPaymentsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListPaymentsResponse is a page of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}
