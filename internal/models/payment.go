package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode mirrors domain.PaymentMode.
type PaymentMode string

// Payment is the persisted form of a payment.
type Payment struct {
	PaymentID        string          `json:"paymentID"`
	CompanyID        string          `json:"companyID"`
	PartyID          string          `json:"partyID"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Amount           decimal.Decimal `json:"amount"`
	Method           string          `json:"method"`
	Mode             PaymentMode     `json:"mode"`
	Reference        string          `json:"reference"`
	AdvanceRemainder decimal.Decimal `json:"advanceRemainder"`
	Sequence         int64           `json:"sequence"`
	AuditFields
}

// PaymentAllocation is the persisted form of one payment-to-document split.
type PaymentAllocation struct {
	AllocationID string          `json:"allocationID"`
	PaymentID    string          `json:"paymentID"`
	DocumentID   string          `json:"documentID"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"createdAt"`
}
