package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode distinguishes payments applied against documents from advances.
type PaymentMode string

const (
	PaymentAgainstDocuments PaymentMode = "AGAINST_DOCUMENTS"
	PaymentAdvance          PaymentMode = "ADVANCE"
)

// Payment represents money received from a customer or paid to a vendor.
// The unallocated remainder of a payment is booked to the party's advance
// balance, never left implicit.
type Payment struct {
	PaymentID        string          `json:"paymentID"` // Primary Key (UUID)
	CompanyID        string          `json:"companyID"`
	PartyID          string          `json:"partyID"`
	PaymentDate      time.Time       `json:"paymentDate"`
	Amount           decimal.Decimal `json:"amount"` // > 0
	Method           string          `json:"method"` // e.g. CASH, BANK, UPI
	Mode             PaymentMode     `json:"mode"`
	Reference        string          `json:"reference"` // Nullable instrument reference
	AdvanceRemainder decimal.Decimal `json:"advanceRemainder"`
	AuditFields

	Allocations []Allocation `json:"allocations,omitempty"`
}

// Allocation applies part of a payment to one open document.
// Sum of a payment's allocation amounts never exceeds the payment amount,
// and no allocation exceeds the target document's balance at apply time.
type Allocation struct {
	AllocationID string          `json:"allocationID"` // Primary Key (UUID)
	PaymentID    string          `json:"paymentID"`    // FK -> payments.payment_id
	DocumentID   string          `json:"documentID"`   // FK -> documents.document_id
	Amount       decimal.Decimal `json:"amount"`       // > 0
}

// AllocationSelection is a caller-supplied (document, amount) pair for
// manual allocation mode.
type AllocationSelection struct {
	DocumentID string          `json:"documentID"`
	Amount     decimal.Decimal `json:"amount"`
}
