package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType mirrors domain.DocumentType at the persistence boundary.
type DocumentType string

// GSTType mirrors domain.GSTType.
type GSTType string

// DocumentStatus mirrors domain.DocumentStatus.
type DocumentStatus string

// Document is the persisted form of a financial document.
type Document struct {
	DocumentID     string          `json:"documentID"`
	CompanyID      string          `json:"companyID"`
	BranchID       string          `json:"branchID"`
	PartyID        string          `json:"partyID"`
	DocType        DocumentType    `json:"docType"`
	DocumentNumber string          `json:"documentNumber"`
	DocumentDate   time.Time       `json:"documentDate"`
	DueDate        time.Time       `json:"dueDate"`
	GSTType        GSTType         `json:"gstType"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	CGSTAmount     decimal.Decimal `json:"cgstAmount"`
	SGSTAmount     decimal.Decimal `json:"sgstAmount"`
	IGSTAmount     decimal.Decimal `json:"igstAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	BalanceAmount  decimal.Decimal `json:"balanceAmount"`
	Status         DocumentStatus  `json:"status"`
	Notes          string          `json:"notes"`
	Sequence       int64           `json:"sequence"` // Insert-order tie-break for list pagination
	AuditFields
}

// DocumentItem is the persisted form of a line item.
type DocumentItem struct {
	LineItemID         string          `json:"lineItemID"`
	DocumentID         string          `json:"documentID"`
	ItemID             string          `json:"itemID"`
	Description        string          `json:"description"`
	HSNSACCode         string          `json:"hsnSacCode"`
	Quantity           decimal.Decimal `json:"quantity"`
	Rate               decimal.Decimal `json:"rate"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	TaxRate            decimal.Decimal `json:"taxRate"`
	CGSTRate           decimal.Decimal `json:"cgstRate"`
	SGSTRate           decimal.Decimal `json:"sgstRate"`
	IGSTRate           decimal.Decimal `json:"igstRate"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	TaxableAmount      decimal.Decimal `json:"taxableAmount"`
	CGSTAmount         decimal.Decimal `json:"cgstAmount"`
	SGSTAmount         decimal.Decimal `json:"sgstAmount"`
	IGSTAmount         decimal.Decimal `json:"igstAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
}
