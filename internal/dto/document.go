package dto

import (
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DocumentItemInput is one line of a document as submitted by the client.
// The derived amounts are optional; when present they are checked against the
// server computation and rejected if they drift beyond the money tolerance.
type DocumentItemInput struct {
	ItemID             string           `json:"itemId" binding:"omitempty,max=100"`
	Description        string           `json:"description" binding:"required,max=500"`
	HSNSACCode         string           `json:"hsnSacCode" binding:"omitempty,max=10"`
	Quantity           decimal.Decimal  `json:"quantity" binding:"required"`
	Rate               decimal.Decimal  `json:"rate" binding:"required"`
	DiscountPercentage decimal.Decimal  `json:"discountPercentage"`
	TaxRate            decimal.Decimal  `json:"taxRate"`
	TaxableAmount      *decimal.Decimal `json:"taxableAmount,omitempty"`
	TaxAmount          *decimal.Decimal `json:"taxAmount,omitempty"`
	TotalAmount        *decimal.Decimal `json:"totalAmount,omitempty"`
}

// CreateDocumentRequest is the payload for creating a financial document.
type CreateDocumentRequest struct {
	BranchID     string              `json:"branchId" binding:"required,uuid"`
	PartyID      string              `json:"partyId" binding:"required,uuid"`
	DocType      domain.DocumentType `json:"docType" binding:"required,doctype"`
	DocumentDate time.Time           `json:"documentDate" binding:"required"`
	DueDate      *time.Time          `json:"dueDate,omitempty"`
	GSTType      domain.GSTType      `json:"gstType" binding:"required,gsttype"`
	Notes        string              `json:"notes" binding:"max=1000"`
	Draft        bool                `json:"draft"`
	Items        []DocumentItemInput `json:"items" binding:"required,min=1,max=500,dive"`
}

// UpdateDocumentRequest patches a draft or posted document. A nil Items slice
// leaves the financial body untouched; a non-nil slice replaces it entirely
// and triggers a full server-side recomputation.
type UpdateDocumentRequest struct {
	DocumentDate *time.Time          `json:"documentDate,omitempty"`
	DueDate      *time.Time          `json:"dueDate,omitempty"`
	Notes        *string             `json:"notes,omitempty" binding:"omitempty,max=1000"`
	GSTType      *domain.GSTType     `json:"gstType,omitempty" binding:"omitempty,gsttype"`
	Items        []DocumentItemInput `json:"items,omitempty" binding:"omitempty,min=1,max=500,dive"`
}

// DocumentItemResponse is one computed line of a document.
type DocumentItemResponse struct {
	ItemID             string          `json:"itemId,omitempty"`
	Description        string          `json:"description"`
	HSNSACCode         string          `json:"hsnSacCode,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	Rate               decimal.Decimal `json:"rate"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	TaxRate            decimal.Decimal `json:"taxRate"`
	TaxableAmount      decimal.Decimal `json:"taxableAmount"`
	CGSTAmount         decimal.Decimal `json:"cgstAmount"`
	SGSTAmount         decimal.Decimal `json:"sgstAmount"`
	IGSTAmount         decimal.Decimal `json:"igstAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
}

// DocumentResponse is the API representation of a financial document.
type DocumentResponse struct {
	DocumentID     string                 `json:"documentId"`
	CompanyID      string                 `json:"companyId"`
	BranchID       string                 `json:"branchId"`
	PartyID        string                 `json:"partyId"`
	DocType        domain.DocumentType    `json:"docType"`
	DocumentNumber string                 `json:"documentNumber"`
	DocumentDate   time.Time              `json:"documentDate"`
	DueDate        time.Time              `json:"dueDate"`
	GSTType        domain.GSTType         `json:"gstType"`
	Status         domain.DocumentStatus  `json:"status"`
	Notes          string                 `json:"notes,omitempty"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	DiscountAmount decimal.Decimal        `json:"discountAmount"`
	CGSTAmount     decimal.Decimal        `json:"cgstAmount"`
	SGSTAmount     decimal.Decimal        `json:"sgstAmount"`
	IGSTAmount     decimal.Decimal        `json:"igstAmount"`
	TotalAmount    decimal.Decimal        `json:"totalAmount"`
	PaidAmount     decimal.Decimal        `json:"paidAmount"`
	BalanceAmount  decimal.Decimal        `json:"balanceAmount"`
	Items          []DocumentItemResponse `json:"items,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// ListDocumentsParams are the query parameters for listing documents.
type ListDocumentsParams struct {
	DocType   domain.DocumentType `form:"docType" binding:"required,doctype"`
	Limit     int                 `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string             `form:"nextToken"`
}

// ListDocumentsResponse is a page of documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}
