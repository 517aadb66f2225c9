package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType identifies the kind of financial document.
type DocumentType string

const (
	DocTypeInvoice    DocumentType = "INVOICE"
	DocTypeBill       DocumentType = "BILL"
	DocTypeQuotation  DocumentType = "QUOTATION"
	DocTypeCreditNote DocumentType = "CREDIT_NOTE"
	DocTypeDebitNote  DocumentType = "DEBIT_NOTE"
)

// GSTType selects the tax split for a document.
// Intrastate documents split the tax rate into CGST+SGST halves;
// interstate documents carry the whole rate as IGST.
type GSTType string

const (
	GSTIntrastate GSTType = "INTRASTATE"
	GSTInterstate GSTType = "INTERSTATE"
)

// DocumentStatus is the payment lifecycle state of a document.
type DocumentStatus string

const (
	DocStatusDraft         DocumentStatus = "DRAFT"
	DocStatusPosted        DocumentStatus = "POSTED"
	DocStatusPartiallyPaid DocumentStatus = "PARTIALLY_PAID"
	DocStatusPaid          DocumentStatus = "PAID"
	DocStatusCancelled     DocumentStatus = "CANCELLED"
)

// FinancialDocument represents an invoice, bill, quotation, credit note or
// debit note. Totals are always derived server-side from the line items;
// line items are owned by the document and replaced as a unit on edit.
type FinancialDocument struct {
	DocumentID     string          `json:"documentID"` // Primary Key (UUID)
	CompanyID      string          `json:"companyID"`  // FK -> companies.company_id (Not Null)
	BranchID       string          `json:"branchID"`   // FK -> branches.branch_id (Not Null)
	PartyID        string          `json:"partyID"`    // FK -> parties.party_id (customer or vendor)
	DocType        DocumentType    `json:"docType"`
	DocumentNumber string          `json:"documentNumber"` // Branch-scoped sequence, e.g. INV-0042/25-26
	DocumentDate   time.Time       `json:"documentDate"`
	DueDate        time.Time       `json:"dueDate"`
	GSTType        GSTType         `json:"gstType"`
	Subtotal       decimal.Decimal `json:"subtotal"` // Sum of line taxable amounts
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	CGSTAmount     decimal.Decimal `json:"cgstAmount"`
	SGSTAmount     decimal.Decimal `json:"sgstAmount"`
	IGSTAmount     decimal.Decimal `json:"igstAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	BalanceAmount  decimal.Decimal `json:"balanceAmount"`
	Status         DocumentStatus  `json:"status"`
	Notes          string          `json:"notes"` // Nullable
	AuditFields

	// Items is populated on demand; not every read path fetches it.
	Items []LineItem `json:"items,omitempty"`
}

// LineItem belongs to exactly one FinancialDocument. The derived fields
// (DiscountAmount through TotalAmount) come from the tax engine only.
type LineItem struct {
	LineItemID         string          `json:"lineItemID"` // Primary Key (UUID)
	DocumentID         string          `json:"documentID"` // FK -> documents.document_id (Not Null)
	ItemID             string          `json:"itemID"`     // Free-form catalogue reference
	Description        string          `json:"description"`
	HSNSACCode         string          `json:"hsnSacCode"`
	Quantity           decimal.Decimal `json:"quantity"` // > 0
	Rate               decimal.Decimal `json:"rate"`     // Unit price before discount, >= 0
	DiscountPercentage decimal.Decimal `json:"discountPercentage"` // 0..100
	TaxRate            decimal.Decimal `json:"taxRate"`            // Nominal GST %, 0..100
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

// DocumentTotals aggregates line results into document-level amounts.
type DocumentTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	CGSTAmount     decimal.Decimal `json:"cgstAmount"`
	SGSTAmount     decimal.Decimal `json:"sgstAmount"`
	IGSTAmount     decimal.Decimal `json:"igstAmount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}
