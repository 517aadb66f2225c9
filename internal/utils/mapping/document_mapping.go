package mapping

import (
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/ezbillify/ezbillify-backend/internal/models"
)

// ToModelDocument converts a domain FinancialDocument to its model form.
func ToModelDocument(d domain.FinancialDocument) models.Document {
	return models.Document{
		DocumentID:     d.DocumentID,
		CompanyID:      d.CompanyID,
		BranchID:       d.BranchID,
		PartyID:        d.PartyID,
		DocType:        models.DocumentType(d.DocType),
		DocumentNumber: d.DocumentNumber,
		DocumentDate:   d.DocumentDate,
		DueDate:        d.DueDate,
		GSTType:        models.GSTType(d.GSTType),
		Subtotal:       d.Subtotal,
		DiscountAmount: d.DiscountAmount,
		CGSTAmount:     d.CGSTAmount,
		SGSTAmount:     d.SGSTAmount,
		IGSTAmount:     d.IGSTAmount,
		TotalAmount:    d.TotalAmount,
		PaidAmount:     d.PaidAmount,
		BalanceAmount:  d.BalanceAmount,
		Status:         models.DocumentStatus(d.Status),
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to its domain form.
func ToDomainDocument(m models.Document) domain.FinancialDocument {
	return domain.FinancialDocument{
		DocumentID:     m.DocumentID,
		CompanyID:      m.CompanyID,
		BranchID:       m.BranchID,
		PartyID:        m.PartyID,
		DocType:        domain.DocumentType(m.DocType),
		DocumentNumber: m.DocumentNumber,
		DocumentDate:   m.DocumentDate,
		DueDate:        m.DueDate,
		GSTType:        domain.GSTType(m.GSTType),
		Subtotal:       m.Subtotal,
		DiscountAmount: m.DiscountAmount,
		CGSTAmount:     m.CGSTAmount,
		SGSTAmount:     m.SGSTAmount,
		IGSTAmount:     m.IGSTAmount,
		TotalAmount:    m.TotalAmount,
		PaidAmount:     m.PaidAmount,
		BalanceAmount:  m.BalanceAmount,
		Status:         domain.DocumentStatus(m.Status),
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDocumentItem converts a domain LineItem to its model form.
func ToModelDocumentItem(d domain.LineItem) models.DocumentItem {
	return models.DocumentItem{
		LineItemID:         d.LineItemID,
		DocumentID:         d.DocumentID,
		ItemID:             d.ItemID,
		Description:        d.Description,
		HSNSACCode:         d.HSNSACCode,
		Quantity:           d.Quantity,
		Rate:               d.Rate,
		DiscountPercentage: d.DiscountPercentage,
		TaxRate:            d.TaxRate,
		CGSTRate:           d.CGSTRate,
		SGSTRate:           d.SGSTRate,
		IGSTRate:           d.IGSTRate,
		DiscountAmount:     d.DiscountAmount,
		TaxableAmount:      d.TaxableAmount,
		CGSTAmount:         d.CGSTAmount,
		SGSTAmount:         d.SGSTAmount,
		IGSTAmount:         d.IGSTAmount,
		TotalAmount:        d.TotalAmount,
	}
}

// ToDomainDocumentItem converts a model DocumentItem to its domain form.
func ToDomainDocumentItem(m models.DocumentItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:         m.LineItemID,
		DocumentID:         m.DocumentID,
		ItemID:             m.ItemID,
		Description:        m.Description,
		HSNSACCode:         m.HSNSACCode,
		Quantity:           m.Quantity,
		Rate:               m.Rate,
		DiscountPercentage: m.DiscountPercentage,
		TaxRate:            m.TaxRate,
		CGSTRate:           m.CGSTRate,
		SGSTRate:           m.SGSTRate,
		IGSTRate:           m.IGSTRate,
		DiscountAmount:     m.DiscountAmount,
		TaxableAmount:      m.TaxableAmount,
		CGSTAmount:         m.CGSTAmount,
		SGSTAmount:         m.SGSTAmount,
		IGSTAmount:         m.IGSTAmount,
		TotalAmount:        m.TotalAmount,
	}
}

// ToDomainDocumentItemSlice converts a slice of model items to domain items.
func ToDomainDocumentItemSlice(ms []models.DocumentItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocumentItem(m)
	}
	return ds
}
