package mapping

import (
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/ezbillify/ezbillify-backend/internal/models"
)

// ToModelPayment converts a domain Payment to its model form.
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:        d.PaymentID,
		CompanyID:        d.CompanyID,
		PartyID:          d.PartyID,
		PaymentDate:      d.PaymentDate,
		Amount:           d.Amount,
		Method:           d.Method,
		Mode:             models.PaymentMode(d.Mode),
		Reference:        d.Reference,
		AdvanceRemainder: d.AdvanceRemainder,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to its domain form.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:        m.PaymentID,
		CompanyID:        m.CompanyID,
		PartyID:          m.PartyID,
		PaymentDate:      m.PaymentDate,
		Amount:           m.Amount,
		Method:           m.Method,
		Mode:             domain.PaymentMode(m.Mode),
		Reference:        m.Reference,
		AdvanceRemainder: m.AdvanceRemainder,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAllocation converts a model PaymentAllocation to its domain form.
func ToDomainAllocation(m models.PaymentAllocation) domain.Allocation {
	return domain.Allocation{
		AllocationID: m.AllocationID,
		PaymentID:    m.PaymentID,
		DocumentID:   m.DocumentID,
		Amount:       m.Amount,
	}
}

// ToDomainAllocationSlice converts model allocations to domain allocations.
func ToDomainAllocationSlice(ms []models.PaymentAllocation) []domain.Allocation {
	ds := make([]domain.Allocation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAllocation(m)
	}
	return ds
}
