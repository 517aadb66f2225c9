package mapping

import (
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/ezbillify/ezbillify-backend/internal/models"
)

// ToModelParty converts a domain Party to its model form.
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:         d.PartyID,
		CompanyID:       d.CompanyID,
		Name:            d.Name,
		PartyType:       models.PartyType(d.PartyType),
		GSTIN:           d.GSTIN,
		LedgerAccountID: d.LedgerAccountID,
		AdvanceBalance:  d.AdvanceBalance,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParty converts a model Party to its domain form.
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:         m.PartyID,
		CompanyID:       m.CompanyID,
		Name:            m.Name,
		PartyType:       domain.PartyType(m.PartyType),
		GSTIN:           m.GSTIN,
		LedgerAccountID: m.LedgerAccountID,
		AdvanceBalance:  m.AdvanceBalance,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
