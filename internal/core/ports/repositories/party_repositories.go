package repositories

import (
	"context"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
)

// PartyRepositoryFacade defines operations for counterparties.
// AdvanceBalance is mutated only inside payment transactions.
type PartyRepositoryFacade interface {
	// SaveParty persists a new party.
	SaveParty(ctx context.Context, party domain.Party) error

	// FindPartyByID retrieves a party by its identifier.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListPartiesByCompany retrieves all active parties of a company.
	ListPartiesByCompany(ctx context.Context, companyID string, partyType *domain.PartyType) ([]domain.Party, error)
}
