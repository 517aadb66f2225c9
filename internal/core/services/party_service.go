package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// partyService manages customers and vendors. Every party is backed by a
// ledger account: receivable (asset) for customers, payable (liability)
// for vendors.
type partyService struct {
	partyRepo   portsrepo.PartyRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewPartyService creates a new PartyService.
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.PartySvcFacade {
	return &partyService{
		partyRepo:   partyRepo,
		accountRepo: accountRepo,
		companySvc:  companySvc,
	}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

func (s *partyService) CreateParty(ctx context.Context, userID, companyID string, req dto.CreatePartyRequest) (*domain.Party, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	accountType := domain.Asset
	accountLabel := "Receivable"
	if req.PartyType == domain.PartyVendor {
		accountType = domain.Liability
		accountLabel = "Payable"
	}
	account := domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      companyID,
		Name:           fmt.Sprintf("%s - %s", req.Name, accountLabel),
		AccountType:    accountType,
		OpeningBalance: decimal.Zero,
		IsActive:       true,
	}
	account.AuditFields = audit
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}

	party := domain.Party{
		PartyID:         uuid.NewString(),
		CompanyID:       companyID,
		Name:            req.Name,
		PartyType:       req.PartyType,
		GSTIN:           req.GSTIN,
		LedgerAccountID: account.AccountID,
		AdvanceBalance:  decimal.Zero,
		IsActive:        true,
	}
	party.AuditFields = audit
	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		return nil, err
	}
	return &party, nil
}

func (s *partyService) GetPartyByID(ctx context.Context, userID, companyID, partyID string) (*domain.Party, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if party.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("party %s not found", partyID))
	}
	return party, nil
}

func (s *partyService) ListParties(ctx context.Context, userID, companyID string, partyType *domain.PartyType) ([]domain.Party, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.partyRepo.ListPartiesByCompany(ctx, companyID, partyType)
}
