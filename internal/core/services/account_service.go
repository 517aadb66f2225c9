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
)

// accountService manages ledger accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		companySvc:  companySvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID, companyID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		CompanyID:      companyID,
		Name:           req.Name,
		AccountType:    req.AccountType,
		OpeningBalance: req.OpeningBalance,
		IsActive:       true,
	}
	account.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID, companyID, accountID string) (*domain.Account, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID, companyID string) ([]domain.Account, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.accountRepo.ListAccountsByCompany(ctx, companyID)
}
