package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/ezbillify/ezbillify-backend/internal/middleware"
)

// roleRank orders company roles by privilege for minimum-role checks.
var roleRank = map[domain.UserCompanyRole]int{
	domain.RoleReadOnly: 1,
	domain.RoleMember:   2,
	domain.RoleOwner:    3,
}

// companyService manages the tenancy root and membership authorization.
type companyService struct {
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany creates the company, its default branch and the creator's
// owner membership in one repository transaction.
func (s *companyService) CreateCompany(ctx context.Context, userID string, req dto.CreateCompanyRequest) (*domain.Company, error) {
	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	company := domain.Company{
		CompanyID: uuid.NewString(),
		Name:      req.Name,
		GSTIN:     req.GSTIN,
		StateCode: req.StateCode,
		IsActive:  true,
	}
	company.AuditFields = audit

	branchName := req.BranchName
	if branchName == "" {
		branchName = "Head Office"
	}
	branch := domain.Branch{
		BranchID:  uuid.NewString(),
		CompanyID: company.CompanyID,
		Name:      branchName,
		IsActive:  true,
	}
	branch.AuditFields = audit

	owner := domain.UserCompany{
		UserID:    userID,
		CompanyID: company.CompanyID,
		Role:      domain.RoleOwner,
	}
	owner.AuditFields = audit

	if err := s.companyRepo.SaveCompany(ctx, company, branch, owner); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).InfoContext(ctx, "company created",
		slog.String("companyID", company.CompanyID),
		slog.String("createdBy", userID),
	)
	return &company, nil
}

// GetCompanyByID returns a company the caller is a member of.
func (s *companyService) GetCompanyByID(ctx context.Context, userID, companyID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.companyRepo.FindCompanyByID(ctx, companyID)
}

// AuthorizeUserAction verifies the user holds at least minRole in the
// company. Non-members are refused the same way as under-privileged members.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID, companyID string, minRole domain.UserCompanyRole) error {
	role, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s is not a member of company %s", apperrors.ErrForbidden, userID, companyID)
		}
		return err
	}
	if roleRank[role] < roleRank[minRole] {
		return fmt.Errorf("%w: role %s does not allow this action", apperrors.ErrForbidden, role)
	}
	return nil
}
