package repositories

import (
	"context"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
)

// CompanyRepositoryFacade defines operations for companies and branches.
type CompanyRepositoryFacade interface {
	// SaveCompany persists a company, its default branch and the creator's
	// owner membership in one transaction.
	SaveCompany(ctx context.Context, company domain.Company, branch domain.Branch, owner domain.UserCompany) error

	// FindCompanyByID retrieves a company by its identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// FindBranchByID retrieves a branch by its identifier.
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	// FindUserCompanyRole retrieves a user's role in a company.
	// Returns apperrors.ErrNotFound when the user is not a member.
	FindUserCompanyRole(ctx context.Context, userID, companyID string) (domain.UserCompanyRole, error)
}

// UserRepositoryFacade defines operations for users.
type UserRepositoryFacade interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email for credential checks.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
