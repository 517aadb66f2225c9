package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for companies, branches
// and memberships.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

// SaveCompany inserts the company, its default branch and the creator's owner
// membership in one transaction, so a company never exists without either.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, branch domain.Branch, owner domain.UserCompany) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	companyQuery := `
		INSERT INTO companies (company_id, name, gstin, state_code, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, companyQuery,
		company.CompanyID, company.Name, company.GSTIN, company.StateCode, company.IsActive,
		company.CreatedAt, company.CreatedBy, company.LastUpdatedAt, company.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: company with ID %s already exists", apperrors.ErrDuplicate, company.CompanyID)
		}
		return fmt.Errorf("failed to save company %s: %w", company.CompanyID, err)
	}

	branchQuery := `
		INSERT INTO branches (branch_id, company_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, branchQuery,
		branch.BranchID, branch.CompanyID, branch.Name, branch.IsActive,
		branch.CreatedAt, branch.CreatedBy, branch.LastUpdatedAt, branch.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save branch %s: %w", branch.BranchID, err)
	}

	memberQuery := `
		INSERT INTO user_companies (user_id, company_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, memberQuery,
		owner.UserID, owner.CompanyID, string(owner.Role),
		owner.CreatedAt, owner.CreatedBy, owner.LastUpdatedAt, owner.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save company membership: %w", err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `
		SELECT company_id, name, gstin, state_code, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM companies
		WHERE company_id = $1;
	`
	var c domain.Company
	err := r.Pool.QueryRow(ctx, query, companyID).Scan(
		&c.CompanyID, &c.Name, &c.GSTIN, &c.StateCode, &c.IsActive,
		&c.CreatedAt, &c.CreatedBy, &c.LastUpdatedAt, &c.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("company %s not found", companyID))
		}
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	return &c, nil
}

func (r *PgxCompanyRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `
		SELECT branch_id, company_id, name, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM branches
		WHERE branch_id = $1;
	`
	var b domain.Branch
	err := r.Pool.QueryRow(ctx, query, branchID).Scan(
		&b.BranchID, &b.CompanyID, &b.Name, &b.IsActive,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("branch %s not found", branchID))
		}
		return nil, fmt.Errorf("failed to find branch %s: %w", branchID, err)
	}
	return &b, nil
}

func (r *PgxCompanyRepository) FindUserCompanyRole(ctx context.Context, userID, companyID string) (domain.UserCompanyRole, error) {
	query := `SELECT role FROM user_companies WHERE user_id = $1 AND company_id = $2;`
	var role string
	err := r.Pool.QueryRow(ctx, query, userID, companyID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: user %s has no role in company %s", apperrors.ErrNotFound, userID, companyID)
		}
		return "", fmt.Errorf("failed to find role: %w", err)
	}
	return domain.UserCompanyRole(role), nil
}
