package services

import (
	"context"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// TaxSvcFacade computes derived amounts for document lines. It is the
// single authority over tax math; client-declared amounts are only ever
// checked against it, never trusted.
type TaxSvcFacade interface {
	// ComputeLine derives the discount, taxable and tax amounts of one line.
	ComputeLine(item dto.DocumentItemInput, gstType domain.GSTType) (domain.LineItem, error)

	// ComputeDocument derives all lines and the document totals.
	ComputeDocument(items []dto.DocumentItemInput, gstType domain.GSTType) (domain.DocumentTotals, []domain.LineItem, error)
}

// NumberingSvcFacade issues and previews branch-scoped document numbers.
type NumberingSvcFacade interface {
	// Preview formats the number the next issued document will receive
	// without consuming it.
	Preview(ctx context.Context, scope domain.NumberingScope, date time.Time) (string, error)

	// Next issues a number, atomically advancing the scope counter.
	Next(ctx context.Context, scope domain.NumberingScope, date time.Time) (string, error)

	// CreateScope seeds a counter for a new (branch, doc type) scope.
	CreateScope(ctx context.Context, userID string, scope domain.NumberingScope, prefix string, startAt int64) error
}

// AllocationSvcFacade decides how a payment spreads over open documents.
// It is pure: it never touches storage and never mutates its inputs.
type AllocationSvcFacade interface {
	// Allocate returns the allocation set and the unallocated remainder.
	// With no selections the amount is spread FIFO over openDocs; with
	// selections the batch is validated all-or-nothing.
	Allocate(amount decimal.Decimal, openDocs []domain.FinancialDocument, selections []domain.AllocationSelection) ([]domain.Allocation, decimal.Decimal, error)
}

// LedgerSvcFacade reads account statements with projected running balances.
type LedgerSvcFacade interface {
	// GetAccountStatement folds the running balance over the period's
	// entries on top of the derived opening balance.
	GetAccountStatement(ctx context.Context, userID, companyID, accountID string, from, to time.Time) (*dto.LedgerResponse, error)

	// ProjectBalances computes read-time running balances over ordered
	// entries. Exposed for reuse by reporting paths.
	ProjectBalances(opening decimal.Decimal, normal domain.NormalBalance, entries []domain.LedgerEntry) []domain.ProjectedEntry
}

// DocumentSvcFacade orchestrates document lifecycle operations.
type DocumentSvcFacade interface {
	CreateDocument(ctx context.Context, userID, companyID string, req dto.CreateDocumentRequest) (*domain.FinancialDocument, error)
	GetDocumentByID(ctx context.Context, userID, companyID, documentID string) (*domain.FinancialDocument, error)
	ListDocuments(ctx context.Context, userID, companyID string, params dto.ListDocumentsParams) ([]domain.FinancialDocument, *string, error)
	UpdateDocument(ctx context.Context, userID, companyID, documentID string, req dto.UpdateDocumentRequest) (*domain.FinancialDocument, error)
	CancelDocument(ctx context.Context, userID, companyID, documentID string) error
}

// PaymentSvcFacade orchestrates payment recording and re-allocation.
type PaymentSvcFacade interface {
	CreatePayment(ctx context.Context, userID, companyID string, req dto.CreatePaymentRequest) (*domain.Payment, error)
	GetPaymentByID(ctx context.Context, userID, companyID, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context, userID, companyID string, params dto.ListPaymentsParams) ([]domain.Payment, *string, error)
	UpdatePayment(ctx context.Context, userID, companyID, paymentID string, req dto.UpdatePaymentRequest) (*domain.Payment, error)
}

// AccountSvcFacade manages ledger accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, userID, companyID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, userID, companyID, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID, companyID string) ([]domain.Account, error)
}

// PartySvcFacade manages customers and vendors.
type PartySvcFacade interface {
	CreateParty(ctx context.Context, userID, companyID string, req dto.CreatePartyRequest) (*domain.Party, error)
	GetPartyByID(ctx context.Context, userID, companyID, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, userID, companyID string, partyType *domain.PartyType) ([]domain.Party, error)
}

// CompanySvcFacade manages companies and membership checks.
type CompanySvcFacade interface {
	CreateCompany(ctx context.Context, userID string, req dto.CreateCompanyRequest) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, userID, companyID string) (*domain.Company, error)

	// AuthorizeUserAction verifies the user holds at least the given role in
	// the company. Returns apperrors.ErrForbidden on refusal.
	AuthorizeUserAction(ctx context.Context, userID, companyID string, minRole domain.UserCompanyRole) error
}

// AuthSvcFacade handles registration and credential login.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// UserSvcFacade reads user profiles.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// ServiceContainer bundles all service facades for handler wiring.
type ServiceContainer struct {
	TaxSvc        TaxSvcFacade
	NumberingSvc  NumberingSvcFacade
	AllocationSvc AllocationSvcFacade
	LedgerSvc     LedgerSvcFacade
	DocumentSvc   DocumentSvcFacade
	PaymentSvc    PaymentSvcFacade
	AccountSvc    AccountSvcFacade
	PartySvc      PartySvcFacade
	CompanySvc    CompanySvcFacade
	AuthSvc       AuthSvcFacade
	UserSvc       UserSvcFacade
}
