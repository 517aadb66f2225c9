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
	"github.com/shopspring/decimal"
)

var (
	ErrDepositAccountMismatch = errors.New("deposit account does not belong to the company")
	ErrAdvanceWithSelections  = errors.New("advance payments do not take allocation selections")
)

// paymentService records payments and applies them to open documents. The
// whole application - payment row, allocations, document balance and status
// updates, ledger entries and the party advance delta - is one repository
// transaction: either everything lands or nothing does.
type paymentService struct {
	paymentRepo   portsrepo.PaymentRepositoryFacade
	documentRepo  portsrepo.DocumentRepositoryFacade
	partyRepo     portsrepo.PartyRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
	allocationSvc portssvc.AllocationSvcFacade
	companySvc    portssvc.CompanySvcFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	documentRepo portsrepo.DocumentRepositoryFacade,
	partyRepo portsrepo.PartyRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	allocationSvc portssvc.AllocationSvcFacade,
	companySvc portssvc.CompanySvcFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:   paymentRepo,
		documentRepo:  documentRepo,
		partyRepo:     partyRepo,
		accountRepo:   accountRepo,
		allocationSvc: allocationSvc,
		companySvc:    companySvc,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// payableDocType returns the document type a party's payments settle:
// invoices for customers, bills for vendors.
func payableDocType(partyType domain.PartyType) domain.DocumentType {
	if partyType == domain.PartyVendor {
		return domain.DocTypeBill
	}
	return domain.DocTypeInvoice
}

// CreatePayment records a payment and applies it atomically.
func (s *paymentService) CreatePayment(ctx context.Context, userID, companyID string, req dto.CreatePaymentRequest) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrPaymentNotPositive)
	}

	party, err := s.partyRepo.FindPartyByID(ctx, req.PartyID)
	if err != nil {
		return nil, err
	}
	if party.CompanyID != companyID {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrPartyMismatch)
	}
	depositAccount, err := s.accountRepo.FindAccountByID(ctx, req.DepositAccountID)
	if err != nil {
		return nil, err
	}
	if depositAccount.CompanyID != companyID {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDepositAccountMismatch)
	}

	var (
		allocations []domain.Allocation
		remainder   decimal.Decimal
		openDocs    []domain.FinancialDocument
	)
	switch req.Mode {
	case domain.PaymentAdvance:
		if len(req.Selections) > 0 {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAdvanceWithSelections)
		}
		remainder = req.Amount
	default:
		openDocs, err = s.documentRepo.ListOpenDocumentsByParty(ctx, companyID, req.PartyID, payableDocType(party.PartyType))
		if err != nil {
			return nil, err
		}
		selections := make([]domain.AllocationSelection, 0, len(req.Selections))
		for _, sel := range req.Selections {
			selections = append(selections, domain.AllocationSelection{
				DocumentID: sel.DocumentID,
				Amount:     sel.Amount,
			})
		}
		allocations, remainder, err = s.allocationSvc.Allocate(req.Amount, openDocs, selections)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:        uuid.NewString(),
		CompanyID:        companyID,
		PartyID:          req.PartyID,
		PaymentDate:      req.PaymentDate,
		Amount:           req.Amount,
		Method:           req.Method,
		Mode:             req.Mode,
		Reference:        req.Reference,
		AdvanceRemainder: remainder,
	}
	payment.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	for i := range allocations {
		allocations[i].AllocationID = uuid.NewString()
		allocations[i].PaymentID = payment.PaymentID
	}

	applications, err := buildApplications(openDocs, allocations)
	if err != nil {
		return nil, err
	}
	entries := s.buildLedgerEntries(payment, *party, *depositAccount, userID, now)

	if err := s.paymentRepo.SavePayment(ctx, payment, allocations, applications, entries, remainder); err != nil {
		return nil, err
	}
	payment.Allocations = allocations
	logger.InfoContext(ctx, "payment recorded",
		slog.String("paymentID", payment.PaymentID),
		slog.String("partyID", payment.PartyID),
		slog.Int("allocations", len(allocations)),
		slog.String("advanceRemainder", remainder.String()),
	)
	return &payment, nil
}

// buildApplications derives the per-document balance effect of an allocation
// set against the documents' current balances.
func buildApplications(docs []domain.FinancialDocument, allocations []domain.Allocation) ([]portsrepo.DocumentApplication, error) {
	byID := make(map[string]domain.FinancialDocument, len(docs))
	for _, doc := range docs {
		byID[doc.DocumentID] = doc
	}
	applications := make([]portsrepo.DocumentApplication, 0, len(allocations))
	for _, alloc := range allocations {
		doc, ok := byID[alloc.DocumentID]
		if !ok {
			return nil, fmt.Errorf("%w: document %s", apperrors.ErrAllocation, alloc.DocumentID)
		}
		newBalance := doc.BalanceAmount.Sub(alloc.Amount)
		status := domain.DocStatusPartiallyPaid
		if newBalance.IsZero() {
			status = domain.DocStatusPaid
		}
		applications = append(applications, portsrepo.DocumentApplication{
			DocumentID: alloc.DocumentID,
			Amount:     alloc.Amount,
			NewStatus:  status,
		})
	}
	return applications, nil
}

// buildLedgerEntries books the payment double-entry. A customer receipt
// debits the deposit account and credits the customer's receivable account;
// a vendor payment is the mirror image. Allocation splits never change the
// entries: they book the payment amount, not its distribution.
func (s *paymentService) buildLedgerEntries(payment domain.Payment, party domain.Party, depositAccount domain.Account, userID string, now time.Time) []domain.LedgerEntry {
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	narration := fmt.Sprintf("Payment %s %s %s", payment.Method, payment.Reference, party.Name)

	depositEntry := domain.LedgerEntry{
		EntryID:      uuid.NewString(),
		AccountID:    depositAccount.AccountID,
		CompanyID:    payment.CompanyID,
		EntryDate:    payment.PaymentDate,
		DebitAmount:  payment.Amount,
		CreditAmount: decimal.Zero,
		Narration:    narration,
	}
	depositEntry.AuditFields = audit
	partyEntry := domain.LedgerEntry{
		EntryID:      uuid.NewString(),
		AccountID:    party.LedgerAccountID,
		CompanyID:    payment.CompanyID,
		EntryDate:    payment.PaymentDate,
		DebitAmount:  decimal.Zero,
		CreditAmount: payment.Amount,
		Narration:    narration,
	}
	partyEntry.AuditFields = audit

	if party.PartyType == domain.PartyVendor {
		depositEntry.DebitAmount, depositEntry.CreditAmount = depositEntry.CreditAmount, depositEntry.DebitAmount
		partyEntry.DebitAmount, partyEntry.CreditAmount = partyEntry.CreditAmount, partyEntry.DebitAmount
	}
	return []domain.LedgerEntry{depositEntry, partyEntry}
}

func (s *paymentService) GetPaymentByID(ctx context.Context, userID, companyID, paymentID string) (*domain.Payment, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	payment, err := s.loadCompanyPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}
	allocations, err := s.paymentRepo.FindAllocationsByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	payment.Allocations = allocations
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, userID, companyID string, params dto.ListPaymentsParams) ([]domain.Payment, *string, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.paymentRepo.ListPaymentsByCompany(ctx, companyID, limit, params.NextToken)
}

// UpdatePayment patches payment metadata, and when selections are supplied
// replaces the allocation set: the old allocations' document effects are
// reversed and the new set applied in one transaction.
func (s *paymentService) UpdatePayment(ctx context.Context, userID, companyID, paymentID string, req dto.UpdatePaymentRequest) (*domain.Payment, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	payment, err := s.loadCompanyPayment(ctx, companyID, paymentID)
	if err != nil {
		return nil, err
	}

	if req.PaymentDate != nil {
		payment.PaymentDate = *req.PaymentDate
	}
	if req.Method != nil {
		payment.Method = *req.Method
	}
	if req.Reference != nil {
		payment.Reference = *req.Reference
	}
	payment.LastUpdatedAt = time.Now()
	payment.LastUpdatedBy = userID

	if req.Selections == nil {
		if err := s.paymentRepo.UpdatePaymentMetadata(ctx, *payment); err != nil {
			return nil, err
		}
		allocations, err := s.paymentRepo.FindAllocationsByPaymentID(ctx, paymentID)
		if err != nil {
			return nil, err
		}
		payment.Allocations = allocations
		return payment, nil
	}
	if payment.Mode == domain.PaymentAdvance {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrAdvanceWithSelections)
	}
	return s.reallocate(ctx, payment, *req.Selections)
}

// reallocate reverses the payment's current allocations in memory, validates
// the new selection against the restored balances and hands the whole swap
// to the repository as one transaction.
func (s *paymentService) reallocate(ctx context.Context, payment *domain.Payment, selections []dto.AllocationSelectionInput) (*domain.Payment, error) {
	oldAllocations, err := s.paymentRepo.FindAllocationsByPaymentID(ctx, payment.PaymentID)
	if err != nil {
		return nil, err
	}
	party, err := s.partyRepo.FindPartyByID(ctx, payment.PartyID)
	if err != nil {
		return nil, err
	}

	openDocs, err := s.documentRepo.ListOpenDocumentsByParty(ctx, payment.CompanyID, payment.PartyID, payableDocType(party.PartyType))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.FinancialDocument, len(openDocs))
	docs := make([]*domain.FinancialDocument, 0, len(openDocs)+len(oldAllocations))
	for i := range openDocs {
		byID[openDocs[i].DocumentID] = &openDocs[i]
		docs = append(docs, &openDocs[i])
	}

	// Restore the balances this payment consumed so the new selection is
	// validated against the state it will actually apply to. Fully paid
	// documents drop out of the open list and are fetched individually.
	reversals := make([]portsrepo.DocumentApplication, 0, len(oldAllocations))
	for _, alloc := range oldAllocations {
		doc, ok := byID[alloc.DocumentID]
		if !ok {
			loaded, err := s.documentRepo.FindDocumentByID(ctx, alloc.DocumentID)
			if err != nil {
				return nil, err
			}
			doc = loaded
			byID[doc.DocumentID] = doc
			docs = append(docs, doc)
		}
		doc.PaidAmount = doc.PaidAmount.Sub(alloc.Amount)
		doc.BalanceAmount = doc.BalanceAmount.Add(alloc.Amount)

		status := domain.DocStatusPartiallyPaid
		if doc.PaidAmount.IsZero() {
			status = domain.DocStatusPosted
		}
		reversals = append(reversals, portsrepo.DocumentApplication{
			DocumentID: alloc.DocumentID,
			Amount:     alloc.Amount.Neg(),
			NewStatus:  status,
		})
	}

	adjusted := make([]domain.FinancialDocument, 0, len(docs))
	for _, doc := range docs {
		adjusted = append(adjusted, *doc)
	}
	domainSelections := make([]domain.AllocationSelection, 0, len(selections))
	for _, sel := range selections {
		domainSelections = append(domainSelections, domain.AllocationSelection{
			DocumentID: sel.DocumentID,
			Amount:     sel.Amount,
		})
	}

	allocations, remainder, err := s.allocationSvc.Allocate(payment.Amount, adjusted, domainSelections)
	if err != nil {
		return nil, err
	}
	for i := range allocations {
		allocations[i].AllocationID = uuid.NewString()
		allocations[i].PaymentID = payment.PaymentID
	}
	applications, err := buildApplications(adjusted, allocations)
	if err != nil {
		return nil, err
	}

	advanceDelta := remainder.Sub(payment.AdvanceRemainder)
	payment.AdvanceRemainder = remainder

	if err := s.paymentRepo.ReplaceAllocations(ctx, *payment, reversals, allocations, applications, advanceDelta); err != nil {
		return nil, err
	}
	payment.Allocations = allocations
	middleware.GetLoggerFromCtx(ctx).InfoContext(ctx, "payment reallocated",
		slog.String("paymentID", payment.PaymentID),
		slog.Int("allocations", len(allocations)),
	)
	return payment, nil
}

func (s *paymentService) loadCompanyPayment(ctx context.Context, companyID, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("payment %s not found", paymentID))
	}
	return payment, nil
}
