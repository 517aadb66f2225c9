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
	ErrDocumentCancelled = errors.New("document is cancelled")
	ErrDocumentHasPaid   = errors.New("document has payments applied")
	ErrBranchMismatch    = errors.New("branch does not belong to the company")
	ErrPartyMismatch     = errors.New("party does not belong to the company")
)

// documentService orchestrates document lifecycle operations. All derived
// amounts flow through the tax service; nothing client-declared is stored.
type documentService struct {
	documentRepo portsrepo.DocumentRepositoryFacade
	partyRepo    portsrepo.PartyRepositoryFacade
	companyRepo  portsrepo.CompanyRepositoryFacade
	taxSvc       portssvc.TaxSvcFacade
	numberingSvc portssvc.NumberingSvcFacade
	companySvc   portssvc.CompanySvcFacade
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	documentRepo portsrepo.DocumentRepositoryFacade,
	partyRepo portsrepo.PartyRepositoryFacade,
	companyRepo portsrepo.CompanyRepositoryFacade,
	taxSvc portssvc.TaxSvcFacade,
	numberingSvc portssvc.NumberingSvcFacade,
	companySvc portssvc.CompanySvcFacade,
) portssvc.DocumentSvcFacade {
	return &documentService{
		documentRepo: documentRepo,
		partyRepo:    partyRepo,
		companyRepo:  companyRepo,
		taxSvc:       taxSvc,
		numberingSvc: numberingSvc,
		companySvc:   companySvc,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

// CreateDocument computes the document server-side, issues its number and
// persists header plus items in one transaction.
func (s *documentService) CreateDocument(ctx context.Context, userID, companyID string, req dto.CreateDocumentRequest) (*domain.FinancialDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	branch, err := s.companyRepo.FindBranchByID(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if branch.CompanyID != companyID {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrBranchMismatch)
	}
	party, err := s.partyRepo.FindPartyByID(ctx, req.PartyID)
	if err != nil {
		return nil, err
	}
	if party.CompanyID != companyID {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrPartyMismatch)
	}

	totals, lines, err := s.taxSvc.ComputeDocument(req.Items, req.GSTType)
	if err != nil {
		return nil, err
	}

	scope := domain.NumberingScope{
		CompanyID: companyID,
		BranchID:  req.BranchID,
		DocType:   req.DocType,
	}
	number, err := s.numberingSvc.Next(ctx, scope, req.DocumentDate)
	if err != nil {
		return nil, err
	}

	status := domain.DocStatusPosted
	if req.Draft {
		status = domain.DocStatusDraft
	}
	dueDate := req.DocumentDate
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	now := time.Now()
	doc := domain.FinancialDocument{
		DocumentID:     uuid.NewString(),
		CompanyID:      companyID,
		BranchID:       req.BranchID,
		PartyID:        req.PartyID,
		DocType:        req.DocType,
		DocumentNumber: number,
		DocumentDate:   req.DocumentDate,
		DueDate:        dueDate,
		GSTType:        req.GSTType,
		Subtotal:       totals.Subtotal,
		DiscountAmount: totals.DiscountAmount,
		CGSTAmount:     totals.CGSTAmount,
		SGSTAmount:     totals.SGSTAmount,
		IGSTAmount:     totals.IGSTAmount,
		TotalAmount:    totals.TotalAmount,
		PaidAmount:     decimal.Zero,
		BalanceAmount:  totals.TotalAmount,
		Status:         status,
		Notes:          req.Notes,
	}
	doc.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
	for i := range lines {
		lines[i].DocumentID = doc.DocumentID
	}
	doc.Items = lines

	if err := s.documentRepo.SaveDocument(ctx, doc, lines); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "document created",
		slog.String("documentID", doc.DocumentID),
		slog.String("documentNumber", doc.DocumentNumber),
		slog.String("docType", string(doc.DocType)),
	)
	return &doc, nil
}

func (s *documentService) GetDocumentByID(ctx context.Context, userID, companyID, documentID string) (*domain.FinancialDocument, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	doc, err := s.loadCompanyDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	items, err := s.documentRepo.FindItemsByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	doc.Items = items
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, userID, companyID string, params dto.ListDocumentsParams) ([]domain.FinancialDocument, *string, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	return s.documentRepo.ListDocumentsByCompany(ctx, companyID, params.DocType, limit, params.NextToken)
}

// UpdateDocument patches metadata, and when items are supplied recomputes
// the whole financial body and replaces the item set as one unit.
func (s *documentService) UpdateDocument(ctx context.Context, userID, companyID, documentID string, req dto.UpdateDocumentRequest) (*domain.FinancialDocument, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	doc, err := s.loadCompanyDocument(ctx, companyID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status == domain.DocStatusCancelled {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDocumentCancelled)
	}

	if req.DocumentDate != nil {
		doc.DocumentDate = *req.DocumentDate
	}
	if req.DueDate != nil {
		doc.DueDate = *req.DueDate
	}
	if req.Notes != nil {
		doc.Notes = *req.Notes
	}
	if req.GSTType != nil {
		doc.GSTType = *req.GSTType
	}
	doc.LastUpdatedAt = time.Now()
	doc.LastUpdatedBy = userID

	if req.Items == nil {
		if req.GSTType != nil {
			return nil, fmt.Errorf("%w: changing gst type requires resubmitting items", apperrors.ErrValidation)
		}
		if err := s.documentRepo.UpdateDocumentMetadata(ctx, *doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	if doc.PaidAmount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrDocumentHasPaid)
	}
	totals, lines, err := s.taxSvc.ComputeDocument(req.Items, doc.GSTType)
	if err != nil {
		return nil, err
	}
	doc.Subtotal = totals.Subtotal
	doc.DiscountAmount = totals.DiscountAmount
	doc.CGSTAmount = totals.CGSTAmount
	doc.SGSTAmount = totals.SGSTAmount
	doc.IGSTAmount = totals.IGSTAmount
	doc.TotalAmount = totals.TotalAmount
	doc.BalanceAmount = totals.TotalAmount.Sub(doc.PaidAmount)
	for i := range lines {
		lines[i].DocumentID = doc.DocumentID
	}
	doc.Items = lines

	if err := s.documentRepo.ReplaceDocumentItems(ctx, *doc, lines); err != nil {
		return nil, err
	}
	return doc, nil
}

// CancelDocument marks a document cancelled. A document with money applied
// against it can no longer be cancelled.
func (s *documentService) CancelDocument(ctx context.Context, userID, companyID, documentID string) error {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleMember); err != nil {
		return err
	}
	doc, err := s.loadCompanyDocument(ctx, companyID, documentID)
	if err != nil {
		return err
	}
	if doc.Status == domain.DocStatusCancelled {
		return nil
	}
	if doc.PaidAmount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrDocumentHasPaid)
	}
	return s.documentRepo.UpdateDocumentStatus(ctx, documentID, domain.DocStatusCancelled, userID, time.Now())
}

func (s *documentService) loadCompanyDocument(ctx context.Context, companyID, documentID string) (*domain.FinancialDocument, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("document %s not found", documentID))
	}
	return doc, nil
}
