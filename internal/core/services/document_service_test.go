package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/core/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockDocumentRepository is a mock type for the DocumentRepositoryFacade interface
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.FinancialDocument, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockDocumentRepository) ListDocumentsByCompany(ctx context.Context, companyID string, docType domain.DocumentType, limit int, nextToken *string) ([]domain.FinancialDocument, *string, error) {
	args := m.Called(ctx, companyID, docType, limit, nextToken)
	var docs []domain.FinancialDocument
	if args.Get(0) != nil {
		docs = args.Get(0).([]domain.FinancialDocument)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return docs, token, args.Error(2)
}

func (m *MockDocumentRepository) ListOpenDocumentsByParty(ctx context.Context, companyID, partyID string, docType domain.DocumentType) ([]domain.FinancialDocument, error) {
	args := m.Called(ctx, companyID, partyID, docType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialDocument), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, doc domain.FinancialDocument, items []domain.LineItem) error {
	args := m.Called(ctx, doc, items)
	return args.Error(0)
}

func (m *MockDocumentRepository) ReplaceDocumentItems(ctx context.Context, doc domain.FinancialDocument, items []domain.LineItem) error {
	args := m.Called(ctx, doc, items)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentMetadata(ctx context.Context, doc domain.FinancialDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, documentID, status, updatedBy, updatedAt)
	return args.Error(0)
}

// MockPartyRepository is a mock type for the PartyRepositoryFacade interface
type MockPartyRepository struct {
	mock.Mock
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListPartiesByCompany(ctx context.Context, companyID string, partyType *domain.PartyType) ([]domain.Party, error) {
	args := m.Called(ctx, companyID, partyType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

// MockCompanyRepository is a mock type for the CompanyRepositoryFacade interface
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, branch domain.Branch, owner domain.UserCompany) error {
	args := m.Called(ctx, company, branch, owner)
	return args.Error(0)
}

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockCompanyRepository) FindUserCompanyRole(ctx context.Context, userID, companyID string) (domain.UserCompanyRole, error) {
	args := m.Called(ctx, userID, companyID)
	return args.Get(0).(domain.UserCompanyRole), args.Error(1)
}

// MockNumberingSvc is a mock type for the NumberingSvcFacade interface
type MockNumberingSvc struct {
	mock.Mock
}

func (m *MockNumberingSvc) Preview(ctx context.Context, scope domain.NumberingScope, date time.Time) (string, error) {
	args := m.Called(ctx, scope, date)
	return args.String(0), args.Error(1)
}

func (m *MockNumberingSvc) Next(ctx context.Context, scope domain.NumberingScope, date time.Time) (string, error) {
	args := m.Called(ctx, scope, date)
	return args.String(0), args.Error(1)
}

func (m *MockNumberingSvc) CreateScope(ctx context.Context, userID string, scope domain.NumberingScope, prefix string, startAt int64) error {
	args := m.Called(ctx, userID, scope, prefix, startAt)
	return args.Error(0)
}

type DocumentServiceTestSuite struct {
	suite.Suite
	mockDocRepo     *MockDocumentRepository
	mockPartyRepo   *MockPartyRepository
	mockCompanyRepo *MockCompanyRepository
	mockNumbering   *MockNumberingSvc
	mockCompanySvc  *MockCompanySvc
	service         portssvc.DocumentSvcFacade
}

func (suite *DocumentServiceTestSuite) SetupTest() {
	suite.mockDocRepo = new(MockDocumentRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockNumbering = new(MockNumberingSvc)
	suite.mockCompanySvc = new(MockCompanySvc)
	suite.service = services.NewDocumentService(
		suite.mockDocRepo,
		suite.mockPartyRepo,
		suite.mockCompanyRepo,
		services.NewTaxService(),
		suite.mockNumbering,
		suite.mockCompanySvc,
	)
}

func (suite *DocumentServiceTestSuite) expectMemberAuth(ctx context.Context) {
	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, "user-1", "comp-1", domain.RoleMember).Return(nil).Once()
}

func (suite *DocumentServiceTestSuite) expectBranchAndParty(ctx context.Context) {
	suite.mockCompanyRepo.On("FindBranchByID", ctx, "branch-1").Return(&domain.Branch{
		BranchID:  "branch-1",
		CompanyID: "comp-1",
	}, nil).Once()
	suite.mockPartyRepo.On("FindPartyByID", ctx, "party-1").Return(&domain.Party{
		PartyID:   "party-1",
		CompanyID: "comp-1",
		PartyType: domain.PartyCustomer,
	}, nil).Once()
}

func (suite *DocumentServiceTestSuite) createRequest() dto.CreateDocumentRequest {
	return dto.CreateDocumentRequest{
		BranchID:     "branch-1",
		PartyID:      "party-1",
		DocType:      domain.DocTypeInvoice,
		DocumentDate: time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
		GSTType:      domain.GSTIntrastate,
		Items: []dto.DocumentItemInput{
			{Description: "Widget", Quantity: dec("2"), Rate: dec("500"), TaxRate: dec("18")},
		},
	}
}

func (suite *DocumentServiceTestSuite) TestCreateDocument() {
	ctx := context.Background()
	req := suite.createRequest()
	suite.expectMemberAuth(ctx)
	suite.expectBranchAndParty(ctx)
	suite.mockNumbering.On("Next", ctx, domain.NumberingScope{
		CompanyID: "comp-1",
		BranchID:  "branch-1",
		DocType:   domain.DocTypeInvoice,
	}, req.DocumentDate).Return("INV-0042/25-26", nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.AnythingOfType("domain.FinancialDocument"), mock.AnythingOfType("[]domain.LineItem")).Return(nil).Once()

	doc, err := suite.service.CreateDocument(ctx, "user-1", "comp-1", req)

	suite.Require().NoError(err)
	suite.Equal("INV-0042/25-26", doc.DocumentNumber)
	suite.Equal(domain.DocStatusPosted, doc.Status)
	suite.True(doc.Subtotal.Equal(dec("1000")))
	suite.True(doc.CGSTAmount.Equal(dec("90")))
	suite.True(doc.SGSTAmount.Equal(dec("90")))
	suite.True(doc.TotalAmount.Equal(dec("1180")))
	suite.True(doc.PaidAmount.IsZero())
	suite.True(doc.BalanceAmount.Equal(doc.TotalAmount))
	// Due date defaults to the document date when not supplied.
	suite.True(doc.DueDate.Equal(req.DocumentDate))
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_DraftStatus() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Draft = true
	suite.expectMemberAuth(ctx)
	suite.expectBranchAndParty(ctx)
	suite.mockNumbering.On("Next", ctx, mock.Anything, req.DocumentDate).Return("INV-0042/25-26", nil).Once()
	suite.mockDocRepo.On("SaveDocument", ctx, mock.Anything, mock.Anything).Return(nil).Once()

	doc, err := suite.service.CreateDocument(ctx, "user-1", "comp-1", req)

	suite.Require().NoError(err)
	suite.Equal(domain.DocStatusDraft, doc.Status)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_RejectsDriftingClientTotals() {
	ctx := context.Background()
	req := suite.createRequest()
	declared := dec("900") // computed taxable is 1000
	req.Items[0].TaxableAmount = &declared
	suite.expectMemberAuth(ctx)
	suite.expectBranchAndParty(ctx)

	_, err := suite.service.CreateDocument(ctx, "user-1", "comp-1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	// No number may be consumed for a rejected document.
	suite.mockNumbering.AssertNotCalled(suite.T(), "Next", mock.Anything, mock.Anything, mock.Anything)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "SaveDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestCreateDocument_ForeignBranch() {
	ctx := context.Background()
	req := suite.createRequest()
	suite.expectMemberAuth(ctx)
	suite.mockCompanyRepo.On("FindBranchByID", ctx, "branch-1").Return(&domain.Branch{
		BranchID:  "branch-1",
		CompanyID: "comp-other",
	}, nil).Once()

	_, err := suite.service.CreateDocument(ctx, "user-1", "comp-1", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_MetadataOnly() {
	ctx := context.Background()
	notes := "updated notes"
	existing := &domain.FinancialDocument{
		DocumentID:  "doc-1",
		CompanyID:   "comp-1",
		Status:      domain.DocStatusPosted,
		TotalAmount: dec("1180"),
		PaidAmount:  dec("500"),
	}
	suite.expectMemberAuth(ctx)
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(existing, nil).Once()
	suite.mockDocRepo.On("UpdateDocumentMetadata", ctx, mock.MatchedBy(func(doc domain.FinancialDocument) bool {
		return doc.Notes == notes && doc.TotalAmount.Equal(dec("1180"))
	})).Return(nil).Once()

	doc, err := suite.service.UpdateDocument(ctx, "user-1", "comp-1", "doc-1", dto.UpdateDocumentRequest{Notes: &notes})

	suite.Require().NoError(err)
	suite.Equal(notes, doc.Notes)
	// A metadata patch never touches the item set or totals.
	suite.mockDocRepo.AssertNotCalled(suite.T(), "ReplaceDocumentItems", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_ItemsRecomputed() {
	ctx := context.Background()
	existing := &domain.FinancialDocument{
		DocumentID:  "doc-1",
		CompanyID:   "comp-1",
		Status:      domain.DocStatusPosted,
		GSTType:     domain.GSTIntrastate,
		TotalAmount: dec("1180"),
		PaidAmount:  decimal.Zero,
	}
	suite.expectMemberAuth(ctx)
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(existing, nil).Once()
	suite.mockDocRepo.On("ReplaceDocumentItems", ctx, mock.MatchedBy(func(doc domain.FinancialDocument) bool {
		return doc.TotalAmount.Equal(dec("590")) && doc.BalanceAmount.Equal(dec("590"))
	}), mock.AnythingOfType("[]domain.LineItem")).Return(nil).Once()

	doc, err := suite.service.UpdateDocument(ctx, "user-1", "comp-1", "doc-1", dto.UpdateDocumentRequest{
		Items: []dto.DocumentItemInput{
			{Description: "Widget", Quantity: dec("1"), Rate: dec("500"), TaxRate: dec("18")},
		},
	})

	suite.Require().NoError(err)
	suite.True(doc.TotalAmount.Equal(dec("590")))
	suite.Len(doc.Items, 1)
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_ItemEditBlockedOncePaid() {
	ctx := context.Background()
	existing := &domain.FinancialDocument{
		DocumentID: "doc-1",
		CompanyID:  "comp-1",
		Status:     domain.DocStatusPartiallyPaid,
		GSTType:    domain.GSTIntrastate,
		PaidAmount: dec("100"),
	}
	suite.expectMemberAuth(ctx)
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(existing, nil).Once()

	_, err := suite.service.UpdateDocument(ctx, "user-1", "comp-1", "doc-1", dto.UpdateDocumentRequest{
		Items: []dto.DocumentItemInput{
			{Description: "Widget", Quantity: dec("1"), Rate: dec("500"), TaxRate: dec("18")},
		},
	})

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *DocumentServiceTestSuite) TestUpdateDocument_CancelledIsImmutable() {
	ctx := context.Background()
	notes := "nope"
	existing := &domain.FinancialDocument{
		DocumentID: "doc-1",
		CompanyID:  "comp-1",
		Status:     domain.DocStatusCancelled,
	}
	suite.expectMemberAuth(ctx)
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(existing, nil).Once()

	_, err := suite.service.UpdateDocument(ctx, "user-1", "comp-1", "doc-1", dto.UpdateDocumentRequest{Notes: &notes})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *DocumentServiceTestSuite) TestCancelDocument() {
	ctx := context.Background()
	existing := &domain.FinancialDocument{
		DocumentID: "doc-1",
		CompanyID:  "comp-1",
		Status:     domain.DocStatusPosted,
		PaidAmount: decimal.Zero,
	}
	suite.expectMemberAuth(ctx)
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(existing, nil).Once()
	suite.mockDocRepo.On("UpdateDocumentStatus", ctx, "doc-1", domain.DocStatusCancelled, "user-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.CancelDocument(ctx, "user-1", "comp-1", "doc-1")

	suite.Require().NoError(err)
	suite.mockDocRepo.AssertExpectations(suite.T())
}

func (suite *DocumentServiceTestSuite) TestCancelDocument_BlockedOncePaid() {
	ctx := context.Background()
	existing := &domain.FinancialDocument{
		DocumentID: "doc-1",
		CompanyID:  "comp-1",
		Status:     domain.DocStatusPartiallyPaid,
		PaidAmount: dec("10"),
	}
	suite.expectMemberAuth(ctx)
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-1").Return(existing, nil).Once()

	err := suite.service.CancelDocument(ctx, "user-1", "comp-1", "doc-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockDocRepo.AssertNotCalled(suite.T(), "UpdateDocumentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentServiceTestSuite) TestGetDocumentByID_OtherCompanyHidden() {
	ctx := context.Background()
	suite.mockCompanySvc.On("AuthorizeUserAction", ctx, "user-1", "comp-1", domain.RoleReadOnly).Return(nil).Once()
	suite.mockDocRepo.On("FindDocumentByID", ctx, "doc-9").Return(&domain.FinancialDocument{
		DocumentID: "doc-9",
		CompanyID:  "comp-other",
	}, nil).Once()

	_, err := suite.service.GetDocumentByID(ctx, "user-1", "comp-1", "doc-9")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestDocumentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceTestSuite))
}
