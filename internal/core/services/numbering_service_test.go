package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockSequenceRepository is a mock type for the SequenceRepositoryFacade interface
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) FindSequence(ctx context.Context, scope domain.NumberingScope) (*domain.DocumentSequence, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentSequence), args.Error(1)
}

func (m *MockSequenceRepository) IssueNumber(ctx context.Context, scope domain.NumberingScope) (int64, string, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(int64), args.String(1), args.Error(2)
}

func (m *MockSequenceRepository) SaveSequence(ctx context.Context, seq domain.DocumentSequence) error {
	args := m.Called(ctx, seq)
	return args.Error(0)
}

type NumberingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSequenceRepository
	service  portssvc.NumberingSvcFacade
	scope    domain.NumberingScope
	docDate  time.Time
}

func (suite *NumberingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSequenceRepository)
	suite.service = services.NewNumberingService(suite.mockRepo)
	suite.scope = domain.NumberingScope{
		CompanyID: "comp-1",
		BranchID:  "branch-1",
		DocType:   domain.DocTypeInvoice,
	}
	suite.docDate = time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
}

func (suite *NumberingServiceTestSuite) TestPreview_FormatsWithoutMutation() {
	ctx := context.Background()
	suite.mockRepo.On("FindSequence", ctx, suite.scope).Return(&domain.DocumentSequence{
		CompanyID: "comp-1",
		BranchID:  "branch-1",
		DocType:   domain.DocTypeInvoice,
		Prefix:    "INV-",
		Counter:   42,
	}, nil).Twice()

	number, err := suite.service.Preview(ctx, suite.scope, suite.docDate)
	suite.Require().NoError(err)
	suite.Equal("INV-0042/25-26", number)

	// Preview again: same number, nothing consumed.
	again, err := suite.service.Preview(ctx, suite.scope, suite.docDate)
	suite.Require().NoError(err)
	suite.Equal(number, again)

	suite.mockRepo.AssertNotCalled(suite.T(), "IssueNumber", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NumberingServiceTestSuite) TestPreview_UnknownScope() {
	ctx := context.Background()
	suite.mockRepo.On("FindSequence", ctx, suite.scope).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Preview(ctx, suite.scope, suite.docDate)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *NumberingServiceTestSuite) TestNext_IssuesAndFormats() {
	ctx := context.Background()
	suite.mockRepo.On("IssueNumber", ctx, suite.scope).Return(int64(42), "INV-", nil).Once()

	number, err := suite.service.Next(ctx, suite.scope, suite.docDate)

	suite.Require().NoError(err)
	suite.Equal("INV-0042/25-26", number)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NumberingServiceTestSuite) TestNext_FinancialYearFromDocumentDate() {
	ctx := context.Background()
	suite.mockRepo.On("IssueNumber", ctx, suite.scope).Return(int64(7), "INV-", nil).Once()

	// February 2026 still falls in FY 2025-26.
	number, err := suite.service.Next(ctx, suite.scope, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal("INV-0007/25-26", number)
}

func (suite *NumberingServiceTestSuite) TestNext_RetriesOnConflictThenSucceeds() {
	ctx := context.Background()
	conflict := fmt.Errorf("serialization: %w", apperrors.ErrConflict)
	suite.mockRepo.On("IssueNumber", ctx, suite.scope).Return(int64(0), "", conflict).Twice()
	suite.mockRepo.On("IssueNumber", ctx, suite.scope).Return(int64(9), "INV-", nil).Once()

	number, err := suite.service.Next(ctx, suite.scope, suite.docDate)

	suite.Require().NoError(err)
	suite.Equal("INV-0009/25-26", number)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "IssueNumber", 3)
}

func (suite *NumberingServiceTestSuite) TestNext_GivesUpAfterBoundedRetries() {
	ctx := context.Background()
	conflict := fmt.Errorf("serialization: %w", apperrors.ErrConflict)
	suite.mockRepo.On("IssueNumber", ctx, suite.scope).Return(int64(0), "", conflict)

	_, err := suite.service.Next(ctx, suite.scope, suite.docDate)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "IssueNumber", 3)
}

func (suite *NumberingServiceTestSuite) TestNext_NonConflictErrorIsNotRetried() {
	ctx := context.Background()
	suite.mockRepo.On("IssueNumber", ctx, suite.scope).Return(int64(0), "", apperrors.ErrNotFound).Once()

	_, err := suite.service.Next(ctx, suite.scope, suite.docDate)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "IssueNumber", 1)
}

func (suite *NumberingServiceTestSuite) TestCreateScope() {
	ctx := context.Background()
	suite.mockRepo.On("SaveSequence", ctx, mock.MatchedBy(func(seq domain.DocumentSequence) bool {
		return seq.Prefix == "INV-" && seq.Counter == 100 && seq.BranchID == "branch-1"
	})).Return(nil).Once()

	err := suite.service.CreateScope(ctx, "user-1", suite.scope, "INV-", 100)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NumberingServiceTestSuite) TestCreateScope_RequiresPrefix() {
	err := suite.service.CreateScope(context.Background(), "user-1", suite.scope, "", 1)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSequence", mock.Anything, mock.Anything)
}

func TestNumberingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(NumberingServiceTestSuite))
}
