package services_test

import (
	"context"
	"testing"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/core/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CompanyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCompanyRepository
	service  portssvc.CompanySvcFacade
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCompanyRepository)
	suite.service = services.NewCompanyService(suite.mockRepo)
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_SeedsBranchAndOwner() {
	ctx := context.Background()
	var savedBranch domain.Branch
	var savedOwner domain.UserCompany
	suite.mockRepo.On("SaveCompany", ctx, mock.AnythingOfType("domain.Company"), mock.AnythingOfType("domain.Branch"), mock.AnythingOfType("domain.UserCompany")).
		Run(func(args mock.Arguments) {
			savedBranch = args.Get(2).(domain.Branch)
			savedOwner = args.Get(3).(domain.UserCompany)
		}).Return(nil).Once()

	company, err := suite.service.CreateCompany(ctx, "user-1", dto.CreateCompanyRequest{
		Name:      "Acme Traders",
		StateCode: "29",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(company.CompanyID)
	suite.Equal("29", company.StateCode)
	suite.Equal(company.CompanyID, savedBranch.CompanyID)
	suite.Equal("Head Office", savedBranch.Name)
	suite.Equal("user-1", savedOwner.UserID)
	suite.Equal(domain.RoleOwner, savedOwner.Role)
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_RoleRanking() {
	ctx := context.Background()
	cases := []struct {
		held    domain.UserCompanyRole
		minRole domain.UserCompanyRole
		allowed bool
	}{
		{domain.RoleOwner, domain.RoleOwner, true},
		{domain.RoleOwner, domain.RoleMember, true},
		{domain.RoleMember, domain.RoleMember, true},
		{domain.RoleMember, domain.RoleOwner, false},
		{domain.RoleReadOnly, domain.RoleReadOnly, true},
		{domain.RoleReadOnly, domain.RoleMember, false},
	}
	for _, tc := range cases {
		suite.mockRepo.On("FindUserCompanyRole", ctx, "user-1", "comp-1").Return(tc.held, nil).Once()

		err := suite.service.AuthorizeUserAction(ctx, "user-1", "comp-1", tc.minRole)
		if tc.allowed {
			suite.NoError(err, "%s vs min %s", tc.held, tc.minRole)
		} else {
			suite.ErrorIs(err, apperrors.ErrForbidden, "%s vs min %s", tc.held, tc.minRole)
		}
	}
}

func (suite *CompanyServiceTestSuite) TestAuthorizeUserAction_NonMemberForbidden() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserCompanyRole", ctx, "user-1", "comp-1").Return(domain.UserCompanyRole(""), apperrors.ErrNotFound).Once()

	err := suite.service.AuthorizeUserAction(ctx, "user-1", "comp-1", domain.RoleReadOnly)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
