package services_test

import (
	"testing"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AllocationServiceTestSuite struct {
	suite.Suite
	service portssvc.AllocationSvcFacade
}

func (suite *AllocationServiceTestSuite) SetupTest() {
	suite.service = services.NewAllocationService()
}

func openDoc(id string, due, docDate time.Time, balance string) domain.FinancialDocument {
	return domain.FinancialDocument{
		DocumentID:    id,
		DueDate:       due,
		DocumentDate:  docDate,
		BalanceAmount: dec(balance),
		Status:        domain.DocStatusPosted,
	}
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func (suite *AllocationServiceTestSuite) TestAllocate_FIFOByDueDate() {
	docs := []domain.FinancialDocument{
		openDoc("doc-a", day(5), day(1), "100"),
		openDoc("doc-b", day(1), day(1), "50"),
		openDoc("doc-c", day(10), day(1), "200"),
	}

	allocations, remainder, err := suite.service.Allocate(dec("120"), docs, nil)

	suite.Require().NoError(err)
	suite.Require().Len(allocations, 2)
	suite.Equal("doc-b", allocations[0].DocumentID)
	suite.True(allocations[0].Amount.Equal(dec("50")))
	suite.Equal("doc-a", allocations[1].DocumentID)
	suite.True(allocations[1].Amount.Equal(dec("70")))
	suite.True(remainder.IsZero())
}

func (suite *AllocationServiceTestSuite) TestAllocate_FIFOTieBreaksOnDocDateThenID() {
	docs := []domain.FinancialDocument{
		openDoc("doc-z", day(1), day(1), "10"),
		openDoc("doc-a", day(1), day(1), "10"),
		openDoc("doc-m", day(1), day(2), "10"),
	}

	allocations, _, err := suite.service.Allocate(dec("25"), docs, nil)

	suite.Require().NoError(err)
	suite.Require().Len(allocations, 3)
	suite.Equal("doc-a", allocations[0].DocumentID)
	suite.Equal("doc-z", allocations[1].DocumentID)
	suite.Equal("doc-m", allocations[2].DocumentID)
	suite.True(allocations[2].Amount.Equal(dec("5")))
}

func (suite *AllocationServiceTestSuite) TestAllocate_LeftoverBecomesRemainder() {
	docs := []domain.FinancialDocument{
		openDoc("doc-a", day(1), day(1), "30"),
	}

	allocations, remainder, err := suite.service.Allocate(dec("100"), docs, nil)

	suite.Require().NoError(err)
	suite.Require().Len(allocations, 1)
	suite.True(allocations[0].Amount.Equal(dec("30")))
	suite.True(remainder.Equal(dec("70")))
}

func (suite *AllocationServiceTestSuite) TestAllocate_NoOpenDocsAllRemainder() {
	allocations, remainder, err := suite.service.Allocate(dec("100"), nil, nil)

	suite.Require().NoError(err)
	suite.Empty(allocations)
	suite.True(remainder.Equal(dec("100")))
}

// Conservation: allocated total plus remainder always equals the payment.
func (suite *AllocationServiceTestSuite) TestAllocate_ConservesAmount() {
	docs := []domain.FinancialDocument{
		openDoc("doc-a", day(3), day(1), "33.33"),
		openDoc("doc-b", day(1), day(1), "66.67"),
		openDoc("doc-c", day(2), day(1), "10.00"),
	}
	for _, amount := range []string{"0.01", "50", "100", "110.01", "500"} {
		allocations, remainder, err := suite.service.Allocate(dec(amount), docs, nil)
		suite.Require().NoError(err, amount)

		sum := decimal.Zero
		for _, a := range allocations {
			sum = sum.Add(a.Amount)
		}
		suite.True(sum.Add(remainder).Equal(dec(amount)), "amount %s: %s + %s", amount, sum, remainder)
	}
}

// Determinism and purity: repeated calls yield identical output and the
// input slice order is never touched.
func (suite *AllocationServiceTestSuite) TestAllocate_DeterministicAndPure() {
	docs := []domain.FinancialDocument{
		openDoc("doc-c", day(10), day(1), "200"),
		openDoc("doc-a", day(5), day(1), "100"),
	}

	first, firstRemainder, err := suite.service.Allocate(dec("150"), docs, nil)
	suite.Require().NoError(err)
	second, secondRemainder, err := suite.service.Allocate(dec("150"), docs, nil)
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.True(firstRemainder.Equal(secondRemainder))
	suite.Equal("doc-c", docs[0].DocumentID, "input order must not change")
	suite.True(docs[0].BalanceAmount.Equal(dec("200")), "input balances must not change")
}

func (suite *AllocationServiceTestSuite) TestAllocate_ManualBatchApplied() {
	docs := []domain.FinancialDocument{
		openDoc("doc-a", day(1), day(1), "100"),
		openDoc("doc-b", day(2), day(1), "50"),
	}
	selections := []domain.AllocationSelection{
		{DocumentID: "doc-b", Amount: dec("50")},
		{DocumentID: "doc-a", Amount: dec("25")},
	}

	allocations, remainder, err := suite.service.Allocate(dec("100"), docs, selections)

	suite.Require().NoError(err)
	suite.Require().Len(allocations, 2)
	suite.Equal("doc-b", allocations[0].DocumentID)
	suite.Equal("doc-a", allocations[1].DocumentID)
	suite.True(remainder.Equal(dec("25")))
}

func (suite *AllocationServiceTestSuite) TestAllocate_ManualOverBalanceRejectsWholeBatch() {
	docs := []domain.FinancialDocument{
		openDoc("doc-a", day(1), day(1), "100"),
		openDoc("doc-b", day(2), day(1), "50"),
	}
	selections := []domain.AllocationSelection{
		{DocumentID: "doc-b", Amount: dec("10")}, // valid pair
		{DocumentID: "doc-a", Amount: dec("150")},
	}

	allocations, _, err := suite.service.Allocate(dec("200"), docs, selections)

	suite.ErrorIs(err, apperrors.ErrAllocation)
	suite.Nil(allocations, "no pair of an invalid batch may survive")
}

func (suite *AllocationServiceTestSuite) TestAllocate_ManualRejections() {
	docs := []domain.FinancialDocument{
		openDoc("doc-a", day(1), day(1), "100"),
	}
	cases := []struct {
		name       string
		selections []domain.AllocationSelection
	}{
		{"unknown document", []domain.AllocationSelection{{DocumentID: "doc-x", Amount: dec("10")}}},
		{"zero amount", []domain.AllocationSelection{{DocumentID: "doc-a", Amount: decimal.Zero}}},
		{"negative amount", []domain.AllocationSelection{{DocumentID: "doc-a", Amount: dec("-10")}}},
		{"duplicate document", []domain.AllocationSelection{
			{DocumentID: "doc-a", Amount: dec("10")},
			{DocumentID: "doc-a", Amount: dec("10")},
		}},
		{"batch exceeds payment", []domain.AllocationSelection{{DocumentID: "doc-a", Amount: dec("60")}}},
	}
	for _, tc := range cases {
		_, _, err := suite.service.Allocate(dec("50"), docs, tc.selections)
		suite.ErrorIs(err, apperrors.ErrAllocation, tc.name)
	}
}

func (suite *AllocationServiceTestSuite) TestAllocate_NonPositivePayment() {
	_, _, err := suite.service.Allocate(decimal.Zero, nil, nil)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = suite.service.Allocate(dec("-5"), nil, nil)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestAllocationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AllocationServiceTestSuite))
}
