package services_test

import (
	"testing"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/core/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TaxServiceTestSuite struct {
	suite.Suite
	service portssvc.TaxSvcFacade
}

func (suite *TaxServiceTestSuite) SetupTest() {
	suite.service = services.NewTaxService()
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (suite *TaxServiceTestSuite) TestComputeLine_IntrastateSplitsRate() {
	line, err := suite.service.ComputeLine(dto.DocumentItemInput{
		Description: "Widget",
		Quantity:    dec("2"),
		Rate:        dec("500"),
		TaxRate:     dec("18"),
	}, domain.GSTIntrastate)

	suite.Require().NoError(err)
	suite.True(line.CGSTRate.Equal(dec("9")), "cgst rate: %s", line.CGSTRate)
	suite.True(line.SGSTRate.Equal(dec("9")))
	suite.True(line.IGSTRate.IsZero())
	suite.True(line.TaxableAmount.Equal(dec("1000")))
	suite.True(line.CGSTAmount.Equal(dec("90")))
	suite.True(line.SGSTAmount.Equal(dec("90")))
	suite.True(line.IGSTAmount.IsZero())
	suite.True(line.TotalAmount.Equal(dec("1180")))
}

func (suite *TaxServiceTestSuite) TestComputeLine_InterstateIsAllIGST() {
	line, err := suite.service.ComputeLine(dto.DocumentItemInput{
		Description: "Widget",
		Quantity:    dec("1"),
		Rate:        dec("1000"),
		TaxRate:     dec("18"),
	}, domain.GSTInterstate)

	suite.Require().NoError(err)
	suite.True(line.CGSTAmount.IsZero())
	suite.True(line.SGSTAmount.IsZero())
	suite.True(line.IGSTAmount.Equal(dec("180")))
	// The two modes are mutually exclusive: never both sides populated.
	suite.True(line.CGSTRate.IsZero() && line.SGSTRate.IsZero())
}

func (suite *TaxServiceTestSuite) TestComputeLine_RoundsHalfUpToPaise() {
	// 1 x 10.01 at 0.1% discount: discount 0.01001 -> 0.01,
	// taxable 10.00; 18% tax -> cgst/sgst 0.90 each.
	line, err := suite.service.ComputeLine(dto.DocumentItemInput{
		Description:        "Widget",
		Quantity:           dec("1"),
		Rate:               dec("10.01"),
		DiscountPercentage: dec("0.1"),
		TaxRate:            dec("18"),
	}, domain.GSTIntrastate)

	suite.Require().NoError(err)
	suite.True(line.DiscountAmount.Equal(dec("0.01")), "discount: %s", line.DiscountAmount)
	suite.True(line.TaxableAmount.Equal(dec("10.00")))
	suite.True(line.CGSTAmount.Equal(dec("0.90")))
}

func (suite *TaxServiceTestSuite) TestComputeLine_HalfPaiseRoundsUp() {
	// taxable 0.50 at 1% -> 0.005 exactly; half-up gives 0.01.
	line, err := suite.service.ComputeLine(dto.DocumentItemInput{
		Description: "Widget",
		Quantity:    dec("1"),
		Rate:        dec("0.50"),
		TaxRate:     dec("1"),
	}, domain.GSTInterstate)

	suite.Require().NoError(err)
	suite.True(line.IGSTAmount.Equal(dec("0.01")), "igst: %s", line.IGSTAmount)
}

func (suite *TaxServiceTestSuite) TestComputeLine_Validation() {
	base := dto.DocumentItemInput{
		Description: "Widget",
		Quantity:    dec("1"),
		Rate:        dec("100"),
		TaxRate:     dec("18"),
	}

	cases := []struct {
		name   string
		mutate func(*dto.DocumentItemInput)
	}{
		{"zero quantity", func(i *dto.DocumentItemInput) { i.Quantity = decimal.Zero }},
		{"negative quantity", func(i *dto.DocumentItemInput) { i.Quantity = dec("-1") }},
		{"negative rate", func(i *dto.DocumentItemInput) { i.Rate = dec("-0.01") }},
		{"discount above 100", func(i *dto.DocumentItemInput) { i.DiscountPercentage = dec("100.01") }},
		{"negative discount", func(i *dto.DocumentItemInput) { i.DiscountPercentage = dec("-5") }},
		{"tax rate above 100", func(i *dto.DocumentItemInput) { i.TaxRate = dec("101") }},
		{"negative tax rate", func(i *dto.DocumentItemInput) { i.TaxRate = dec("-18") }},
	}
	for _, tc := range cases {
		item := base
		tc.mutate(&item)
		_, err := suite.service.ComputeLine(item, domain.GSTIntrastate)
		suite.ErrorIs(err, apperrors.ErrValidation, tc.name)
	}
}

func (suite *TaxServiceTestSuite) TestComputeLine_RejectsDriftingDeclaredAmounts() {
	declared := dec("999.00") // computed taxable is 1000.00
	_, err := suite.service.ComputeLine(dto.DocumentItemInput{
		Description:   "Widget",
		Quantity:      dec("1"),
		Rate:          dec("1000"),
		TaxRate:       dec("18"),
		TaxableAmount: &declared,
	}, domain.GSTInterstate)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrDerivedDrift)
}

func (suite *TaxServiceTestSuite) TestComputeLine_AcceptsDeclaredWithinTolerance() {
	declared := dec("1000.01")
	line, err := suite.service.ComputeLine(dto.DocumentItemInput{
		Description:   "Widget",
		Quantity:      dec("1"),
		Rate:          dec("1000"),
		TaxRate:       dec("18"),
		TaxableAmount: &declared,
	}, domain.GSTInterstate)

	suite.Require().NoError(err)
	// The stored value is the computed one, not the declared one.
	suite.True(line.TaxableAmount.Equal(dec("1000")))
}

func (suite *TaxServiceTestSuite) TestComputeDocument_SumsRoundedLines() {
	// Each line's tax rounds before summing: 3 lines of taxable 10.03 at
	// 18% intrastate -> cgst 0.90 each (0.9027 rounded), never 2.71 total.
	items := []dto.DocumentItemInput{
		{Description: "A", Quantity: dec("1"), Rate: dec("10.03"), TaxRate: dec("18")},
		{Description: "B", Quantity: dec("1"), Rate: dec("10.03"), TaxRate: dec("18")},
		{Description: "C", Quantity: dec("1"), Rate: dec("10.03"), TaxRate: dec("18")},
	}
	totals, lines, err := suite.service.ComputeDocument(items, domain.GSTIntrastate)

	suite.Require().NoError(err)
	suite.Len(lines, 3)
	suite.True(totals.Subtotal.Equal(dec("30.09")))
	suite.True(totals.CGSTAmount.Equal(dec("2.70")), "cgst total: %s", totals.CGSTAmount)
	suite.True(totals.SGSTAmount.Equal(dec("2.70")))

	// Document total is the exact sum of rounded line totals.
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.TotalAmount)
	}
	suite.True(totals.TotalAmount.Equal(sum))
}

func (suite *TaxServiceTestSuite) TestComputeDocument_RejectsWholeDocumentOnBadLine() {
	items := []dto.DocumentItemInput{
		{Description: "Good", Quantity: dec("1"), Rate: dec("100"), TaxRate: dec("18")},
		{Description: "Bad", Quantity: decimal.Zero, Rate: dec("100"), TaxRate: dec("18")},
	}
	_, lines, err := suite.service.ComputeDocument(items, domain.GSTIntrastate)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(lines)
}

func (suite *TaxServiceTestSuite) TestComputeDocument_RequiresItems() {
	_, _, err := suite.service.ComputeDocument(nil, domain.GSTIntrastate)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestTaxServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaxServiceTestSuite))
}
