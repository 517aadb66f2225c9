package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/ezbillify/ezbillify-backend/internal/utils/gst"
	"github.com/shopspring/decimal"
)

var (
	ErrQuantityNotPositive = errors.New("quantity must be greater than zero")
	ErrRateNegative        = errors.New("rate must not be negative")
	ErrDiscountOutOfRange  = errors.New("discount percentage must be between 0 and 100")
	ErrTaxRateOutOfRange   = errors.New("tax rate must be between 0 and 100")
	ErrInvalidGSTType      = errors.New("gst type must be INTRASTATE or INTERSTATE")
	ErrDerivedDrift        = errors.New("client-declared derived amount differs from computed amount")
)

// moneyTolerance is the maximum accepted drift between a client-declared
// derived amount and the server computation.
var moneyTolerance = decimal.New(1, -2) // 0.01

// taxService is the single authority over GST line and document math.
type taxService struct{}

// NewTaxService creates a new TaxService.
func NewTaxService() portssvc.TaxSvcFacade {
	return &taxService{}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

func (s *taxService) validateLine(item dto.DocumentItemInput, gstType domain.GSTType) error {
	if gstType != domain.GSTIntrastate && gstType != domain.GSTInterstate {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidGSTType)
	}
	if item.Quantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrQuantityNotPositive)
	}
	if item.Rate.IsNegative() {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrRateNegative)
	}
	hundred := decimal.NewFromInt(100)
	if item.DiscountPercentage.IsNegative() || item.DiscountPercentage.GreaterThan(hundred) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrDiscountOutOfRange)
	}
	if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(hundred) {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrTaxRateOutOfRange)
	}
	return nil
}

// checkDeclared compares a client-declared derived amount against the
// computed one. Declared amounts are advisory only; any drift beyond the
// money tolerance rejects the line.
func checkDeclared(field string, declared *decimal.Decimal, computed decimal.Decimal) error {
	if declared == nil {
		return nil
	}
	if declared.Sub(computed).Abs().GreaterThan(moneyTolerance) {
		return fmt.Errorf("%w: %w: %s declared %s computed %s",
			apperrors.ErrValidation, ErrDerivedDrift, field, declared.String(), computed.String())
	}
	return nil
}

// ComputeLine derives all amounts for one line. Every money amount is
// rounded half-up to currency precision before it participates in any sum.
func (s *taxService) ComputeLine(item dto.DocumentItemInput, gstType domain.GSTType) (domain.LineItem, error) {
	if err := s.validateLine(item, gstType); err != nil {
		return domain.LineItem{}, err
	}

	gross := item.Quantity.Mul(item.Rate)
	discount := gst.DiscountAmount(gross, item.DiscountPercentage)
	taxable := gst.RoundMoney(gross.Sub(discount))

	cgstRate, sgstRate, igstRate := gst.SplitRate(item.TaxRate, gstType)
	cgstAmount := gst.TaxAmount(taxable, cgstRate)
	sgstAmount := gst.TaxAmount(taxable, sgstRate)
	igstAmount := gst.TaxAmount(taxable, igstRate)
	total := taxable.Add(cgstAmount).Add(sgstAmount).Add(igstAmount)

	if err := checkDeclared("taxableAmount", item.TaxableAmount, taxable); err != nil {
		return domain.LineItem{}, err
	}
	taxSum := cgstAmount.Add(sgstAmount).Add(igstAmount)
	if err := checkDeclared("taxAmount", item.TaxAmount, taxSum); err != nil {
		return domain.LineItem{}, err
	}
	if err := checkDeclared("totalAmount", item.TotalAmount, total); err != nil {
		return domain.LineItem{}, err
	}

	return domain.LineItem{
		LineItemID:         uuid.NewString(),
		ItemID:             item.ItemID,
		Description:        item.Description,
		HSNSACCode:         item.HSNSACCode,
		Quantity:           item.Quantity,
		Rate:               item.Rate,
		DiscountPercentage: item.DiscountPercentage,
		TaxRate:            item.TaxRate,
		CGSTRate:           cgstRate,
		SGSTRate:           sgstRate,
		IGSTRate:           igstRate,
		DiscountAmount:     discount,
		TaxableAmount:      taxable,
		CGSTAmount:         cgstAmount,
		SGSTAmount:         sgstAmount,
		IGSTAmount:         igstAmount,
		TotalAmount:        total,
	}, nil
}

// ComputeDocument derives every line and sums the rounded line amounts into
// document totals. It never partially applies: the first invalid line
// rejects the whole document.
func (s *taxService) ComputeDocument(items []dto.DocumentItemInput, gstType domain.GSTType) (domain.DocumentTotals, []domain.LineItem, error) {
	if len(items) == 0 {
		return domain.DocumentTotals{}, nil, fmt.Errorf("%w: document requires at least one line item", apperrors.ErrValidation)
	}

	totals := domain.DocumentTotals{
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		CGSTAmount:     decimal.Zero,
		SGSTAmount:     decimal.Zero,
		IGSTAmount:     decimal.Zero,
		TotalAmount:    decimal.Zero,
	}
	lines := make([]domain.LineItem, 0, len(items))
	for i, item := range items {
		line, err := s.ComputeLine(item, gstType)
		if err != nil {
			return domain.DocumentTotals{}, nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		totals.Subtotal = totals.Subtotal.Add(line.TaxableAmount)
		totals.DiscountAmount = totals.DiscountAmount.Add(line.DiscountAmount)
		totals.CGSTAmount = totals.CGSTAmount.Add(line.CGSTAmount)
		totals.SGSTAmount = totals.SGSTAmount.Add(line.SGSTAmount)
		totals.IGSTAmount = totals.IGSTAmount.Add(line.IGSTAmount)
		totals.TotalAmount = totals.TotalAmount.Add(line.TotalAmount)
		lines = append(lines, line)
	}
	return totals, lines, nil
}
