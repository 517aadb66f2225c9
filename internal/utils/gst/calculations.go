package gst

import (
	"fmt"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the currency minor-unit precision (paise).
const MoneyPrecision = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds an amount to currency precision using round-half-up.
// decimal.Round is half-away-from-zero, which is half-up for the
// non-negative amounts produced here.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPrecision)
}

// SplitRate derives the CGST/SGST/IGST rates from a nominal tax rate and the
// document GST type. Intrastate splits the rate into equal CGST and SGST
// halves; interstate carries the whole rate as IGST. The two modes are
// mutually exclusive: one side is always all zeros.
func SplitRate(taxRate decimal.Decimal, gstType domain.GSTType) (cgst, sgst, igst decimal.Decimal) {
	if gstType == domain.GSTIntrastate {
		half := taxRate.Div(decimal.NewFromInt(2))
		return half, half, decimal.Zero
	}
	return decimal.Zero, decimal.Zero, taxRate
}

// TaxAmount applies a percentage rate to a taxable amount, rounded to
// currency precision.
func TaxAmount(taxable, rate decimal.Decimal) decimal.Decimal {
	return RoundMoney(taxable.Mul(rate).Div(hundred))
}

// DiscountAmount computes the line discount from the gross amount, rounded
// to currency precision.
func DiscountAmount(gross, discountPercentage decimal.Decimal) decimal.Decimal {
	return RoundMoney(gross.Mul(discountPercentage).Div(hundred))
}

// FinancialYearSuffix returns the Indian financial year label for a date,
// e.g. 2025-06-15 -> "25-26" and 2026-02-01 -> "25-26".
func FinancialYearSuffix(date time.Time) string {
	startYear := date.Year()
	if date.Month() < time.April {
		startYear--
	}
	return fmt.Sprintf("%02d-%02d", startYear%100, (startYear+1)%100)
}

// FormatDocumentNumber renders a sequence number with its scope prefix and
// the financial-year suffix of the document date, e.g. "INV-0042/25-26".
func FormatDocumentNumber(prefix string, number int64, date time.Time) string {
	return fmt.Sprintf("%s%04d/%s", prefix, number, FinancialYearSuffix(date))
}
