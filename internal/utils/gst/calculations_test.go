package gst_test

import (
	"testing"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/ezbillify/ezbillify-backend/internal/utils/gst"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundMoney_HalfUp(t *testing.T) {
	assert.Equal(t, "10.01", gst.RoundMoney(decimal.RequireFromString("10.005")).StringFixed(2))
	assert.Equal(t, "10.00", gst.RoundMoney(decimal.RequireFromString("10.004")).StringFixed(2))
}

func TestSplitRate(t *testing.T) {
	rate := decimal.NewFromInt(18)

	cgst, sgst, igst := gst.SplitRate(rate, domain.GSTIntrastate)
	assert.True(t, cgst.Equal(decimal.NewFromInt(9)))
	assert.True(t, sgst.Equal(decimal.NewFromInt(9)))
	assert.True(t, igst.IsZero())

	cgst, sgst, igst = gst.SplitRate(rate, domain.GSTInterstate)
	assert.True(t, cgst.IsZero())
	assert.True(t, sgst.IsZero())
	assert.True(t, igst.Equal(rate))
}

func TestFinancialYearSuffix(t *testing.T) {
	assert.Equal(t, "25-26", gst.FinancialYearSuffix(time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "25-26", gst.FinancialYearSuffix(time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "26-27", gst.FinancialYearSuffix(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatDocumentNumber(t *testing.T) {
	date := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV-0042/25-26", gst.FormatDocumentNumber("INV-", 42, date))
}
