package dto

import (
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations wires the domain enum validators into gin's
// binding engine. Call once at startup before registering routes.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	validations := map[string]validator.Func{
		"doctype":     validDocType,
		"gsttype":     validGSTType,
		"accounttype": validAccountType,
		"partytype":   validPartyType,
		"txmode":      validPaymentMode,
	}
	for tag, fn := range validations {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validDocType(fl validator.FieldLevel) bool {
	switch domain.DocumentType(fl.Field().String()) {
	case domain.DocTypeInvoice, domain.DocTypeBill, domain.DocTypeQuotation, domain.DocTypeCreditNote, domain.DocTypeDebitNote:
		return true
	}
	return false
}

func validGSTType(fl validator.FieldLevel) bool {
	switch domain.GSTType(fl.Field().String()) {
	case domain.GSTIntrastate, domain.GSTInterstate:
		return true
	}
	return false
}

func validAccountType(fl validator.FieldLevel) bool {
	switch domain.AccountType(fl.Field().String()) {
	case domain.Asset, domain.Liability, domain.Equity, domain.Income, domain.Expense:
		return true
	}
	return false
}

func validPartyType(fl validator.FieldLevel) bool {
	switch domain.PartyType(fl.Field().String()) {
	case domain.PartyCustomer, domain.PartyVendor:
		return true
	}
	return false
}

func validPaymentMode(fl validator.FieldLevel) bool {
	switch domain.PaymentMode(fl.Field().String()) {
	case domain.PaymentAgainstDocuments, domain.PaymentAdvance:
		return true
	}
	return false
}
