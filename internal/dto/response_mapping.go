package dto

import "github.com/ezbillify/ezbillify-backend/internal/core/domain"

// ToDocumentResponse converts a domain document to its API form.
func ToDocumentResponse(doc *domain.FinancialDocument) DocumentResponse {
	resp := DocumentResponse{
		DocumentID:     doc.DocumentID,
		CompanyID:      doc.CompanyID,
		BranchID:       doc.BranchID,
		PartyID:        doc.PartyID,
		DocType:        doc.DocType,
		DocumentNumber: doc.DocumentNumber,
		DocumentDate:   doc.DocumentDate,
		DueDate:        doc.DueDate,
		GSTType:        doc.GSTType,
		Status:         doc.Status,
		Notes:          doc.Notes,
		Subtotal:       doc.Subtotal,
		DiscountAmount: doc.DiscountAmount,
		CGSTAmount:     doc.CGSTAmount,
		SGSTAmount:     doc.SGSTAmount,
		IGSTAmount:     doc.IGSTAmount,
		TotalAmount:    doc.TotalAmount,
		PaidAmount:     doc.PaidAmount,
		BalanceAmount:  doc.BalanceAmount,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.LastUpdatedAt,
	}
	if len(doc.Items) > 0 {
		resp.Items = make([]DocumentItemResponse, len(doc.Items))
		for i, item := range doc.Items {
			resp.Items[i] = ToDocumentItemResponse(item)
		}
	}
	return resp
}

// ToDocumentItemResponse converts a domain line item to its API form.
func ToDocumentItemResponse(item domain.LineItem) DocumentItemResponse {
	return DocumentItemResponse{
		ItemID:             item.ItemID,
		Description:        item.Description,
		HSNSACCode:         item.HSNSACCode,
		Quantity:           item.Quantity,
		Rate:               item.Rate,
		DiscountPercentage: item.DiscountPercentage,
		TaxRate:            item.TaxRate,
		TaxableAmount:      item.TaxableAmount,
		CGSTAmount:         item.CGSTAmount,
		SGSTAmount:         item.SGSTAmount,
		IGSTAmount:         item.IGSTAmount,
		TotalAmount:        item.TotalAmount,
	}
}

// ToPaymentResponse converts a domain payment to its API form.
func ToPaymentResponse(payment *domain.Payment) PaymentResponse {
	allocations := make([]AllocationResponse, len(payment.Allocations))
	for i, alloc := range payment.Allocations {
		allocations[i] = AllocationResponse{
			AllocationID: alloc.AllocationID,
			DocumentID:   alloc.DocumentID,
			Amount:       alloc.Amount,
		}
	}
	return PaymentResponse{
		PaymentID:        payment.PaymentID,
		CompanyID:        payment.CompanyID,
		PartyID:          payment.PartyID,
		PaymentDate:      payment.PaymentDate,
		Amount:           payment.Amount,
		Mode:             payment.Mode,
		Method:           payment.Method,
		Reference:        payment.Reference,
		AdvanceRemainder: payment.AdvanceRemainder,
		Allocations:      allocations,
		CreatedAt:        payment.CreatedAt,
		UpdatedAt:        payment.LastUpdatedAt,
	}
}

// ToAccountResponse converts a domain account to its API form.
func ToAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      account.AccountID,
		CompanyID:      account.CompanyID,
		Name:           account.Name,
		AccountType:    account.AccountType,
		NormalBalance:  account.AccountType.NormalSide(),
		OpeningBalance: account.OpeningBalance,
		IsActive:       account.IsActive,
		CreatedAt:      account.CreatedAt,
		UpdatedAt:      account.LastUpdatedAt,
	}
}

// ToPartyResponse converts a domain party to its API form.
func ToPartyResponse(party *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:         party.PartyID,
		CompanyID:       party.CompanyID,
		Name:            party.Name,
		PartyType:       party.PartyType,
		GSTIN:           party.GSTIN,
		LedgerAccountID: party.LedgerAccountID,
		AdvanceBalance:  party.AdvanceBalance,
		IsActive:        party.IsActive,
		CreatedAt:       party.CreatedAt,
		UpdatedAt:       party.LastUpdatedAt,
	}
}

// ToCompanyResponse converts a domain company to its API form.
func ToCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID: company.CompanyID,
		Name:      company.Name,
		GSTIN:     company.GSTIN,
		StateCode: company.StateCode,
		CreatedAt: company.CreatedAt,
		UpdatedAt: company.LastUpdatedAt,
	}
}

// ToUserResponse converts a domain user to its API form.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
