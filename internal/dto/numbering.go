package dto

import "github.com/ezbillify/ezbillify-backend/internal/core/domain"

// NumberPreviewParams are the query parameters for a number preview.
type NumberPreviewParams struct {
	BranchID string              `form:"branchId" binding:"required,uuid"`
	DocType  domain.DocumentType `form:"docType" binding:"required,doctype"`
}

// NumberPreviewResponse shows the number the next issued document will get.
// Placeholder is true when no counter exists yet for the scope.
type NumberPreviewResponse struct {
	DocumentNumber string `json:"documentNumber"`
	Placeholder    bool   `json:"placeholder"`
}

// CreateSequenceRequest seeds a numbering counter for a branch and doc type.
type CreateSequenceRequest struct {
	BranchID string              `json:"branchId" binding:"required,uuid"`
	DocType  domain.DocumentType `json:"docType" binding:"required,doctype"`
	Prefix   string              `json:"prefix" binding:"required,max=20"`
	StartAt  int64               `json:"startAt" binding:"omitempty,min=1"`
}
