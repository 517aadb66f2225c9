package dto

import "time"

// CreateCompanyRequest is the payload for creating a company. The default
// branch is created alongside it.
type CreateCompanyRequest struct {
	Name       string `json:"name" binding:"required,max=255"`
	GSTIN      string `json:"gstin" binding:"omitempty,len=15"`
	StateCode  string `json:"stateCode" binding:"required,len=2"`
	BranchName string `json:"branchName" binding:"omitempty,max=255"`
}

// CompanyResponse is the API representation of a company.
type CompanyResponse struct {
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	GSTIN     string    `json:"gstin,omitempty"`
	StateCode string    `json:"stateCode"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BranchResponse is the API representation of a branch.
type BranchResponse struct {
	BranchID  string    `json:"branchId"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
