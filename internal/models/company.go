package models

// Company is the persisted tenancy root.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"stateCode"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// Branch is a persisted billing location.
type Branch struct {
	BranchID  string `json:"branchID"`
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// UserCompany links a user to a company with a role.
type UserCompany struct {
	UserID    string `json:"userID"`
	CompanyID string `json:"companyID"`
	Role      string `json:"role"`
	AuditFields
}
