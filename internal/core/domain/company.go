package domain

// UserCompanyRole defines a user's role within a company.
type UserCompanyRole string

const (
	RoleOwner    UserCompanyRole = "OWNER"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READONLY"
)

// Company is the tenancy root; every document, payment, account and party
// is owned by exactly one company.
type Company struct {
	CompanyID string `json:"companyID"` // Primary Key (UUID)
	Name      string `json:"name"`
	GSTIN     string `json:"gstin"` // Nullable
	StateCode string `json:"stateCode"` // GST state code, drives intra/interstate defaults
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// Branch is a billing location of a company. Document numbering is scoped
// per (company, branch, document type).
type Branch struct {
	BranchID  string `json:"branchID"`  // Primary Key (UUID)
	CompanyID string `json:"companyID"` // FK -> companies.company_id (Not Null)
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// UserCompany links a user to a company with a role.
type UserCompany struct {
	UserID    string          `json:"userID"`
	CompanyID string          `json:"companyID"`
	Role      UserCompanyRole `json:"role"`
	AuditFields
}
