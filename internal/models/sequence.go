package models

// DocumentSequence is the persisted numbering counter for one scope.
type DocumentSequence struct {
	CompanyID string       `json:"companyID"`
	BranchID  string       `json:"branchID"`
	DocType   DocumentType `json:"docType"`
	Prefix    string       `json:"prefix"`
	Counter   int64        `json:"counter"`
}
