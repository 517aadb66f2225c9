package domain

// NumberingScope identifies one document number counter.
type NumberingScope struct {
	CompanyID string       `json:"companyID"`
	BranchID  string       `json:"branchID"`
	DocType   DocumentType `json:"docType"`
}

// DocumentSequence holds the numbering state for one scope.
// Counter is the NEXT unissued number: preview formats it without mutation,
// commit issues it and increments atomically.
type DocumentSequence struct {
	CompanyID string       `json:"companyID"`
	BranchID  string       `json:"branchID"`
	DocType   DocumentType `json:"docType"`
	Prefix    string       `json:"prefix"` // e.g. "INV-"
	Counter   int64        `json:"counter"`
}
