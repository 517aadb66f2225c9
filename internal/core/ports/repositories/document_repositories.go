package repositories

import (
	"context"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
)

// DocumentReader defines read operations for financial documents.
type DocumentReader interface {
	// FindDocumentByID retrieves a document header by its unique identifier.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.FinancialDocument, error)

	// FindItemsByDocumentID retrieves the full line-item set of a document.
	FindItemsByDocumentID(ctx context.Context, documentID string) ([]domain.LineItem, error)

	// ListDocumentsByCompany retrieves a keyset-paginated list of documents of
	// one type. It returns the documents, a token for the next page, and an error.
	ListDocumentsByCompany(ctx context.Context, companyID string, docType domain.DocumentType, limit int, nextToken *string) ([]domain.FinancialDocument, *string, error)

	// ListOpenDocumentsByParty retrieves posted documents of a party with a
	// positive balance, ordered oldest first (due date, document date, id).
	ListOpenDocumentsByParty(ctx context.Context, companyID, partyID string, docType domain.DocumentType) ([]domain.FinancialDocument, error)
}

// DocumentWriter defines write operations for financial documents.
type DocumentWriter interface {
	// SaveDocument persists a document and its line items in one transaction.
	SaveDocument(ctx context.Context, doc domain.FinancialDocument, items []domain.LineItem) error

	// ReplaceDocumentItems deletes the document's item set, inserts the new
	// one and updates the stored totals, all in one transaction.
	ReplaceDocumentItems(ctx context.Context, doc domain.FinancialDocument, items []domain.LineItem) error

	// UpdateDocumentMetadata patches non-financial fields (dates, notes).
	UpdateDocumentMetadata(ctx context.Context, doc domain.FinancialDocument) error

	// UpdateDocumentStatus transitions a document's lifecycle status.
	UpdateDocumentStatus(ctx context.Context, documentID string, status domain.DocumentStatus, updatedBy string, updatedAt time.Time) error
}

// DocumentRepositoryFacade combines all document repository interfaces.
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
