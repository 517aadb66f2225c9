package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentNotPositive    = errors.New("payment amount must be greater than zero")
	ErrAllocationNotPositive = errors.New("allocation amount must be greater than zero")
	ErrAllocationUnknownDoc  = errors.New("allocation references a document that is not open")
	ErrAllocationDuplicate   = errors.New("allocation batch references a document twice")
	ErrAllocationOverBalance = errors.New("allocation exceeds the document balance")
	ErrAllocationOverPayment = errors.New("allocation batch exceeds the payment amount")
)

// allocationService decides how a payment spreads over open documents.
// It is pure and deterministic: same inputs, same output, no storage.
type allocationService struct{}

// NewAllocationService creates a new AllocationService.
func NewAllocationService() portssvc.AllocationSvcFacade {
	return &allocationService{}
}

var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// Allocate returns the allocation set and the unallocated remainder.
// Inputs are never mutated; openDocs is copied before sorting.
func (s *allocationService) Allocate(amount decimal.Decimal, openDocs []domain.FinancialDocument, selections []domain.AllocationSelection) ([]domain.Allocation, decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, decimal.Zero, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrPaymentNotPositive)
	}
	if len(selections) > 0 {
		return s.allocateManual(amount, openDocs, selections)
	}
	return s.allocateFIFO(amount, openDocs)
}

// allocateFIFO spreads the amount over open documents oldest first:
// due date, then document date, then document id ascending.
func (s *allocationService) allocateFIFO(amount decimal.Decimal, openDocs []domain.FinancialDocument) ([]domain.Allocation, decimal.Decimal, error) {
	docs := make([]domain.FinancialDocument, len(openDocs))
	copy(docs, openDocs)
	sort.SliceStable(docs, func(i, j int) bool {
		if !docs[i].DueDate.Equal(docs[j].DueDate) {
			return docs[i].DueDate.Before(docs[j].DueDate)
		}
		if !docs[i].DocumentDate.Equal(docs[j].DocumentDate) {
			return docs[i].DocumentDate.Before(docs[j].DocumentDate)
		}
		return docs[i].DocumentID < docs[j].DocumentID
	})

	remaining := amount
	allocations := make([]domain.Allocation, 0, len(docs))
	for _, doc := range docs {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		if doc.BalanceAmount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		take := decimal.Min(remaining, doc.BalanceAmount)
		allocations = append(allocations, domain.Allocation{
			DocumentID: doc.DocumentID,
			Amount:     take,
		})
		remaining = remaining.Sub(take)
	}
	return allocations, remaining, nil
}

// allocateManual validates a caller-chosen batch all-or-nothing: one invalid
// pair rejects the whole batch and nothing is applied.
func (s *allocationService) allocateManual(amount decimal.Decimal, openDocs []domain.FinancialDocument, selections []domain.AllocationSelection) ([]domain.Allocation, decimal.Decimal, error) {
	balances := make(map[string]decimal.Decimal, len(openDocs))
	for _, doc := range openDocs {
		balances[doc.DocumentID] = doc.BalanceAmount
	}

	seen := make(map[string]struct{}, len(selections))
	total := decimal.Zero
	allocations := make([]domain.Allocation, 0, len(selections))
	for _, sel := range selections {
		if sel.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, decimal.Zero, fmt.Errorf("%w: %w: document %s", apperrors.ErrAllocation, ErrAllocationNotPositive, sel.DocumentID)
		}
		if _, dup := seen[sel.DocumentID]; dup {
			return nil, decimal.Zero, fmt.Errorf("%w: %w: document %s", apperrors.ErrAllocation, ErrAllocationDuplicate, sel.DocumentID)
		}
		seen[sel.DocumentID] = struct{}{}

		balance, ok := balances[sel.DocumentID]
		if !ok {
			return nil, decimal.Zero, fmt.Errorf("%w: %w: document %s", apperrors.ErrAllocation, ErrAllocationUnknownDoc, sel.DocumentID)
		}
		if sel.Amount.GreaterThan(balance) {
			return nil, decimal.Zero, fmt.Errorf("%w: %w: document %s has balance %s, requested %s",
				apperrors.ErrAllocation, ErrAllocationOverBalance, sel.DocumentID, balance.String(), sel.Amount.String())
		}
		total = total.Add(sel.Amount)
		allocations = append(allocations, domain.Allocation{
			DocumentID: sel.DocumentID,
			Amount:     sel.Amount,
		})
	}
	if total.GreaterThan(amount) {
		return nil, decimal.Zero, fmt.Errorf("%w: %w: payment %s, batch total %s",
			apperrors.ErrAllocation, ErrAllocationOverPayment, amount.String(), total.String())
	}
	return allocations, amount.Sub(total), nil
}
