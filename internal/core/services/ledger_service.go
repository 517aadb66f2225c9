package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/ezbillify/ezbillify-backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var ErrInvalidPeriod = errors.New("statement period start must be before its end")

// ledgerService projects read-time running balances over posted entries.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	companySvc  portssvc.CompanySvcFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, companySvc portssvc.CompanySvcFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		companySvc:  companySvc,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// ProjectBalances folds the signed entry amounts onto the opening balance in
// the order given. Callers supply entries ordered by (entry_date, sequence).
func (s *ledgerService) ProjectBalances(opening decimal.Decimal, normal domain.NormalBalance, entries []domain.LedgerEntry) []domain.ProjectedEntry {
	projected := make([]domain.ProjectedEntry, 0, len(entries))
	running := opening
	for _, entry := range entries {
		running = running.Add(accounting.SignedAmount(entry, normal))
		projected = append(projected, domain.ProjectedEntry{
			Entry:          entry,
			RunningBalance: running,
		})
	}
	return projected
}

// GetAccountStatement returns the account statement for [from, to): the
// derived opening balance, each entry with its running balance, and the
// closing balance. Balances are never read from storage.
func (s *ledgerService) GetAccountStatement(ctx context.Context, userID, companyID, accountID string, from, to time.Time) (*dto.LedgerResponse, error) {
	if err := s.companySvc.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvalidPeriod)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s not found", accountID))
	}
	normal := account.AccountType.NormalSide()

	debits, credits, err := s.ledgerRepo.SumEntriesBefore(ctx, accountID, from)
	if err != nil {
		return nil, err
	}
	opening := account.OpeningBalance
	if normal == domain.DebitNormal {
		opening = opening.Add(debits.Sub(credits))
	} else {
		opening = opening.Add(credits.Sub(debits))
	}

	entries, err := s.ledgerRepo.FindEntriesByAccount(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}
	projected := s.ProjectBalances(opening, normal, entries)

	resp := &dto.LedgerResponse{
		AccountID:      account.AccountID,
		AccountName:    account.Name,
		NormalBalance:  normal,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Entries:        make([]dto.LedgerEntryResponse, 0, len(projected)),
		ClosingBalance: opening,
	}
	for _, p := range projected {
		resp.Entries = append(resp.Entries, dto.LedgerEntryResponse{
			EntryID:        p.Entry.EntryID,
			EntryDate:      p.Entry.EntryDate,
			DocumentID:     p.Entry.DocumentID,
			Narration:      p.Entry.Narration,
			DebitAmount:    p.Entry.DebitAmount,
			CreditAmount:   p.Entry.CreditAmount,
			RunningBalance: p.RunningBalance,
		})
	}
	if len(projected) > 0 {
		resp.ClosingBalance = projected[len(projected)-1].RunningBalance
	}
	return resp, nil
}
