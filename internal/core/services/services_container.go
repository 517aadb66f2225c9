package services

import (
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories and peers.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	taxSvc := NewTaxService()
	allocationSvc := NewAllocationService()
	companySvc := NewCompanyService(repos.CompanyRepo)
	numberingSvc := NewNumberingService(repos.SequenceRepo)
	ledgerSvc := NewLedgerService(repos.AccountRepo, repos.LedgerRepo, companySvc)
	accountSvc := NewAccountService(repos.AccountRepo, companySvc)
	partySvc := NewPartyService(repos.PartyRepo, repos.AccountRepo, companySvc)
	documentSvc := NewDocumentService(repos.DocumentRepo, repos.PartyRepo, repos.CompanyRepo, taxSvc, numberingSvc, companySvc)
	paymentSvc := NewPaymentService(repos.PaymentRepo, repos.DocumentRepo, repos.PartyRepo, repos.AccountRepo, allocationSvc, companySvc)
	authSvc := NewAuthService(repos.UserRepo, cfg)
	userSvc := NewUserService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		TaxSvc:        taxSvc,
		NumberingSvc:  numberingSvc,
		AllocationSvc: allocationSvc,
		LedgerSvc:     ledgerSvc,
		DocumentSvc:   documentSvc,
		PaymentSvc:    paymentSvc,
		AccountSvc:    accountSvc,
		PartySvc:      partySvc,
		CompanySvc:    companySvc,
		AuthSvc:       authSvc,
		UserSvc:       userSvc,
	}
}
