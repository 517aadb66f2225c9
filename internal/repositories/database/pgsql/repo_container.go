package pgsql

import (
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		DocumentRepo: newPgxDocumentRepository(pool),
		PaymentRepo:  newPgxPaymentRepository(pool),
		AccountRepo:  newPgxAccountRepository(pool),
		LedgerRepo:   newPgxLedgerRepository(pool),
		SequenceRepo: newPgxSequenceRepository(pool),
		PartyRepo:    newPgxPartyRepository(pool),
		CompanyRepo:  newPgxCompanyRepository(pool),
		UserRepo:     newPgxUserRepository(pool),
	}
}
