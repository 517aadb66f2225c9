package repositories

// RepositoryProvider bundles all repository facades for dependency wiring.
type RepositoryProvider struct {
	DocumentRepo DocumentRepositoryFacade
	PaymentRepo  PaymentRepositoryFacade
	AccountRepo  AccountRepositoryFacade
	LedgerRepo   LedgerRepositoryFacade
	SequenceRepo SequenceRepositoryFacade
	PartyRepo    PartyRepositoryFacade
	CompanyRepo  CompanyRepositoryFacade
	UserRepo     UserRepositoryFacade
}
