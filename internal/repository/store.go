package repository

import (
	"gorm.io/gorm"
)

// Store bundles all repositories behind one handle so services can run
// multi-repository mutations atomically. Transaction executes fn against
// a Store bound to a single database transaction; every ledger mutation
// that touches more than one table goes through it, so a bill transition,
// its audit entry and the balance effects land together or not at all.
type Store interface {
	Apartments() ApartmentRepository
	Residents() ResidentRepository
	Ledger() LedgerRepository
	Users() UserRepository
	SchedulerLogs() SchedulerLogRepository
	Transaction(fn func(Store) error) error
}

// gormStore implements Store on top of gorm
type gormStore struct {
	db *gorm.DB
}

// NewStore creates a new Store backed by the given gorm connection
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Apartments() ApartmentRepository {
	return NewApartmentRepository(s.db)
}

func (s *gormStore) Residents() ResidentRepository {
	return NewResidentRepository(s.db)
}

func (s *gormStore) Ledger() LedgerRepository {
	return NewLedgerRepository(s.db)
}

func (s *gormStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *gormStore) SchedulerLogs() SchedulerLogRepository {
	return NewSchedulerLogRepository(s.db)
}

func (s *gormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
