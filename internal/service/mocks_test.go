package service

import (
	"syndic-be-svc/internal/models"
	"syndic-be-svc/internal/repository"

	"gorm.io/gorm"
)

// memStore is an in-memory repository.Store for service tests
type memStore struct {
	apartments    map[uint]*models.Apartment
	residents     map[uint]*models.Resident
	users         map[uint]*models.User
	bills         map[uint]*models.Bill
	payments      map[uint]*models.RemainingPayment
	schedulerLogs []*models.SchedulerLog

	nextApartmentID uint
	nextResidentID  uint
	nextUserID      uint
	nextBillID      uint
	nextOpID        uint
	nextPaymentID   uint
}

func newMemStore() *memStore {
	return &memStore{
		apartments: map[uint]*models.Apartment{},
		residents:  map[uint]*models.Resident{},
		users:      map[uint]*models.User{},
		bills:      map[uint]*models.Bill{},
		payments:   map[uint]*models.RemainingPayment{},
	}
}

func (m *memStore) Apartments() repository.ApartmentRepository   { return (*memApartments)(m) }
func (m *memStore) Residents() repository.ResidentRepository     { return (*memResidents)(m) }
func (m *memStore) Ledger() repository.LedgerRepository          { return (*memLedger)(m) }
func (m *memStore) Users() repository.UserRepository             { return (*memUsers)(m) }
func (m *memStore) SchedulerLogs() repository.SchedulerLogRepository {
	return (*memSchedulerLogs)(m)
}

func (m *memStore) Transaction(fn func(repository.Store) error) error {
	return fn(m)
}

// seed helpers

func (m *memStore) addApartment(a *models.Apartment) *models.Apartment {
	m.nextApartmentID++
	a.ID = m.nextApartmentID
	m.apartments[a.ID] = a
	return a
}

func (m *memStore) addResident(r *models.Resident) *models.Resident {
	m.nextResidentID++
	r.ID = m.nextResidentID
	m.residents[r.ID] = r
	return r
}

type memApartments memStore

func (m *memApartments) CreateApartment(apartment *models.Apartment) error {
	(*memStore)(m).addApartment(apartment)
	return nil
}

func (m *memApartments) GetApartmentByID(id uint) (*models.Apartment, error) {
	apartment, ok := m.apartments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *apartment
	return &copied, nil
}

func (m *memApartments) GetApartmentByJoinCode(joinCode string) (*models.Apartment, error) {
	for _, apartment := range m.apartments {
		if apartment.JoinCode == joinCode {
			copied := *apartment
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memApartments) GetAllApartments() ([]*models.Apartment, error) {
	var result []*models.Apartment
	for id := uint(1); id <= m.nextApartmentID; id++ {
		if apartment, ok := m.apartments[id]; ok {
			copied := *apartment
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memApartments) IncrementActualBalance(id uint, amount int64) error {
	apartment, ok := m.apartments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	apartment.ActualBalance += amount
	return nil
}

func (m *memApartments) UpdateNumberOfResidents(id uint, count int) error {
	apartment, ok := m.apartments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	apartment.NumberOfResidents = count
	return nil
}

type memResidents memStore

func (m *memResidents) CreateResident(resident *models.Resident) error {
	(*memStore)(m).addResident(resident)
	return nil
}

func (m *memResidents) GetResidentByID(id uint) (*models.Resident, error) {
	resident, ok := m.residents[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *resident
	return &copied, nil
}

func (m *memResidents) GetResidentsByApartment(apartmentID uint) ([]*models.Resident, error) {
	var result []*models.Resident
	for id := uint(1); id <= m.nextResidentID; id++ {
		if resident, ok := m.residents[id]; ok && resident.ApartmentID == apartmentID {
			copied := *resident
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memResidents) UpdateResident(resident *models.Resident) error {
	if _, ok := m.residents[resident.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *resident
	m.residents[resident.ID] = &copied
	return nil
}

func (m *memResidents) DecrementRemainingAmount(id uint, amount int64) error {
	resident, ok := m.residents[id]
	if !ok || resident.RemainingAmount < amount {
		return repository.ErrInsufficientRemainingAmount
	}
	resident.RemainingAmount -= amount
	return nil
}

func (m *memResidents) SumRemainingAmounts(apartmentID uint) (int64, error) {
	var total int64
	for _, resident := range m.residents {
		if resident.ApartmentID == apartmentID {
			total += resident.RemainingAmount
		}
	}
	return total, nil
}

type memLedger memStore

func (m *memLedger) CreateBills(bills []*models.Bill) error {
	for _, bill := range bills {
		m.nextBillID++
		bill.ID = m.nextBillID
		for i := range bill.Operations {
			m.nextOpID++
			bill.Operations[i].ID = m.nextOpID
			bill.Operations[i].BillID = bill.ID
		}
		copied := *bill
		copied.Operations = append([]models.BillOperation(nil), bill.Operations...)
		m.bills[bill.ID] = &copied
	}
	return nil
}

func (m *memLedger) GetBillByKey(apartmentID, residentID uint, period string) (*models.Bill, error) {
	for id := uint(1); id <= m.nextBillID; id++ {
		bill, ok := m.bills[id]
		if ok && bill.ApartmentID == apartmentID && bill.ResidentID == residentID && bill.Period == period {
			copied := *bill
			copied.Operations = append([]models.BillOperation(nil), bill.Operations...)
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memLedger) GetBillsByApartment(apartmentID uint) ([]*models.Bill, error) {
	var result []*models.Bill
	for id := uint(1); id <= m.nextBillID; id++ {
		if bill, ok := m.bills[id]; ok && bill.ApartmentID == apartmentID {
			copied := *bill
			copied.Operations = append([]models.BillOperation(nil), bill.Operations...)
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memLedger) CountBillsForPeriod(apartmentID uint, period string) (int64, error) {
	var count int64
	for _, bill := range m.bills {
		if bill.ApartmentID == apartmentID && bill.Period == period {
			count++
		}
	}
	return count, nil
}

func (m *memLedger) CountBillsByStatus(apartmentID uint, status models.BillStatus) (int64, error) {
	var count int64
	for _, bill := range m.bills {
		if bill.ApartmentID == apartmentID && bill.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *memLedger) SumBillAmountsByStatus(apartmentID uint, status models.BillStatus) (int64, error) {
	var total int64
	for _, bill := range m.bills {
		if bill.ApartmentID == apartmentID && bill.Status == status {
			total += bill.Amount
		}
	}
	return total, nil
}

func (m *memLedger) UpdateBillStatus(billID uint, status models.BillStatus) error {
	bill, ok := m.bills[billID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	bill.Status = status
	return nil
}

func (m *memLedger) AppendBillOperation(op *models.BillOperation) error {
	bill, ok := m.bills[op.BillID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.nextOpID++
	op.ID = m.nextOpID
	bill.Operations = append(bill.Operations, *op)
	return nil
}

func (m *memLedger) CreateRemainingPayment(payment *models.RemainingPayment) error {
	m.nextPaymentID++
	payment.ID = m.nextPaymentID
	copied := *payment
	m.payments[payment.ID] = &copied
	return nil
}

func (m *memLedger) GetRemainingPaymentByID(apartmentID, paymentID uint) (*models.RemainingPayment, error) {
	payment, ok := m.payments[paymentID]
	if !ok || payment.ApartmentID != apartmentID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *payment
	return &copied, nil
}

func (m *memLedger) GetRemainingPaymentsByApartment(apartmentID uint) ([]*models.RemainingPayment, error) {
	var result []*models.RemainingPayment
	for id := uint(1); id <= m.nextPaymentID; id++ {
		if payment, ok := m.payments[id]; ok && payment.ApartmentID == apartmentID {
			copied := *payment
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memLedger) GetRemainingPaymentsByResident(apartmentID, residentID uint) ([]*models.RemainingPayment, error) {
	var result []*models.RemainingPayment
	for id := uint(1); id <= m.nextPaymentID; id++ {
		payment, ok := m.payments[id]
		if ok && payment.ApartmentID == apartmentID && payment.ResidentID == residentID {
			copied := *payment
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memLedger) SaveRemainingPayment(payment *models.RemainingPayment) error {
	if _, ok := m.payments[payment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *payment
	m.payments[payment.ID] = &copied
	return nil
}

func (m *memLedger) SumRemainingPaymentsByStatus(apartmentID uint, status models.RemainingPaymentStatus) (int64, error) {
	var total int64
	for _, payment := range m.payments {
		if payment.ApartmentID == apartmentID && payment.Status == status {
			total += payment.Amount
		}
	}
	return total, nil
}

type memUsers memStore

func (m *memUsers) CreateUser(user *models.User) error {
	m.nextUserID++
	user.ID = m.nextUserID
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUsers) GetUserByID(id uint) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memUsers) GetUserByUsername(username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memSchedulerLogs memStore

func (m *memSchedulerLogs) CreateSchedulerLog(log *models.SchedulerLog) error {
	m.schedulerLogs = append(m.schedulerLogs, log)
	return nil
}
