package repository

import (
	"syndic-be-svc/internal/models"

	"gorm.io/gorm"
)

// LedgerRepository defines the interface for bill and remaining-payment
// data operations. Bills and their operations are addressable records,
// not arrays inside one document, so every mutation is row-level.
type LedgerRepository interface {
	CreateBills(bills []*models.Bill) error
	GetBillByKey(apartmentID, residentID uint, period string) (*models.Bill, error)
	GetBillsByApartment(apartmentID uint) ([]*models.Bill, error)
	CountBillsForPeriod(apartmentID uint, period string) (int64, error)
	CountBillsByStatus(apartmentID uint, status models.BillStatus) (int64, error)
	SumBillAmountsByStatus(apartmentID uint, status models.BillStatus) (int64, error)
	UpdateBillStatus(billID uint, status models.BillStatus) error
	AppendBillOperation(op *models.BillOperation) error

	CreateRemainingPayment(payment *models.RemainingPayment) error
	GetRemainingPaymentByID(apartmentID, paymentID uint) (*models.RemainingPayment, error)
	GetRemainingPaymentsByApartment(apartmentID uint) ([]*models.RemainingPayment, error)
	GetRemainingPaymentsByResident(apartmentID, residentID uint) ([]*models.RemainingPayment, error)
	SaveRemainingPayment(payment *models.RemainingPayment) error
	SumRemainingPaymentsByStatus(apartmentID uint, status models.RemainingPaymentStatus) (int64, error)
}

// ledgerRepository implements LedgerRepository
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new instance of LedgerRepository
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// CreateBills inserts a batch of bills together with their creation
// operations.
func (r *ledgerRepository) CreateBills(bills []*models.Bill) error {
	return r.db.CreateInBatches(bills, 100).Error
}

// GetBillByKey retrieves the bill identified by its
// (apartment, resident, period) key, with operations in append order.
func (r *ledgerRepository) GetBillByKey(apartmentID, residentID uint, period string) (*models.Bill, error) {
	var bill models.Bill

	err := r.db.Preload("Operations", func(db *gorm.DB) *gorm.DB {
		return db.Order("bill_operations.id")
	}).
		Where("apartment_id = ? AND resident_id = ? AND period = ?", apartmentID, residentID, period).
		First(&bill).Error
	if err != nil {
		return nil, err
	}

	return &bill, nil
}

// GetBillsByApartment retrieves all bills of an apartment with their
// operation history.
func (r *ledgerRepository) GetBillsByApartment(apartmentID uint) ([]*models.Bill, error) {
	var bills []*models.Bill

	err := r.db.Preload("Operations", func(db *gorm.DB) *gorm.DB {
		return db.Order("bill_operations.id")
	}).
		Where("apartment_id = ?", apartmentID).
		Order("id").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}

	return bills, nil
}

// CountBillsForPeriod counts bills of an apartment for one billing period
func (r *ledgerRepository) CountBillsForPeriod(apartmentID uint, period string) (int64, error) {
	var count int64

	err := r.db.Model(&models.Bill{}).
		Where("apartment_id = ? AND period = ?", apartmentID, period).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CountBillsByStatus counts an apartment's bills with the given status
func (r *ledgerRepository) CountBillsByStatus(apartmentID uint, status models.BillStatus) (int64, error) {
	var count int64

	err := r.db.Model(&models.Bill{}).
		Where("apartment_id = ? AND status = ?", apartmentID, status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// SumBillAmountsByStatus sums an apartment's bill amounts with the given status
func (r *ledgerRepository) SumBillAmountsByStatus(apartmentID uint, status models.BillStatus) (int64, error) {
	var total int64

	err := r.db.Model(&models.Bill{}).
		Where("apartment_id = ? AND status = ?", apartmentID, status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

// UpdateBillStatus sets a bill's status
func (r *ledgerRepository) UpdateBillStatus(billID uint, status models.BillStatus) error {
	result := r.db.Model(&models.Bill{}).
		Where("id = ?", billID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AppendBillOperation inserts one audit entry for a bill
func (r *ledgerRepository) AppendBillOperation(op *models.BillOperation) error {
	return r.db.Create(op).Error
}

// CreateRemainingPayment creates a new remaining payment record
func (r *ledgerRepository) CreateRemainingPayment(payment *models.RemainingPayment) error {
	return r.db.Create(payment).Error
}

// GetRemainingPaymentByID retrieves a remaining payment scoped to an apartment
func (r *ledgerRepository) GetRemainingPaymentByID(apartmentID, paymentID uint) (*models.RemainingPayment, error) {
	var payment models.RemainingPayment

	err := r.db.Where("id = ? AND apartment_id = ?", paymentID, apartmentID).First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// GetRemainingPaymentsByApartment retrieves all remaining payments of an apartment
func (r *ledgerRepository) GetRemainingPaymentsByApartment(apartmentID uint) ([]*models.RemainingPayment, error) {
	var payments []*models.RemainingPayment

	err := r.db.Where("apartment_id = ?", apartmentID).Order("id").Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// GetRemainingPaymentsByResident retrieves one resident's remaining payments
func (r *ledgerRepository) GetRemainingPaymentsByResident(apartmentID, residentID uint) ([]*models.RemainingPayment, error) {
	var payments []*models.RemainingPayment

	err := r.db.Where("apartment_id = ? AND resident_id = ?", apartmentID, residentID).
		Order("id").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

// SaveRemainingPayment saves changes to a remaining payment record
func (r *ledgerRepository) SaveRemainingPayment(payment *models.RemainingPayment) error {
	return r.db.Save(payment).Error
}

// SumRemainingPaymentsByStatus sums an apartment's remaining payment
// amounts with the given status.
func (r *ledgerRepository) SumRemainingPaymentsByStatus(apartmentID uint, status models.RemainingPaymentStatus) (int64, error) {
	var total int64

	err := r.db.Model(&models.RemainingPayment{}).
		Where("apartment_id = ? AND status = ?", apartmentID, status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}

	return total, nil
}
