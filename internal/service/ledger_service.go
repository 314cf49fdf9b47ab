package service

import (
	"errors"
	"fmt"
	"time"

	"syndic-be-svc/internal/models"
	"syndic-be-svc/internal/repository"
	"syndic-be-svc/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService defines the interface for bill and remaining-payment
// lifecycle operations. Every mutation runs in a single transaction so a
// status transition, its audit entry and the balance effects land
// together.
type LedgerService interface {
	CreateMonthlyBills(apartmentID, responsibleID uint) (*MonthlyBillsResponse, error)
	CreateMonthlyBillsForPeriod(apartmentID, responsibleID uint, period string) (*MonthlyBillsResponse, error)
	RequestPayment(apartmentID, residentID uint, period string) (*models.Bill, error)
	UpdateBillStatus(apartmentID, residentID uint, period string, newStatus models.BillStatus) (*models.Bill, error)
	GetApartmentBills(apartmentID uint) ([]*models.Bill, error)
	ExportApartmentBills(apartmentID uint) ([]byte, string, error)

	CreateRemainingPayment(apartmentID, residentID uint, amount int64, createdByID uint) (*models.RemainingPayment, error)
	CreateRemainingPaymentBySyndic(apartmentID, residentID uint, amount int64, createdByID uint) (*models.RemainingPayment, error)
	ValidateRemainingPayment(apartmentID, paymentID uint) (*models.RemainingPayment, error)
	GetApartmentRemainingPayments(apartmentID uint) ([]*models.RemainingPayment, error)
	GetResidentRemainingPayments(apartmentID, residentID uint) ([]*models.RemainingPayment, error)
}

// MonthlyBillsResponse represents the result of a monthly bill batch
type MonthlyBillsResponse struct {
	Period         string `json:"period"`
	TotalResidents int    `json:"total_residents"`
	TotalBills     int    `json:"total_bills"`
}

// ledgerService implements LedgerService
type ledgerService struct {
	store  repository.Store
	logger *logger.Logger
	now    func() time.Time
}

// NewLedgerService creates a new instance of LedgerService. The now
// function supplies period keys and audit timestamps; pass nil to use
// the wall clock.
func NewLedgerService(store repository.Store, logger *logger.Logger, now func() time.Time) LedgerService {
	if now == nil {
		now = time.Now
	}
	return &ledgerService{
		store:  store,
		logger: logger,
		now:    now,
	}
}

// CreateMonthlyBills creates the current month's bills for every resident
// of the apartment.
func (s *ledgerService) CreateMonthlyBills(apartmentID, responsibleID uint) (*MonthlyBillsResponse, error) {
	return s.CreateMonthlyBillsForPeriod(apartmentID, responsibleID, models.PeriodKey(s.now()))
}

// CreateMonthlyBillsForPeriod creates one unpaid bill per resident for the
// given billing period. The duplicate guard is month-wide: if any bill
// already exists for (apartment, period) the whole batch is rejected, so a
// partial earlier batch blocks re-creation rather than being topped up.
func (s *ledgerService) CreateMonthlyBillsForPeriod(apartmentID, responsibleID uint, period string) (*MonthlyBillsResponse, error) {
	if _, err := models.ParsePeriod(period); err != nil {
		return nil, err
	}

	opDate := models.OperationDate(s.now())
	var response *MonthlyBillsResponse

	err := s.store.Transaction(func(tx repository.Store) error {
		if _, err := tx.Apartments().GetApartmentByID(apartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApartmentNotFound
			}
			return fmt.Errorf("failed to get apartment: %w", err)
		}

		count, err := tx.Ledger().CountBillsForPeriod(apartmentID, period)
		if err != nil {
			return fmt.Errorf("failed to check billing period: %w", err)
		}
		if count > 0 {
			return ErrBillingPeriodExists
		}

		residents, err := tx.Residents().GetResidentsByApartment(apartmentID)
		if err != nil {
			return fmt.Errorf("failed to get residents: %w", err)
		}
		if len(residents) == 0 {
			return ErrNoResidents
		}

		bills := make([]*models.Bill, 0, len(residents))
		for _, resident := range residents {
			bills = append(bills, &models.Bill{
				ApartmentID:   apartmentID,
				ResidentID:    resident.ID,
				ResponsibleID: responsibleID,
				Status:        models.BillStatusUnpaid,
				Amount:        resident.MonthlyFee,
				Period:        period,
				Operations: []models.BillOperation{
					{Date: opDate, Operation: models.OperationCreation},
				},
			})
		}

		if err := tx.Ledger().CreateBills(bills); err != nil {
			return fmt.Errorf("failed to create bills: %w", err)
		}

		response = &MonthlyBillsResponse{
			Period:         period,
			TotalResidents: len(residents),
			TotalBills:     len(bills),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"apartment_id": apartmentID,
		"period":       response.Period,
		"total_bills":  response.TotalBills,
	}).Info("Monthly bills created successfully")

	return response, nil
}

// RequestPayment moves a resident's unpaid bill into pending and appends a
// request_payment entry. The transition is guarded: a bill that is already
// pending or paid cannot be re-requested.
func (s *ledgerService) RequestPayment(apartmentID, residentID uint, period string) (*models.Bill, error) {
	var updated *models.Bill

	err := s.store.Transaction(func(tx repository.Store) error {
		bill, err := tx.Ledger().GetBillByKey(apartmentID, residentID, period)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBillNotFound
			}
			return fmt.Errorf("failed to get bill: %w", err)
		}

		if bill.Status != models.BillStatusUnpaid {
			return ErrBillNotRequestable
		}

		if err := tx.Ledger().UpdateBillStatus(bill.ID, models.BillStatusPending); err != nil {
			return fmt.Errorf("failed to update bill status: %w", err)
		}

		op := &models.BillOperation{
			BillID:    bill.ID,
			Date:      models.OperationDate(s.now()),
			Operation: models.OperationRequestPayment,
		}
		if err := tx.Ledger().AppendBillOperation(op); err != nil {
			return fmt.Errorf("failed to append bill operation: %w", err)
		}

		bill.Status = models.BillStatusPending
		bill.Operations = append(bill.Operations, *op)
		updated = bill
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"apartment_id": apartmentID,
		"resident_id":  residentID,
		"period":       period,
	}).Info("Payment requested for bill")

	return updated, nil
}

// UpdateBillStatus is the syndic's status override. Every accepted call
// appends exactly one audit entry. The apartment balance is incremented by
// the bill amount if and only if the bill enters paid from a non-paid
// status, so re-confirming an already paid bill never double counts.
func (s *ledgerService) UpdateBillStatus(apartmentID, residentID uint, period string, newStatus models.BillStatus) (*models.Bill, error) {
	var updated *models.Bill

	err := s.store.Transaction(func(tx repository.Store) error {
		bill, err := tx.Ledger().GetBillByKey(apartmentID, residentID, period)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBillNotFound
			}
			return fmt.Errorf("failed to get bill: %w", err)
		}

		wasPaid := bill.Status == models.BillStatusPaid

		if err := tx.Ledger().UpdateBillStatus(bill.ID, newStatus); err != nil {
			return fmt.Errorf("failed to update bill status: %w", err)
		}

		op := &models.BillOperation{
			BillID:    bill.ID,
			Date:      models.OperationDate(s.now()),
			Operation: models.OperationForStatus(newStatus),
		}
		if err := tx.Ledger().AppendBillOperation(op); err != nil {
			return fmt.Errorf("failed to append bill operation: %w", err)
		}

		if newStatus == models.BillStatusPaid && !wasPaid {
			if err := tx.Apartments().IncrementActualBalance(apartmentID, bill.Amount); err != nil {
				return fmt.Errorf("failed to update apartment balance: %w", err)
			}
		}

		bill.Status = newStatus
		bill.Operations = append(bill.Operations, *op)
		updated = bill
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"apartment_id": apartmentID,
		"resident_id":  residentID,
		"period":       period,
		"status":       newStatus,
	}).Info("Bill status updated")

	return updated, nil
}

// GetApartmentBills retrieves all bills of an apartment. An apartment
// without any bills yields an empty list, not an error.
func (s *ledgerService) GetApartmentBills(apartmentID uint) ([]*models.Bill, error) {
	bills, err := s.store.Ledger().GetBillsByApartment(apartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills: %w", err)
	}
	if bills == nil {
		bills = []*models.Bill{}
	}
	return bills, nil
}

// CreateRemainingPayment is the resident-initiated creation path: the
// payment starts pending and the resident's remaining amount is reserved
// immediately, before any syndic confirmation.
func (s *ledgerService) CreateRemainingPayment(apartmentID, residentID uint, amount int64, createdByID uint) (*models.RemainingPayment, error) {
	return s.createRemainingPayment(apartmentID, residentID, amount, createdByID, false)
}

// CreateRemainingPaymentBySyndic is the syndic-initiated creation path:
// the payment is paid at creation and the apartment balance is
// incremented in the same call.
func (s *ledgerService) CreateRemainingPaymentBySyndic(apartmentID, residentID uint, amount int64, createdByID uint) (*models.RemainingPayment, error) {
	return s.createRemainingPayment(apartmentID, residentID, amount, createdByID, true)
}

func (s *ledgerService) createRemainingPayment(apartmentID, residentID uint, amount int64, createdByID uint, bySyndic bool) (*models.RemainingPayment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	now := s.now()
	var payment *models.RemainingPayment

	err := s.store.Transaction(func(tx repository.Store) error {
		if _, err := tx.Apartments().GetApartmentByID(apartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrApartmentNotFound
			}
			return fmt.Errorf("failed to get apartment: %w", err)
		}

		// Read the resident fresh; the cap is against the current value,
		// not whatever the caller last saw.
		resident, err := tx.Residents().GetResidentByID(residentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrResidentNotFound
			}
			return fmt.Errorf("failed to get resident: %w", err)
		}
		if resident.ApartmentID != apartmentID {
			return ErrResidentNotFound
		}

		if amount > resident.RemainingAmount {
			return ErrAmountExceedsRemaining
		}

		if err := tx.Residents().DecrementRemainingAmount(residentID, amount); err != nil {
			if errors.Is(err, repository.ErrInsufficientRemainingAmount) {
				return ErrAmountExceedsRemaining
			}
			return fmt.Errorf("failed to decrement remaining amount: %w", err)
		}

		payment = &models.RemainingPayment{
			DocumentID:   uuid.New().String(),
			ApartmentID:  apartmentID,
			ResidentID:   residentID,
			ResidentName: resident.Name,
			Amount:       amount,
			Status:       models.RemainingPaymentPending,
			CreatedByID:  createdByID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if bySyndic {
			paidAt := now
			payment.Status = models.RemainingPaymentPaid
			payment.PaidAt = &paidAt
		}

		if err := tx.Ledger().CreateRemainingPayment(payment); err != nil {
			return fmt.Errorf("failed to create remaining payment: %w", err)
		}

		if bySyndic {
			if err := tx.Apartments().IncrementActualBalance(apartmentID, amount); err != nil {
				return fmt.Errorf("failed to update apartment balance: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"apartment_id": apartmentID,
		"resident_id":  residentID,
		"amount":       amount,
		"by_syndic":    bySyndic,
	}).Info("Remaining payment created")

	return payment, nil
}

// ValidateRemainingPayment settles a pending payment. This is the only
// path by which a resident-initiated remaining payment reaches the
// apartment balance; the resident's remaining amount was already deducted
// at creation. Validating an already paid payment fails instead of
// silently succeeding.
func (s *ledgerService) ValidateRemainingPayment(apartmentID, paymentID uint) (*models.RemainingPayment, error) {
	now := s.now()
	var payment *models.RemainingPayment

	err := s.store.Transaction(func(tx repository.Store) error {
		p, err := tx.Ledger().GetRemainingPaymentByID(apartmentID, paymentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("failed to get remaining payment: %w", err)
		}

		if p.Status == models.RemainingPaymentPaid {
			return ErrPaymentAlreadyPaid
		}

		paidAt := now
		p.Status = models.RemainingPaymentPaid
		p.UpdatedAt = now
		p.PaidAt = &paidAt

		if err := tx.Ledger().SaveRemainingPayment(p); err != nil {
			return fmt.Errorf("failed to save remaining payment: %w", err)
		}

		if err := tx.Apartments().IncrementActualBalance(apartmentID, p.Amount); err != nil {
			return fmt.Errorf("failed to update apartment balance: %w", err)
		}

		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"apartment_id": apartmentID,
		"payment_id":   paymentID,
		"amount":       payment.Amount,
	}).Info("Remaining payment validated")

	return payment, nil
}

// GetApartmentRemainingPayments retrieves all remaining payments of an apartment
func (s *ledgerService) GetApartmentRemainingPayments(apartmentID uint) ([]*models.RemainingPayment, error) {
	payments, err := s.store.Ledger().GetRemainingPaymentsByApartment(apartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get remaining payments: %w", err)
	}
	if payments == nil {
		payments = []*models.RemainingPayment{}
	}
	return payments, nil
}

// GetResidentRemainingPayments retrieves one resident's remaining payments
func (s *ledgerService) GetResidentRemainingPayments(apartmentID, residentID uint) ([]*models.RemainingPayment, error) {
	payments, err := s.store.Ledger().GetRemainingPaymentsByResident(apartmentID, residentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get remaining payments: %w", err)
	}
	if payments == nil {
		payments = []*models.RemainingPayment{}
	}
	return payments, nil
}
