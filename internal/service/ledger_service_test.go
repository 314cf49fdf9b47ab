package service

import (
	"errors"
	"testing"
	"time"

	"syndic-be-svc/internal/models"
	"syndic-be-svc/pkg/logger"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
}

func testLogger() *logger.Logger {
	return logger.NewLogger("fatal", "text")
}

func newLedgerFixture() (LedgerService, *memStore) {
	store := newMemStore()
	return NewLedgerService(store, testLogger(), fixedClock()), store
}

func seedApartment(store *memStore) *models.Apartment {
	return store.addApartment(&models.Apartment{Name: "Les Lilas", JoinCode: "ABCD1234"})
}

func TestCreateMonthlyBillsForPeriod(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	alice := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", MonthlyFee: 500})
	bob := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Bob", MonthlyFee: 300})

	resp, err := svc.CreateMonthlyBillsForPeriod(apartment.ID, 99, "03-2025")
	if err != nil {
		t.Fatalf("CreateMonthlyBillsForPeriod() error = %v", err)
	}
	if resp.Period != "03-2025" || resp.TotalResidents != 2 || resp.TotalBills != 2 {
		t.Errorf("unexpected batch response: %+v", resp)
	}

	for _, tc := range []struct {
		residentID uint
		amount     int64
	}{
		{alice.ID, 500},
		{bob.ID, 300},
	} {
		bill, err := store.Ledger().GetBillByKey(apartment.ID, tc.residentID, "03-2025")
		if err != nil {
			t.Fatalf("bill for resident %d not created: %v", tc.residentID, err)
		}
		if bill.Status != models.BillStatusUnpaid {
			t.Errorf("new bill status = %q, want %q", bill.Status, models.BillStatusUnpaid)
		}
		if bill.Amount != tc.amount {
			t.Errorf("bill amount = %d, want %d", bill.Amount, tc.amount)
		}
		if bill.ResponsibleID != 99 {
			t.Errorf("bill responsible = %d, want 99", bill.ResponsibleID)
		}
		if len(bill.Operations) != 1 {
			t.Fatalf("new bill has %d operations, want 1", len(bill.Operations))
		}
		op := bill.Operations[0]
		if op.Operation != models.OperationCreation {
			t.Errorf("first operation = %q, want %q", op.Operation, models.OperationCreation)
		}
		if op.Date != "15-03-2025" {
			t.Errorf("operation date = %q, want %q", op.Date, "15-03-2025")
		}
	}

	if store.apartments[apartment.ID].ActualBalance != 0 {
		t.Errorf("balance changed on bill creation: %d", store.apartments[apartment.ID].ActualBalance)
	}
}

func TestCreateMonthlyBillsForPeriodDuplicateMonth(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", MonthlyFee: 500})

	if _, err := svc.CreateMonthlyBillsForPeriod(apartment.ID, 1, "03-2025"); err != nil {
		t.Fatalf("first batch failed: %v", err)
	}

	// New resident joins; a second batch for the same month is still rejected
	store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Bob", MonthlyFee: 300})

	if _, err := svc.CreateMonthlyBillsForPeriod(apartment.ID, 1, "03-2025"); !errors.Is(err, ErrBillingPeriodExists) {
		t.Fatalf("duplicate batch error = %v, want ErrBillingPeriodExists", err)
	}
	if count, _ := store.Ledger().CountBillsForPeriod(apartment.ID, "03-2025"); count != 1 {
		t.Errorf("bill count after rejected batch = %d, want 1", count)
	}

	// A different month is a disjoint set and goes through
	if _, err := svc.CreateMonthlyBillsForPeriod(apartment.ID, 1, "04-2025"); err != nil {
		t.Fatalf("next month batch failed: %v", err)
	}
	if count, _ := store.Ledger().CountBillsForPeriod(apartment.ID, "04-2025"); count != 2 {
		t.Errorf("bill count for next month = %d, want 2", count)
	}
}

func TestCreateMonthlyBillsForPeriodErrors(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)

	tests := []struct {
		name        string
		apartmentID uint
		period      string
		wantErr     error
	}{
		{"unknown apartment", 42, "03-2025", ErrApartmentNotFound},
		{"no residents", apartment.ID, "03-2025", ErrNoResidents},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateMonthlyBillsForPeriod(tt.apartmentID, 1, tt.period)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := svc.CreateMonthlyBillsForPeriod(apartment.ID, 1, "2025-03"); err == nil {
		t.Error("malformed period accepted")
	}
}

func TestCreateMonthlyBillsUsesCurrentPeriod(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	resident := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", MonthlyFee: 500})

	resp, err := svc.CreateMonthlyBills(apartment.ID, 1)
	if err != nil {
		t.Fatalf("CreateMonthlyBills() error = %v", err)
	}
	if resp.Period != "03-2025" {
		t.Errorf("period = %q, want clock month %q", resp.Period, "03-2025")
	}
	if _, err := store.Ledger().GetBillByKey(apartment.ID, resident.ID, "03-2025"); err != nil {
		t.Errorf("bill not keyed to clock month: %v", err)
	}
}

func TestRequestPayment(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	resident := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", MonthlyFee: 500})
	if _, err := svc.CreateMonthlyBillsForPeriod(apartment.ID, 1, "03-2025"); err != nil {
		t.Fatalf("seed batch failed: %v", err)
	}

	bill, err := svc.RequestPayment(apartment.ID, resident.ID, "03-2025")
	if err != nil {
		t.Fatalf("RequestPayment() error = %v", err)
	}
	if bill.Status != models.BillStatusPending {
		t.Errorf("status = %q, want %q", bill.Status, models.BillStatusPending)
	}
	if len(bill.Operations) != 2 {
		t.Fatalf("operation count = %d, want 2", len(bill.Operations))
	}
	if last := bill.Operations[1]; last.Operation != models.OperationRequestPayment {
		t.Errorf("last operation = %q, want %q", last.Operation, models.OperationRequestPayment)
	}

	// Already pending; the request is not repeatable
	if _, err := svc.RequestPayment(apartment.ID, resident.ID, "03-2025"); !errors.Is(err, ErrBillNotRequestable) {
		t.Errorf("repeat request error = %v, want ErrBillNotRequestable", err)
	}
	stored, _ := store.Ledger().GetBillByKey(apartment.ID, resident.ID, "03-2025")
	if len(stored.Operations) != 2 {
		t.Errorf("rejected request appended an operation: %d entries", len(stored.Operations))
	}

	if _, err := svc.RequestPayment(apartment.ID, resident.ID, "07-2025"); !errors.Is(err, ErrBillNotFound) {
		t.Errorf("missing bill error = %v, want ErrBillNotFound", err)
	}
}

func TestUpdateBillStatusPaysOnce(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	resident := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", MonthlyFee: 500})
	if _, err := svc.CreateMonthlyBillsForPeriod(apartment.ID, 1, "03-2025"); err != nil {
		t.Fatalf("seed batch failed: %v", err)
	}
	if _, err := svc.RequestPayment(apartment.ID, resident.ID, "03-2025"); err != nil {
		t.Fatalf("seed request failed: %v", err)
	}

	bill, err := svc.UpdateBillStatus(apartment.ID, resident.ID, "03-2025", models.BillStatusPaid)
	if err != nil {
		t.Fatalf("UpdateBillStatus() error = %v", err)
	}
	if bill.Status != models.BillStatusPaid {
		t.Errorf("status = %q, want %q", bill.Status, models.BillStatusPaid)
	}
	if last := bill.Operations[len(bill.Operations)-1]; last.Operation != models.OperationPaymentDone {
		t.Errorf("last operation = %q, want %q", last.Operation, models.OperationPaymentDone)
	}
	if got := store.apartments[apartment.ID].ActualBalance; got != 500 {
		t.Errorf("balance after payment = %d, want 500", got)
	}

	// Re-confirming an already paid bill appends an entry but never
	// double counts the amount
	bill, err = svc.UpdateBillStatus(apartment.ID, resident.ID, "03-2025", models.BillStatusPaid)
	if err != nil {
		t.Fatalf("repeat UpdateBillStatus() error = %v", err)
	}
	if len(bill.Operations) != 4 {
		t.Errorf("operation count after repeat = %d, want 4", len(bill.Operations))
	}
	if got := store.apartments[apartment.ID].ActualBalance; got != 500 {
		t.Errorf("balance after repeat payment = %d, want 500", got)
	}
}

func TestUpdateBillStatusRejection(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	resident := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", MonthlyFee: 500})
	if _, err := svc.CreateMonthlyBillsForPeriod(apartment.ID, 1, "03-2025"); err != nil {
		t.Fatalf("seed batch failed: %v", err)
	}
	if _, err := svc.RequestPayment(apartment.ID, resident.ID, "03-2025"); err != nil {
		t.Fatalf("seed request failed: %v", err)
	}

	bill, err := svc.UpdateBillStatus(apartment.ID, resident.ID, "03-2025", models.BillStatusUnpaid)
	if err != nil {
		t.Fatalf("UpdateBillStatus() error = %v", err)
	}
	if bill.Status != models.BillStatusUnpaid {
		t.Errorf("status = %q, want %q", bill.Status, models.BillStatusUnpaid)
	}
	if last := bill.Operations[len(bill.Operations)-1]; last.Operation != models.OperationPaymentRejected {
		t.Errorf("last operation = %q, want %q", last.Operation, models.OperationPaymentRejected)
	}
	if got := store.apartments[apartment.ID].ActualBalance; got != 0 {
		t.Errorf("balance after rejection = %d, want 0", got)
	}

	// The rejected bill can be requested again
	if _, err := svc.RequestPayment(apartment.ID, resident.ID, "03-2025"); err != nil {
		t.Errorf("re-request after rejection failed: %v", err)
	}
}

func TestUpdateBillStatusNotFound(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)

	_, err := svc.UpdateBillStatus(apartment.ID, 1, "03-2025", models.BillStatusPaid)
	if !errors.Is(err, ErrBillNotFound) {
		t.Errorf("error = %v, want ErrBillNotFound", err)
	}
}

func TestGetApartmentBillsEmpty(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)

	bills, err := svc.GetApartmentBills(apartment.ID)
	if err != nil {
		t.Fatalf("GetApartmentBills() error = %v", err)
	}
	if bills == nil || len(bills) != 0 {
		t.Errorf("bills = %v, want empty slice", bills)
	}
}

func TestCreateRemainingPaymentReservesAtCreation(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	resident := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", RemainingAmount: 1000})

	payment, err := svc.CreateRemainingPayment(apartment.ID, resident.ID, 400, 7)
	if err != nil {
		t.Fatalf("CreateRemainingPayment() error = %v", err)
	}
	if payment.Status != models.RemainingPaymentPending {
		t.Errorf("status = %q, want %q", payment.Status, models.RemainingPaymentPending)
	}
	if payment.ResidentName != "Alice" {
		t.Errorf("resident name snapshot = %q, want Alice", payment.ResidentName)
	}
	if payment.DocumentID == "" {
		t.Error("document id not assigned")
	}
	if payment.PaidAt != nil {
		t.Error("pending payment has PaidAt set")
	}

	// The amount is reserved immediately, before any validation
	if got := store.residents[resident.ID].RemainingAmount; got != 600 {
		t.Errorf("remaining amount after creation = %d, want 600", got)
	}
	if got := store.apartments[apartment.ID].ActualBalance; got != 0 {
		t.Errorf("balance before validation = %d, want 0", got)
	}

	validated, err := svc.ValidateRemainingPayment(apartment.ID, payment.ID)
	if err != nil {
		t.Fatalf("ValidateRemainingPayment() error = %v", err)
	}
	if validated.Status != models.RemainingPaymentPaid {
		t.Errorf("validated status = %q, want %q", validated.Status, models.RemainingPaymentPaid)
	}
	if validated.PaidAt == nil {
		t.Error("validated payment has no PaidAt")
	}
	if got := store.apartments[apartment.ID].ActualBalance; got != 400 {
		t.Errorf("balance after validation = %d, want 400", got)
	}
	// Validation does not touch the remaining amount a second time
	if got := store.residents[resident.ID].RemainingAmount; got != 600 {
		t.Errorf("remaining amount after validation = %d, want 600", got)
	}
}

func TestCreateRemainingPaymentBySyndic(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	resident := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Bob", RemainingAmount: 500})

	payment, err := svc.CreateRemainingPaymentBySyndic(apartment.ID, resident.ID, 250, 7)
	if err != nil {
		t.Fatalf("CreateRemainingPaymentBySyndic() error = %v", err)
	}
	if payment.Status != models.RemainingPaymentPaid {
		t.Errorf("status = %q, want %q", payment.Status, models.RemainingPaymentPaid)
	}
	if payment.PaidAt == nil {
		t.Error("syndic payment has no PaidAt")
	}
	if got := store.residents[resident.ID].RemainingAmount; got != 250 {
		t.Errorf("remaining amount = %d, want 250", got)
	}
	if got := store.apartments[apartment.ID].ActualBalance; got != 250 {
		t.Errorf("balance = %d, want 250", got)
	}

	// Already settled; validating it again must fail
	if _, err := svc.ValidateRemainingPayment(apartment.ID, payment.ID); !errors.Is(err, ErrPaymentAlreadyPaid) {
		t.Errorf("validate settled payment error = %v, want ErrPaymentAlreadyPaid", err)
	}
	if got := store.apartments[apartment.ID].ActualBalance; got != 250 {
		t.Errorf("balance after rejected validation = %d, want 250", got)
	}
}

func TestCreateRemainingPaymentValidation(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	other := store.addApartment(&models.Apartment{Name: "Autre", JoinCode: "ZZZZ9999"})
	resident := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", RemainingAmount: 300})

	tests := []struct {
		name        string
		apartmentID uint
		residentID  uint
		amount      int64
		wantErr     error
	}{
		{"zero amount", apartment.ID, resident.ID, 0, ErrInvalidAmount},
		{"negative amount", apartment.ID, resident.ID, -50, ErrInvalidAmount},
		{"amount above remaining", apartment.ID, resident.ID, 301, ErrAmountExceedsRemaining},
		{"unknown apartment", 42, resident.ID, 100, ErrApartmentNotFound},
		{"unknown resident", apartment.ID, 42, 100, ErrResidentNotFound},
		{"resident of another apartment", other.ID, resident.ID, 100, ErrResidentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateRemainingPayment(tt.apartmentID, tt.residentID, tt.amount, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// None of the rejected attempts touched any balance
	if got := store.residents[resident.ID].RemainingAmount; got != 300 {
		t.Errorf("remaining amount after rejections = %d, want 300", got)
	}
	if payments, _ := svc.GetApartmentRemainingPayments(apartment.ID); len(payments) != 0 {
		t.Errorf("payments recorded despite rejections: %d", len(payments))
	}
}

func TestValidateRemainingPaymentNotFound(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	other := store.addApartment(&models.Apartment{Name: "Autre", JoinCode: "ZZZZ9999"})
	resident := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", RemainingAmount: 500})

	payment, err := svc.CreateRemainingPayment(apartment.ID, resident.ID, 100, 1)
	if err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}

	// Wrong apartment scope does not reach another apartment's payment
	if _, err := svc.ValidateRemainingPayment(other.ID, payment.ID); !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("cross apartment validate error = %v, want ErrPaymentNotFound", err)
	}
	if _, err := svc.ValidateRemainingPayment(apartment.ID, 42); !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("unknown payment error = %v, want ErrPaymentNotFound", err)
	}
}

func TestGetResidentRemainingPayments(t *testing.T) {
	svc, store := newLedgerFixture()
	apartment := seedApartment(store)
	alice := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", RemainingAmount: 1000})
	bob := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Bob", RemainingAmount: 1000})

	if _, err := svc.CreateRemainingPayment(apartment.ID, alice.ID, 100, 1); err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}
	if _, err := svc.CreateRemainingPayment(apartment.ID, alice.ID, 200, 1); err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}
	if _, err := svc.CreateRemainingPayment(apartment.ID, bob.ID, 300, 1); err != nil {
		t.Fatalf("seed payment failed: %v", err)
	}

	payments, err := svc.GetResidentRemainingPayments(apartment.ID, alice.ID)
	if err != nil {
		t.Fatalf("GetResidentRemainingPayments() error = %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("payment count = %d, want 2", len(payments))
	}
	for _, p := range payments {
		if p.ResidentID != alice.ID {
			t.Errorf("payment for resident %d leaked into the list", p.ResidentID)
		}
	}

	all, err := svc.GetApartmentRemainingPayments(apartment.ID)
	if err != nil {
		t.Fatalf("GetApartmentRemainingPayments() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("apartment payment count = %d, want 3", len(all))
	}
}
