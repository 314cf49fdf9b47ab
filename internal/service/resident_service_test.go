package service

import (
	"errors"
	"testing"

	"syndic-be-svc/internal/models"
)

func newResidentFixture() (ResidentService, *memStore) {
	store := newMemStore()
	return NewResidentService(store, testLogger()), store
}

func TestCreateResident(t *testing.T) {
	svc, store := newResidentFixture()
	apartment := store.addApartment(&models.Apartment{Name: "Les Lilas", JoinCode: "ABCD1234"})

	resident, err := svc.CreateResident(apartment.ID, "  Alice ", 500, true)
	if err != nil {
		t.Fatalf("CreateResident() error = %v", err)
	}
	if resident.Name != "Alice" {
		t.Errorf("name = %q, want trimmed %q", resident.Name, "Alice")
	}
	if !resident.IsSyndic {
		t.Error("syndic flag lost")
	}
	if got := store.apartments[apartment.ID].NumberOfResidents; got != 1 {
		t.Errorf("resident count = %d, want 1", got)
	}

	if _, err := svc.CreateResident(apartment.ID, "Bob", 300, false); err != nil {
		t.Fatalf("second CreateResident() error = %v", err)
	}
	if got := store.apartments[apartment.ID].NumberOfResidents; got != 2 {
		t.Errorf("resident count = %d, want 2", got)
	}
}

func TestCreateResidentValidation(t *testing.T) {
	svc, store := newResidentFixture()
	apartment := store.addApartment(&models.Apartment{Name: "Les Lilas", JoinCode: "ABCD1234"})

	if _, err := svc.CreateResident(apartment.ID, "   ", 100, false); err == nil {
		t.Error("blank name accepted")
	}
	if _, err := svc.CreateResident(apartment.ID, "Alice", -1, false); err == nil {
		t.Error("negative fee accepted")
	}
	if _, err := svc.CreateResident(42, "Alice", 100, false); !errors.Is(err, ErrApartmentNotFound) {
		t.Errorf("unknown apartment error = %v, want ErrApartmentNotFound", err)
	}
}

func TestUpdateResidentKeepsRemainingAmount(t *testing.T) {
	svc, store := newResidentFixture()
	apartment := store.addApartment(&models.Apartment{Name: "Les Lilas", JoinCode: "ABCD1234"})
	resident := store.addResident(&models.Resident{ApartmentID: apartment.ID, Name: "Alice", MonthlyFee: 500, RemainingAmount: 750})

	updated, err := svc.UpdateResident(resident.ID, "Alice Martin", 600, true)
	if err != nil {
		t.Fatalf("UpdateResident() error = %v", err)
	}
	if updated.Name != "Alice Martin" || updated.MonthlyFee != 600 || !updated.IsSyndic {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if got := store.residents[resident.ID].RemainingAmount; got != 750 {
		t.Errorf("remaining amount changed by update: %d, want 750", got)
	}

	if _, err := svc.UpdateResident(42, "Nobody", 100, false); !errors.Is(err, ErrResidentNotFound) {
		t.Errorf("unknown resident error = %v, want ErrResidentNotFound", err)
	}
}
