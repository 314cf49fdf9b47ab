package service

import (
	"errors"
	"testing"
)

func TestCreateApartment(t *testing.T) {
	store := newMemStore()
	svc := NewApartmentService(store, testLogger())

	apartment, err := svc.CreateApartment(" Les Lilas ")
	if err != nil {
		t.Fatalf("CreateApartment() error = %v", err)
	}
	if apartment.Name != "Les Lilas" {
		t.Errorf("name = %q, want trimmed %q", apartment.Name, "Les Lilas")
	}
	if len(apartment.JoinCode) != 8 {
		t.Errorf("join code %q, want 8 characters", apartment.JoinCode)
	}
	if apartment.ActualBalance != 0 {
		t.Errorf("new apartment balance = %d, want 0", apartment.ActualBalance)
	}

	if _, err := svc.CreateApartment("   "); err == nil {
		t.Error("blank name accepted")
	}

	// Join codes are looked up case insensitively
	found, err := svc.GetApartmentByJoinCode(" " + apartment.JoinCode + " ")
	if err != nil {
		t.Fatalf("GetApartmentByJoinCode() error = %v", err)
	}
	if found.ID != apartment.ID {
		t.Errorf("lookup returned apartment %d, want %d", found.ID, apartment.ID)
	}

	if _, err := svc.GetApartmentByJoinCode("NOPE0000"); !errors.Is(err, ErrApartmentNotFound) {
		t.Errorf("unknown join code error = %v, want ErrApartmentNotFound", err)
	}
	if _, err := svc.GetApartmentByID(42); !errors.Is(err, ErrApartmentNotFound) {
		t.Errorf("unknown id error = %v, want ErrApartmentNotFound", err)
	}
}
