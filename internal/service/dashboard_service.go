package service

import (
	"errors"
	"fmt"

	"syndic-be-svc/internal/models"
	"syndic-be-svc/internal/models/response"
	"syndic-be-svc/internal/repository"
	"syndic-be-svc/pkg/logger"

	"gorm.io/gorm"
)

// DashboardService defines the interface for aggregate reporting
type DashboardService interface {
	GetApartmentDashboard(apartmentID uint) (*response.ApartmentDashboardResponse, error)
}

// dashboardService implements DashboardService
type dashboardService struct {
	store  repository.Store
	logger *logger.Logger
}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(store repository.Store, logger *logger.Logger) DashboardService {
	return &dashboardService{
		store:  store,
		logger: logger,
	}
}

// GetApartmentDashboard aggregates an apartment's financial position:
// collected balance, bill counts and totals per status, and the
// outstanding and pending remaining amounts.
func (s *dashboardService) GetApartmentDashboard(apartmentID uint) (*response.ApartmentDashboardResponse, error) {
	apartment, err := s.store.Apartments().GetApartmentByID(apartmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, fmt.Errorf("failed to get apartment: %w", err)
	}

	ledger := s.store.Ledger()

	unpaidCount, err := ledger.CountBillsByStatus(apartmentID, models.BillStatusUnpaid)
	if err != nil {
		return nil, fmt.Errorf("failed to count unpaid bills: %w", err)
	}
	pendingCount, err := ledger.CountBillsByStatus(apartmentID, models.BillStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending bills: %w", err)
	}
	paidCount, err := ledger.CountBillsByStatus(apartmentID, models.BillStatusPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to count paid bills: %w", err)
	}

	unpaidTotal, err := ledger.SumBillAmountsByStatus(apartmentID, models.BillStatusUnpaid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum unpaid bills: %w", err)
	}
	pendingTotal, err := ledger.SumBillAmountsByStatus(apartmentID, models.BillStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending bills: %w", err)
	}

	remainingTotal, err := s.store.Residents().SumRemainingAmounts(apartmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum remaining amounts: %w", err)
	}
	pendingRemaining, err := ledger.SumRemainingPaymentsByStatus(apartmentID, models.RemainingPaymentPending)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending remaining payments: %w", err)
	}

	return &response.ApartmentDashboardResponse{
		ApartmentID:       apartment.ID,
		ApartmentName:     apartment.Name,
		ActualBalance:     apartment.ActualBalance,
		NumberOfResidents: apartment.NumberOfResidents,
		BillCounts: response.BillStatusCounts{
			Unpaid:  unpaidCount,
			Pending: pendingCount,
			Paid:    paidCount,
		},
		UnpaidBillTotal:       unpaidTotal,
		PendingBillTotal:      pendingTotal,
		TotalRemainingAmount:  remainingTotal,
		PendingRemainingTotal: pendingRemaining,
	}, nil
}
