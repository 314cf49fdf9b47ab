package scheduler

import (
	"errors"
	"fmt"

	"syndic-be-svc/internal/models"
	"syndic-be-svc/internal/repository"
	"syndic-be-svc/internal/service"
	"syndic-be-svc/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// BillingScheduler creates every apartment's monthly bill batch on a
// cron schedule.
type BillingScheduler struct {
	ledgerService  service.LedgerService
	store          repository.Store
	logger         *logger.Logger
	cron           *cron.Cron
	cronExpression string
}

// NewBillingScheduler creates a new billing scheduler
func NewBillingScheduler(ledgerService service.LedgerService, store repository.Store, logger *logger.Logger, cronExpression string) *BillingScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &BillingScheduler{
		ledgerService:  ledgerService,
		store:          store,
		logger:         logger,
		cron:           c,
		cronExpression: cronExpression,
	}
}

// Start initializes and starts all scheduled jobs
func (s *BillingScheduler) Start() error {
	s.logger.Info("Starting billing scheduler...")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling billing job")
	_, err := s.cron.AddFunc(s.cronExpression, s.createMonthlyBills)
	if err != nil {
		return fmt.Errorf("failed to schedule monthly billing job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Billing scheduler started successfully")

	return nil
}

// Stop gracefully stops the scheduler
func (s *BillingScheduler) Stop() {
	s.logger.Info("Stopping billing scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Billing scheduler stopped successfully")
}

// createMonthlyBills is the scheduled job that creates the month's bills
// for every apartment. Per-apartment failures are logged and skipped so
// one apartment cannot block the others; an apartment whose batch already
// exists for the month is counted as skipped, not failed.
func (s *BillingScheduler) createMonthlyBills() {
	jobCode := "MONTHLY_BILL_CREATION"
	runID := uuid.New().String()

	s.logScheduler(jobCode, runID, "Starting scheduled monthly bill creation", "START")
	s.logger.Info("Starting scheduled monthly bill creation...")

	apartments, err := s.store.Apartments().GetAllApartments()
	if err != nil {
		s.logScheduler(jobCode, runID, fmt.Sprintf("Failed to list apartments: %v", err), "FAILED")
		s.logger.WithError(err).Error("Failed to list apartments")
		return
	}

	created, skipped, failed := 0, 0, 0
	for _, apartment := range apartments {
		responsibleID, err := s.syndicIDFor(apartment.ID)
		if err != nil {
			failed++
			s.logger.WithError(err).WithField("apartment_id", apartment.ID).Error("Failed to resolve syndic")
			continue
		}

		_, err = s.ledgerService.CreateMonthlyBills(apartment.ID, responsibleID)
		switch {
		case err == nil:
			created++
		case errors.Is(err, service.ErrBillingPeriodExists), errors.Is(err, service.ErrNoResidents):
			skipped++
		default:
			failed++
			s.logger.WithError(err).WithField("apartment_id", apartment.ID).Error("Failed to create monthly bills")
		}
	}

	summary := fmt.Sprintf("Monthly bill creation finished: %d created, %d skipped, %d failed", created, skipped, failed)
	status := "SUCCESS"
	if failed > 0 {
		status = "PARTIAL"
	}
	s.logScheduler(jobCode, runID, summary, status)

	s.logger.WithFields(map[string]interface{}{
		"created": created,
		"skipped": skipped,
		"failed":  failed,
	}).Info("Scheduled monthly bill creation completed")
}

// syndicIDFor returns the id of the apartment's syndic resident
func (s *BillingScheduler) syndicIDFor(apartmentID uint) (uint, error) {
	residents, err := s.store.Residents().GetResidentsByApartment(apartmentID)
	if err != nil {
		return 0, err
	}
	for _, resident := range residents {
		if resident.IsSyndic {
			return resident.ID, nil
		}
	}
	return 0, fmt.Errorf("apartment %d has no syndic", apartmentID)
}

// logScheduler creates a new log entry in the database
func (s *BillingScheduler) logScheduler(jobCode, runID, message, status string) {
	logEntry := &models.SchedulerLog{
		DocumentID: runID,
		JobCode:    jobCode,
		Message:    message,
		Status:     status,
	}

	if err := s.store.SchedulerLogs().CreateSchedulerLog(logEntry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
	}
}
