// internal/service/report/report_service.go
package report

import (
	"context"

	"rentaldesk-service/internal/domain/reservation"

	"go.uber.org/zap"
)

type ReportService struct {
	reservationRepo reservation.Repository
	logger          *zap.Logger
}

func NewReportService(reservationRepo reservation.Repository, logger *zap.Logger) *ReportService {
	return &ReportService{
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// VehicleUsage aggregates reservation counts, rented hours and distance per
// vehicle
func (s *ReportService) VehicleUsage(ctx context.Context) ([]reservation.VehicleUsage, error) {
	return s.reservationRepo.UsageReport(ctx)
}

// LocationUsage aggregates reservation counts and revenue per pickup location
func (s *ReportService) LocationUsage(ctx context.Context) ([]reservation.LocationUsage, error) {
	return s.reservationRepo.LocationReport(ctx)
}
