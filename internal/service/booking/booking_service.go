// internal/service/booking/booking_service.go
package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"rentaldesk-service/internal/domain/reservation"
	"rentaldesk-service/internal/domain/vehicle"
	xerrors "rentaldesk-service/internal/pkg/errors"
	"rentaldesk-service/internal/service/availability"
	"rentaldesk-service/internal/service/customer"
	"rentaldesk-service/internal/service/pricing"
	"rentaldesk-service/internal/ws"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// BookingService runs the reservation lifecycle: create, extend, damage
// capture and finalization at return.
//
// Create and Extend serialize on a mutex. The conflict check and the write
// are separate repository calls, and two concurrent bookings for the same
// interval must not both pass the check.
type BookingService struct {
	vehicleRepo     vehicle.Repository
	reservationRepo reservation.Repository
	customers       *customer.CustomerService
	checker         *availability.Checker
	calculator      *pricing.Calculator
	events          ws.Publisher
	logger          *zap.Logger

	mu sync.Mutex
}

func NewBookingService(
	vehicleRepo vehicle.Repository,
	reservationRepo reservation.Repository,
	customers *customer.CustomerService,
	checker *availability.Checker,
	calculator *pricing.Calculator,
	events ws.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		vehicleRepo:     vehicleRepo,
		reservationRepo: reservationRepo,
		customers:       customers,
		checker:         checker,
		calculator:      calculator,
		events:          events,
		logger:          logger,
	}
}

// CreateInput is the parsed booking form.
type CreateInput struct {
	VehicleID      int64
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	DriverFlag     bool
	DriversLicense *string
	Start          time.Time
	End            time.Time
	Location       string
}

func newReference() string {
	return "RES-" + ulid.Make().String()
}

// Create books a vehicle for a walk-up customer. The reservation and its
// pending estimate payment are written together.
func (s *BookingService) Create(ctx context.Context, in CreateInput) (*reservation.CreateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checker.EnsureBookable(ctx, in.VehicleID, in.Start, in.End, nil); err != nil {
		return nil, err
	}

	v, err := s.vehicleRepo.FindByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}

	cust, err := s.customers.Resolve(ctx, customer.ResolveInput{
		Name:           in.CustomerName,
		Phone:          in.CustomerPhone,
		Email:          in.CustomerEmail,
		DriversLicense: in.DriversLicense,
	})
	if err != nil {
		return nil, err
	}

	quote := s.calculator.Price(v.DailyRate, in.Start, in.End, in.DriverFlag)

	res := &reservation.Reservation{
		Reference:  newReference(),
		VehicleID:  v.ID,
		CustomerID: cust.ID,
		DriverFlag: in.DriverFlag,
		StartAt:    in.Start,
		EndAt:      in.End,
		Location:   in.Location,
		DriverFee:  quote.DriverFee,
		TotalCost:  quote.Total,
		Status:     reservation.StatusActive,
	}
	payment := &reservation.Payment{
		Amount: quote.Total,
		Status: reservation.PaymentPending,
		Method: reservation.MethodEstimate,
	}

	if err := s.reservationRepo.CreateWithPayment(ctx, res, payment); err != nil {
		s.logger.Error("failed to create reservation", zap.Error(err))
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.logger.Info("reservation created",
		zap.Int64("reservation_id", res.ID),
		zap.String("reference", res.Reference),
		zap.Int64("vehicle_id", v.ID),
		zap.Int64("customer_id", cust.ID),
		zap.Float64("total_cost", quote.Total),
	)
	s.events.Publish("reservation.created", res)

	return &reservation.CreateResult{
		ReservationID: res.ID,
		Reference:     res.Reference,
		TotalCost:     quote.Total,
		DriverFee:     quote.DriverFee,
	}, nil
}

// Extend moves the end of an active reservation. The start never moves, the
// reservation's own interval is excluded from the conflict check, and the
// charges are recomputed from scratch over the widened interval.
func (s *BookingService) Extend(ctx context.Context, id int64, newEnd time.Time) (*reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != reservation.StatusActive {
		return nil, xerrors.ErrValidation
	}

	if err := s.checker.EnsureBookable(ctx, res.VehicleID, res.StartAt, newEnd, &res.ID); err != nil {
		return nil, err
	}

	v, err := s.vehicleRepo.FindByID(ctx, res.VehicleID)
	if err != nil {
		return nil, err
	}

	quote := s.calculator.Price(v.DailyRate, res.StartAt, newEnd, res.DriverFlag)
	if err := s.reservationRepo.UpdateEndAndPayment(ctx, id, newEnd, quote.DriverFee, quote.Total); err != nil {
		s.logger.Error("failed to extend reservation", zap.Int64("reservation_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("reservation extended",
		zap.Int64("reservation_id", id),
		zap.Time("new_end", newEnd),
		zap.Float64("total_cost", quote.Total),
	)

	updated, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Publish("reservation.extended", updated)
	return updated, nil
}

// AddDamage appends a damage charge to a reservation. The append is gated on
// existence only: a charge found after the return is processed still records,
// it just sits on the record without reopening the settled payment. Charges on
// an active reservation are folded into the total at finalization.
func (s *BookingService) AddDamage(ctx context.Context, id int64, req *reservation.AddDamageRequest) (*reservation.DamageRecord, error) {
	res, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Cost < 0 {
		return nil, xerrors.ErrValidation
	}

	d := &reservation.DamageRecord{
		ReservationID: res.ID,
		Condition:     req.Condition,
		Cost:          req.Cost,
		Notes:         req.Notes,
	}
	if err := s.reservationRepo.AddDamage(ctx, d); err != nil {
		s.logger.Error("failed to add damage record", zap.Int64("reservation_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("damage recorded",
		zap.Int64("reservation_id", id),
		zap.Float64("damage_cost", d.Cost),
	)
	return d, nil
}

// Finalize closes out a reservation at vehicle return. The final total is the
// current estimate plus the sum of damage charges; the payment settles and
// the vehicle goes back on the road.
func (s *BookingService) Finalize(ctx context.Context, id int64, distanceKM float64) (*reservation.FinalizeResult, error) {
	res, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != reservation.StatusActive {
		return nil, xerrors.ErrValidation
	}
	if distanceKM < 0 {
		return nil, xerrors.ErrValidation
	}

	damageTotal, err := s.reservationRepo.DamageTotal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to sum damage charges: %w", err)
	}

	finalTotal := res.TotalCost + damageTotal
	if err := s.reservationRepo.FinalizeReturn(ctx, id, finalTotal, distanceKM); err != nil {
		s.logger.Error("failed to finalize reservation", zap.Int64("reservation_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("reservation finalized",
		zap.Int64("reservation_id", id),
		zap.Float64("final_total", finalTotal),
		zap.Float64("distance_km", distanceKM),
	)
	s.events.Publish("reservation.finalized", map[string]any{
		"reservation_id": id,
		"final_total":    finalTotal,
	})

	return &reservation.FinalizeResult{
		BaseCost:    res.TotalCost,
		DamageTotal: damageTotal,
		FinalTotal:  finalTotal,
	}, nil
}

// CheckAvailability answers the desk's probe for one vehicle and interval.
func (s *BookingService) CheckAvailability(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	return s.checker.IsBookable(ctx, vehicleID, start, end, nil)
}

// GetReservation retrieves a reservation by ID
func (s *BookingService) GetReservation(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return s.reservationRepo.FindByID(ctx, id)
}

// GetDetails retrieves the joined return-desk view
func (s *BookingService) GetDetails(ctx context.Context, id int64) (*reservation.Details, error) {
	return s.reservationRepo.Details(ctx, id)
}

// ListActive retrieves the active reservation board
func (s *BookingService) ListActive(ctx context.Context) ([]reservation.Summary, error) {
	return s.reservationRepo.ListActive(ctx)
}

// ListForDay retrieves the reservations touching one calendar day
func (s *BookingService) ListForDay(ctx context.Context, day time.Time) ([]reservation.Summary, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.reservationRepo.ListForWindow(ctx, dayStart, dayStart.AddDate(0, 0, 1))
}

// DateRanges retrieves the intervals backing the booking calendar
func (s *BookingService) DateRanges(ctx context.Context) ([]reservation.DateRange, error) {
	return s.reservationRepo.ActiveDateRanges(ctx)
}

// ListDamage retrieves the damage records of a reservation
func (s *BookingService) ListDamage(ctx context.Context, id int64) ([]reservation.DamageRecord, error) {
	if _, err := s.reservationRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.reservationRepo.ListDamage(ctx, id)
}

// GetPayment retrieves the payment row of a reservation
func (s *BookingService) GetPayment(ctx context.Context, id int64) (*reservation.Payment, error) {
	return s.reservationRepo.FindPayment(ctx, id)
}
