package memory

import (
	"context"
	"sort"
	"time"

	"rentaldesk-service/internal/domain/reservation"
	xerrors "rentaldesk-service/internal/pkg/errors"
)

type ReservationRepository struct {
	store *Store
}

func (r *ReservationRepository) CreateWithPayment(ctx context.Context, res *reservation.Reservation, p *reservation.Payment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextReservationID++
	res.ID = s.nextReservationID
	res.CreatedAt = time.Now()
	s.reservations[res.ID] = *res

	s.nextPaymentID++
	p.ID = s.nextPaymentID
	p.ReservationID = res.ID
	p.CreatedAt = time.Now()
	s.payments[p.ID] = *p
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &res, nil
}

func (r *ReservationRepository) ListActiveByVehicle(ctx context.Context, vehicleID int64, exclude *int64) ([]reservation.Reservation, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []reservation.Reservation
	for _, res := range s.reservations {
		if res.VehicleID != vehicleID || res.Status != reservation.StatusActive {
			continue
		}
		if exclude != nil && res.ID == *exclude {
			continue
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *ReservationRepository) HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, res := range s.reservations {
		if res.VehicleID == vehicleID && res.Status == reservation.StatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReservationRepository) UpdateEndAndPayment(ctx context.Context, id int64, newEnd time.Time, driverFee, totalCost float64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	res.EndAt = newEnd
	res.DriverFee = driverFee
	res.TotalCost = totalCost
	s.reservations[id] = res

	for pid, p := range s.payments {
		if p.ReservationID == id && p.Status == reservation.PaymentPending {
			p.Amount = totalCost
			s.payments[pid] = p
		}
	}
	return nil
}

func (r *ReservationRepository) FinalizeReturn(ctx context.Context, id int64, finalTotal, distanceKM float64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	res.Status = reservation.StatusReturned
	res.TotalCost = finalTotal
	res.DistanceKM = distanceKM
	s.reservations[id] = res

	for pid, p := range s.payments {
		if p.ReservationID == id {
			p.Amount = finalTotal
			p.Status = reservation.PaymentPaid
			p.Method = reservation.MethodFinalized
			s.payments[pid] = p
		}
	}

	if v, ok := s.vehicles[res.VehicleID]; ok {
		v.Available = true
		s.vehicles[res.VehicleID] = v
	}
	return nil
}

func (r *ReservationRepository) AddDamage(ctx context.Context, d *reservation.DamageRecord) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextDamageID++
	d.ID = s.nextDamageID
	d.CreatedAt = time.Now()
	s.damages[d.ID] = *d
	return nil
}

func (r *ReservationRepository) ListDamage(ctx context.Context, reservationID int64) ([]reservation.DamageRecord, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []reservation.DamageRecord
	for _, d := range s.damages {
		if d.ReservationID == reservationID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ReservationRepository) DamageTotal(ctx context.Context, reservationID int64) (float64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, d := range s.damages {
		if d.ReservationID == reservationID {
			total += d.Cost
		}
	}
	return total, nil
}

func (r *ReservationRepository) FindPayment(ctx context.Context, reservationID int64) (*reservation.Payment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *reservation.Payment
	for _, p := range s.payments {
		if p.ReservationID == reservationID && (found == nil || p.ID > found.ID) {
			match := p
			found = &match
		}
	}
	if found == nil {
		return nil, xerrors.ErrNotFound
	}
	return found, nil
}

func (r *ReservationRepository) summarize(res reservation.Reservation) reservation.Summary {
	sum := reservation.Summary{
		ID:       res.ID,
		StartAt:  res.StartAt,
		EndAt:    res.EndAt,
		Status:   res.Status,
		Location: res.Location,
	}
	if v, ok := r.store.vehicles[res.VehicleID]; ok {
		sum.Plate = v.Plate
		sum.Model = v.Model
	}
	if c, ok := r.store.customers[res.CustomerID]; ok {
		sum.CustomerName = c.Name
	}
	return sum
}

func (r *ReservationRepository) ListActive(ctx context.Context) ([]reservation.Summary, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []reservation.Summary
	for _, res := range s.reservations {
		if res.Status == reservation.StatusActive {
			out = append(out, r.summarize(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *ReservationRepository) ListForWindow(ctx context.Context, dayStart, dayEnd time.Time) ([]reservation.Summary, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []reservation.Summary
	for _, res := range s.reservations {
		if res.StartAt.Before(dayEnd) && res.EndAt.After(dayStart) {
			out = append(out, r.summarize(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *ReservationRepository) ActiveDateRanges(ctx context.Context) ([]reservation.DateRange, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []reservation.DateRange
	for _, res := range s.reservations {
		if res.Status == reservation.StatusActive {
			out = append(out, reservation.DateRange{
				ReservationID: res.ID,
				StartAt:       res.StartAt,
				EndAt:         res.EndAt,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out, nil
}

func (r *ReservationRepository) Details(ctx context.Context, id int64) (*reservation.Details, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}

	d := reservation.Details{
		ID:         res.ID,
		Reference:  res.Reference,
		DriverFlag: res.DriverFlag,
		StartAt:    res.StartAt,
		EndAt:      res.EndAt,
		TotalCost:  res.TotalCost,
		Status:     res.Status,
	}
	if v, ok := s.vehicles[res.VehicleID]; ok {
		d.Plate = v.Plate
		d.Model = v.Model
	}
	if c, ok := s.customers[res.CustomerID]; ok {
		d.CustomerName = c.Name
		d.DriversLicense = c.DriversLicense
	}
	return &d, nil
}

func (r *ReservationRepository) UsageReport(ctx context.Context) ([]reservation.VehicleUsage, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	byVehicle := make(map[int64]*reservation.VehicleUsage)
	for _, v := range s.vehicles {
		byVehicle[v.ID] = &reservation.VehicleUsage{VehicleID: v.ID, Plate: v.Plate, Model: v.Model}
	}
	for _, res := range s.reservations {
		u, ok := byVehicle[res.VehicleID]
		if !ok {
			continue
		}
		u.Reservations++
		u.UsageHours += res.EndAt.Sub(res.StartAt).Hours()
		u.DistanceKM += res.DistanceKM
	}

	out := make([]reservation.VehicleUsage, 0, len(byVehicle))
	for _, u := range byVehicle {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reservations != out[j].Reservations {
			return out[i].Reservations > out[j].Reservations
		}
		return out[i].Plate < out[j].Plate
	})
	return out, nil
}

func (r *ReservationRepository) LocationReport(ctx context.Context) ([]reservation.LocationUsage, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	byLocation := make(map[string]*reservation.LocationUsage)
	for _, res := range s.reservations {
		l, ok := byLocation[res.Location]
		if !ok {
			l = &reservation.LocationUsage{Location: res.Location}
			byLocation[res.Location] = l
		}
		l.Reservations++
		l.Revenue += res.TotalCost
	}

	out := make([]reservation.LocationUsage, 0, len(byLocation))
	for _, l := range byLocation {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reservations != out[j].Reservations {
			return out[i].Reservations > out[j].Reservations
		}
		return out[i].Location < out[j].Location
	})
	return out, nil
}
