// internal/handlers/booking/booking_handler.go
package booking

import (
	"net/http"
	"strconv"
	"time"

	"rentaldesk-service/internal/domain/reservation"
	"rentaldesk-service/internal/pkg/response"
	service "rentaldesk-service/internal/service/booking"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// Timestamps arrive either as RFC 3339 or as the desk form's minute format.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04"}

func parseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		} else {
			lastErr = err
		}
	}
	return time.Time{}, lastErr
}

// CreateReservation books a vehicle for a walk-up customer
func (h *BookingHandler) CreateReservation(c *gin.Context) {
	var req reservation.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	start, err := parseTime(req.Start)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid start datetime", err)
		return
	}
	end, err := parseTime(req.End)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid end datetime", err)
		return
	}

	result, err := h.bookingService.Create(c.Request.Context(), service.CreateInput{
		VehicleID:      req.VehicleID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerEmail:  req.CustomerEmail,
		DriverFlag:     req.DriverFlag,
		DriversLicense: req.DriversLicense,
		Start:          start,
		End:            end,
		Location:       req.Location,
	})
	if err != nil {
		response.DomainError(c, "failed to create reservation", err)
		return
	}

	response.Success(c, http.StatusCreated, "reservation created", result)
}

// CheckAvailability answers whether a vehicle can be booked over an interval
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid vehicle ID", err)
		return
	}

	start, err := parseTime(c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid start datetime", err)
		return
	}
	end, err := parseTime(c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid end datetime", err)
		return
	}

	available, err := h.bookingService.CheckAvailability(c.Request.Context(), vehicleID, start, end)
	if err != nil {
		response.DomainError(c, "availability check failed", err)
		return
	}

	response.Success(c, http.StatusOK, "availability checked", gin.H{"available": available})
}

// ExtendReservation moves the end of an active reservation
func (h *BookingHandler) ExtendReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid reservation ID", err)
		return
	}

	var req reservation.ExtendReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	newEnd, err := parseTime(req.NewEnd)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid end datetime", err)
		return
	}

	result, err := h.bookingService.Extend(c.Request.Context(), id, newEnd)
	if err != nil {
		response.DomainError(c, "failed to extend reservation", err)
		return
	}

	response.Success(c, http.StatusOK, "reservation extended", result)
}

// AddDamage appends a damage charge to a reservation
func (h *BookingHandler) AddDamage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid reservation ID", err)
		return
	}

	var req reservation.AddDamageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.bookingService.AddDamage(c.Request.Context(), id, &req)
	if err != nil {
		response.DomainError(c, "failed to add damage record", err)
		return
	}

	response.Success(c, http.StatusCreated, "damage recorded", result)
}

// ListDamage retrieves the damage records of a reservation
func (h *BookingHandler) ListDamage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid reservation ID", err)
		return
	}

	result, err := h.bookingService.ListDamage(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, "failed to list damage records", err)
		return
	}

	response.Success(c, http.StatusOK, "damage records retrieved", result)
}

// FinalizeReservation closes out a reservation at vehicle return
func (h *BookingHandler) FinalizeReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid reservation ID", err)
		return
	}

	var req reservation.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.bookingService.Finalize(c.Request.Context(), id, req.DistanceKM)
	if err != nil {
		response.DomainError(c, "failed to finalize reservation", err)
		return
	}

	response.Success(c, http.StatusOK, "reservation finalized", result)
}

// GetReservation retrieves the return-desk view of a reservation
func (h *BookingHandler) GetReservation(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid reservation ID", err)
		return
	}

	result, err := h.bookingService.GetDetails(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, "reservation not found", err)
		return
	}

	response.Success(c, http.StatusOK, "reservation retrieved", result)
}

// ListActive retrieves the active reservation board
func (h *BookingHandler) ListActive(c *gin.Context) {
	result, err := h.bookingService.ListActive(c.Request.Context())
	if err != nil {
		response.DomainError(c, "failed to list reservations", err)
		return
	}

	response.Success(c, http.StatusOK, "reservations retrieved", result)
}

// ListForDay retrieves the reservations touching one calendar day
func (h *BookingHandler) ListForDay(c *gin.Context) {
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err)
		return
	}

	result, err := h.bookingService.ListForDay(c.Request.Context(), day)
	if err != nil {
		response.DomainError(c, "failed to list reservations", err)
		return
	}

	response.Success(c, http.StatusOK, "reservations retrieved", result)
}

// ListDateRanges retrieves the intervals backing the booking calendar
func (h *BookingHandler) ListDateRanges(c *gin.Context) {
	result, err := h.bookingService.DateRanges(c.Request.Context())
	if err != nil {
		response.DomainError(c, "failed to list date ranges", err)
		return
	}

	response.Success(c, http.StatusOK, "date ranges retrieved", result)
}

// GetPayment retrieves the payment row of a reservation
func (h *BookingHandler) GetPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid reservation ID", err)
		return
	}

	result, err := h.bookingService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.DomainError(c, "payment not found", err)
		return
	}

	response.Success(c, http.StatusOK, "payment retrieved", result)
}
