package handlers

import (
	"net/http"
	"strings"

	"github.com/dabouqi/tourism-transport-system-sub000/internal/domain/models"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/http/middleware"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/services"
	"github.com/dabouqi/tourism-transport-system-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

type bookingPayload struct {
	ClientID         int64  `json:"client_id" binding:"required"`
	VehicleID        *int64 `json:"vehicle_id"`
	DriverID         *int64 `json:"driver_id"`
	RouteFrom        string `json:"route_from" binding:"required"`
	RouteTo          string `json:"route_to" binding:"required"`
	PickupAt         string `json:"pickup_at" binding:"required"` // "YYYY-MM-DD HH:MM:SS"
	Fare             string `json:"fare" binding:"required"`
	Notes            string `json:"notes"`
	CreateReceivable *bool  `json:"create_receivable"`
}

type bookingUpdatePayload struct {
	ClientID  *int64  `json:"client_id"`
	VehicleID *int64  `json:"vehicle_id"`
	DriverID  *int64  `json:"driver_id"`
	RouteFrom *string `json:"route_from"`
	RouteTo   *string `json:"route_to"`
	PickupAt  *string `json:"pickup_at"`
	Fare      *string `json:"fare"`
	Notes     *string `json:"notes"`
}

func bookingService(c *gin.Context) services.BookingService {
	notif := notificationService(c)
	return services.BookingService{
		NotificationSvc: &notif,
		RequestID:       middleware.GetRequestID(c),
	}
}

// GET /api/bookings?client_id=&status=&page=&limit=
func GetBookings(c *gin.Context) {
	page, limit := PageParams(c)
	views, err := bookingService(c).List(QueryID(c, "client_id"), strings.TrimSpace(c.Query("status")), page, limit)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// GET /api/bookings/:id
func GetBookingByID(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	view, err := bookingService(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	var payload bookingPayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	pickupAt, err := utils.ParseDateTime(payload.PickupAt)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid pickup_at, expected YYYY-MM-DD HH:MM:SS", err)
		return
	}
	fare, err := utils.ParseAmount(payload.Fare)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid fare", err)
		return
	}

	createReceivable := true
	if payload.CreateReceivable != nil {
		createReceivable = *payload.CreateReceivable
	}

	view, svcErr := bookingService(c).Create(services.CreateBookingInput{
		Booking: models.Booking{
			ClientID:  payload.ClientID,
			VehicleID: payload.VehicleID,
			DriverID:  payload.DriverID,
			RouteFrom: utils.NormalizeSpace(payload.RouteFrom),
			RouteTo:   utils.NormalizeSpace(payload.RouteTo),
			PickupAt:  pickupAt,
			Fare:      fare,
			Notes:     strings.TrimSpace(payload.Notes),
		},
		CreateReceivable: createReceivable,
	})
	if svcErr != nil {
		RespondDomainError(c, svcErr)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// PUT /api/bookings/:id
func UpdateBooking(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	var payload bookingUpdatePayload
	if !BindJSONOrError(c, &payload) {
		return
	}

	upd := models.BookingUpdate{
		ClientID:  payload.ClientID,
		VehicleID: payload.VehicleID,
		DriverID:  payload.DriverID,
		RouteFrom: payload.RouteFrom,
		RouteTo:   payload.RouteTo,
		Notes:     payload.Notes,
	}
	if payload.PickupAt != nil {
		pickupAt, err := utils.ParseDateTime(*payload.PickupAt)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid pickup_at, expected YYYY-MM-DD HH:MM:SS", err)
			return
		}
		upd.PickupAt = &pickupAt
	}
	if payload.Fare != nil {
		fare, err := utils.ParseAmount(*payload.Fare)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid fare", err)
			return
		}
		upd.Fare = &fare
	}

	view, err := bookingService(c).Update(id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/bookings/:id/cancel
func CancelBooking(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	view, err := bookingService(c).Cancel(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// PUT /api/bookings/:id/restore
func RestoreBooking(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	view, err := bookingService(c).Restore(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DELETE /api/bookings/:id
func DeleteBooking(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if err := bookingService(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}
