package handlers

import (
	"net/http"

	"glowdesk/models"
	bookingSvc "glowdesk/services/booking"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// BookingService is wired in main before routes are registered.
var BookingService bookingSvc.BookingService

func bookingViews(page *models.Paged[models.Booking]) *models.Paged[models.BookingView] {
	views := make([]models.BookingView, 0, len(page.Results))
	for _, b := range page.Results {
		views = append(views, b.View())
	}
	return &models.Paged[models.BookingView]{
		Results:    views,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

// CreateBooking commits a new booking if the requested interval is admitted.
func CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	booking, err := BookingService.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "BOOKING_CREATED", "Booking created", booking.View())
}

// GetBooking returns one live booking.
func GetBooking(c *gin.Context) {
	booking, err := BookingService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "BOOKING_FETCHED", "Booking fetched", booking.View())
}

// ListBookings returns a page of live bookings. A mobile query parameter
// narrows the page to one customer's bookings.
func ListBookings(c *gin.Context) {
	pr := bindPage(c)

	var (
		page *models.Paged[models.Booking]
		err  error
	)
	if mobile := c.Query("mobile"); mobile != "" {
		page, err = BookingService.ListByMobile(mobile, pr)
	} else {
		page, err = BookingService.List(pr)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "BOOKINGS_FETCHED", "Bookings fetched", bookingViews(page))
}

// UpdateBooking mutates a live booking; a reschedule re-runs admission.
func UpdateBooking(c *gin.Context) {
	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	booking, err := BookingService.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "BOOKING_UPDATED", "Booking updated", booking.View())
}

// TrashBooking soft-deletes a booking, releasing its interval.
func TrashBooking(c *gin.Context) {
	booking, err := BookingService.Trash(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "BOOKING_TRASHED", "Booking moved to trash", booking.View())
}

// ListTrashedBookings returns a page of soft-deleted bookings.
func ListTrashedBookings(c *gin.Context) {
	page, err := BookingService.ListTrashed(bindPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "BOOKINGS_FETCHED", "Trashed bookings fetched", bookingViews(page))
}

// RestoreBooking brings a trashed booking back, re-checking for conflicts if
// it would become active again.
func RestoreBooking(c *gin.Context) {
	booking, err := BookingService.Restore(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "BOOKING_RESTORED", "Booking restored", booking.View())
}

// PurgeBooking permanently removes a trashed booking.
func PurgeBooking(c *gin.Context) {
	if err := BookingService.Purge(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "BOOKING_PURGED", "Booking permanently deleted", nil)
}
