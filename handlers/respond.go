package handlers

import (
	"errors"
	"net/http"

	"glowdesk/models"
	availabilitySvc "glowdesk/services/availability"
	bookingSvc "glowdesk/services/booking"
	catalogSvc "glowdesk/services/catalog"
	staffSvc "glowdesk/services/staff"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError translates a typed service error into the envelope's
// (status, code) pair. Anything unrecognized is a server fault.
func respondError(c *gin.Context, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		utils.GetLogger().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.RespondFailure(c, status, code, "Internal server error")
		return
	}
	utils.RespondFailure(c, status, code, err.Error())
}

func classify(err error) (int, string) {
	var (
		bookingValidation      bookingSvc.ValidationError
		availabilityValidation availabilitySvc.ValidationError
		catalogValidation      catalogSvc.ValidationError
		staffValidation        staffSvc.ValidationError

		bookingNotFound      bookingSvc.NotFoundError
		availabilityNotFound availabilitySvc.NotFoundError
		catalogNotFound      catalogSvc.NotFoundError
		staffNotFound        staffSvc.NotFoundError

		bookingServiceMissing      bookingSvc.ServiceNotFoundError
		availabilityServiceMissing availabilitySvc.ServiceNotFoundError
		bookingStaffMissing        bookingSvc.StaffNotFoundError

		availabilityExists availabilitySvc.AlreadyExistsError
		catalogExists      catalogSvc.AlreadyExistsError
		staffExists        staffSvc.AlreadyExistsError

		noAvailability bookingSvc.NoAvailabilityError
		slotConflict   bookingSvc.SlotConflictError
	)

	switch {
	case errors.As(err, &bookingValidation),
		errors.As(err, &availabilityValidation),
		errors.As(err, &catalogValidation),
		errors.As(err, &staffValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR"

	case errors.As(err, &bookingNotFound):
		return http.StatusNotFound, "BOOKING_NOT_FOUND"
	case errors.As(err, &availabilityNotFound):
		return http.StatusNotFound, "AVAILABILITY_NOT_FOUND"
	case errors.As(err, &catalogNotFound),
		errors.As(err, &bookingServiceMissing),
		errors.As(err, &availabilityServiceMissing):
		return http.StatusNotFound, "SERVICE_NOT_FOUND"
	case errors.As(err, &staffNotFound),
		errors.As(err, &bookingStaffMissing):
		return http.StatusNotFound, "STAFF_NOT_FOUND"

	case errors.As(err, &availabilityExists):
		return http.StatusConflict, "AVAILABILITY_EXISTS"
	case errors.As(err, &catalogExists):
		return http.StatusConflict, "SERVICE_EXISTS"
	case errors.As(err, &staffExists):
		return http.StatusConflict, "USER_EXISTS"

	case errors.As(err, &slotConflict):
		return http.StatusConflict, "STAFF_BUSY"
	case errors.As(err, &noAvailability):
		return http.StatusConflict, "NO_AVAILABILITY"
	}
	return http.StatusInternalServerError, "SERVER_ERROR"
}

// bindPage reads pagination query parameters, falling back to defaults on
// malformed values.
func bindPage(c *gin.Context) models.PageRequest {
	var pr models.PageRequest
	if err := c.ShouldBindQuery(&pr); err != nil {
		pr = models.PageRequest{}
	}
	return pr.Normalize()
}
