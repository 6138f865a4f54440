package handlers

import (
	"net/http"

	"glowdesk/models"
	availabilitySvc "glowdesk/services/availability"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityService is wired in main before routes are registered.
var AvailabilityService availabilitySvc.AvailabilityService

func availabilityViews(page *models.Paged[models.AvailabilityDay]) *models.Paged[models.AvailabilityDayView] {
	views := make([]models.AvailabilityDayView, 0, len(page.Results))
	for _, d := range page.Results {
		views = append(views, d.View())
	}
	return &models.Paged[models.AvailabilityDayView]{
		Results:    views,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

// CreateAvailability records one staff member's capacity for a date.
func CreateAvailability(c *gin.Context) {
	var req models.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	day, err := AvailabilityService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "AVAILABILITY_CREATED", "Availability created", day.View())
}

// GetAvailability returns one live day record.
func GetAvailability(c *gin.Context) {
	day, err := AvailabilityService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "AVAILABILITY_FETCHED", "Availability fetched", day.View())
}

// GetAvailabilityByStaffAndDate returns the live record for one staff day.
func GetAvailabilityByStaffAndDate(c *gin.Context) {
	day, err := AvailabilityService.GetByStaffAndDate(c.Param("staffId"), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "AVAILABILITY_FETCHED", "Availability fetched", day.View())
}

// ListAvailabilityByStaff returns a page of one staff member's day records.
func ListAvailabilityByStaff(c *gin.Context) {
	page, err := AvailabilityService.ListByStaff(c.Param("staffId"), bindPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "AVAILABILITY_FETCHED", "Availability fetched", availabilityViews(page))
}

// QueryAvailableStaff lists the staff who could take the requested service at
// the requested time. The answer carries no reservation.
func QueryAvailableStaff(c *gin.Context) {
	staff, err := AvailabilityService.QueryAvailableStaff(
		c.Query("date"), c.Query("startTime"), c.Query("serviceId"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "STAFF_AVAILABLE", "Available staff fetched", staff)
}

// UpdateAvailability mutates a live day record.
func UpdateAvailability(c *gin.Context) {
	var req models.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	day, err := AvailabilityService.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "AVAILABILITY_UPDATED", "Availability updated", day.View())
}

// TrashAvailability soft-deletes a day record.
func TrashAvailability(c *gin.Context) {
	day, err := AvailabilityService.Trash(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "AVAILABILITY_TRASHED", "Availability moved to trash", day.View())
}

// ListTrashedAvailability returns a page of soft-deleted day records.
func ListTrashedAvailability(c *gin.Context) {
	page, err := AvailabilityService.ListTrashed(bindPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "AVAILABILITY_FETCHED", "Trashed availability fetched", availabilityViews(page))
}

// RestoreAvailability brings a trashed day record back if its (staff, date)
// key is still free.
func RestoreAvailability(c *gin.Context) {
	day, err := AvailabilityService.Restore(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "AVAILABILITY_RESTORED", "Availability restored", day.View())
}

// PurgeAvailability permanently removes a trashed day record.
func PurgeAvailability(c *gin.Context) {
	if err := AvailabilityService.Purge(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "AVAILABILITY_PURGED", "Availability permanently deleted", nil)
}
