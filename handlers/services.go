package handlers

import (
	"net/http"

	"glowdesk/models"
	catalogSvc "glowdesk/services/catalog"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// CatalogService is wired in main before routes are registered.
var CatalogService catalogSvc.CatalogService

// CreateService adds a catalog entry.
func CreateService(c *gin.Context) {
	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	svc, err := CatalogService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "SERVICE_CREATED", "Service created", svc)
}

// GetService returns one live catalog entry.
func GetService(c *gin.Context) {
	svc, err := CatalogService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "SERVICE_FETCHED", "Service fetched", svc)
}

// GetServiceByName returns one live catalog entry looked up by exact name.
func GetServiceByName(c *gin.Context) {
	svc, err := CatalogService.GetByName(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "SERVICE_FETCHED", "Service fetched", svc)
}

// ListServices returns a page of live catalog entries.
func ListServices(c *gin.Context) {
	page, err := CatalogService.List(bindPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "SERVICES_FETCHED", "Services fetched", page)
}

// UpdateService mutates a live catalog entry. A duration change only affects
// future bookings; committed ones keep their interval.
func UpdateService(c *gin.Context) {
	var req models.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	svc, err := CatalogService.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "SERVICE_UPDATED", "Service updated", svc)
}

// TrashService soft-deletes a catalog entry.
func TrashService(c *gin.Context) {
	svc, err := CatalogService.Trash(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "SERVICE_TRASHED", "Service moved to trash", svc)
}

// ListTrashedServices returns a page of soft-deleted catalog entries.
func ListTrashedServices(c *gin.Context) {
	page, err := CatalogService.ListTrashed(bindPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "SERVICES_FETCHED", "Trashed services fetched", page)
}

// RestoreService brings a trashed catalog entry back if its name is free.
func RestoreService(c *gin.Context) {
	svc, err := CatalogService.Restore(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "SERVICE_RESTORED", "Service restored", svc)
}

// PurgeService permanently removes a trashed catalog entry.
func PurgeService(c *gin.Context) {
	if err := CatalogService.Purge(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "SERVICE_PURGED", "Service permanently deleted", nil)
}
