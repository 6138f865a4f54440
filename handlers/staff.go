package handlers

import (
	"net/http"

	"glowdesk/models"
	staffSvc "glowdesk/services/staff"
	"glowdesk/utils"

	"github.com/gin-gonic/gin"
)

// StaffService is wired in main before routes are registered.
var StaffService staffSvc.StaffService

// CreateUser adds a directory account.
func CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := StaffService.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusCreated, "USER_CREATED", "User created", user)
}

// GetUser returns one live account.
func GetUser(c *gin.Context) {
	user, err := StaffService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "USER_FETCHED", "User fetched", user)
}

// GetUserByEmail returns one live account looked up by email.
func GetUserByEmail(c *gin.Context) {
	user, err := StaffService.GetByEmail(c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "USER_FETCHED", "User fetched", user)
}

// ListUsers returns a page of live accounts, optionally filtered by ?role=.
func ListUsers(c *gin.Context) {
	var (
		page *models.Paged[models.User]
		err  error
	)
	if role := c.Query("role"); role != "" {
		page, err = StaffService.ListByRole(role, bindPage(c))
	} else {
		page, err = StaffService.List(bindPage(c))
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "USERS_FETCHED", "Users fetched", page)
}

// ListActiveStaff returns every live account with the staff role.
func ListActiveStaff(c *gin.Context) {
	staff, err := StaffService.ListActiveStaff()
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "USERS_FETCHED", "Staff fetched", staff)
}

// UpdateUser mutates a live account.
func UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondFailure(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := StaffService.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "USER_UPDATED", "User updated", user)
}

// TrashUser soft-deletes an account.
func TrashUser(c *gin.Context) {
	user, err := StaffService.Trash(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "USER_TRASHED", "User moved to trash", user)
}

// ListTrashedUsers returns a page of soft-deleted accounts.
func ListTrashedUsers(c *gin.Context) {
	page, err := StaffService.ListTrashed(bindPage(c))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "USERS_FETCHED", "Trashed users fetched", page)
}

// RestoreUser brings a trashed account back.
func RestoreUser(c *gin.Context) {
	user, err := StaffService.Restore(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "USER_RESTORED", "User restored", user)
}

// PurgeUser permanently removes a trashed account.
func PurgeUser(c *gin.Context) {
	if err := StaffService.Purge(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.RespondSuccess(c, http.StatusOK, "USER_PURGED", "User permanently deleted", nil)
}
