package handler

import (
	"net/http"

	"github.com/expense-report/backend/internal/model"
	"github.com/expense-report/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	users  *service.UserService
	access *service.AccessService
}

func NewProfileHandler(users *service.UserService, access *service.AccessService) *ProfileHandler {
	return &ProfileHandler{users: users, access: access}
}

// GetProfile godoc
// @Summary Get profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param userid path string true "User ID"
// @Success 200 {object} model.ProfileResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /{userid}/getprofile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, ok := authorizeUser(c, h.access)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, model.NewProfileResponse(user))
}

// UpdateProfile godoc
// @Summary Update profile
// @Description Only non-empty fields are applied.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userid path string true "User ID"
// @Param request body model.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.ProfileResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /{userid}/updateprofile [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user, ok := authorizeUser(c, h.access)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	updated, err := h.users.Update(c.Request.Context(), user, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewProfileResponse(updated))
}
