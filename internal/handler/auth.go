package handler

import (
	"errors"
	"net/http"

	"github.com/expense-report/backend/internal/model"
	"github.com/expense-report/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users     *service.UserService
	blacklist *service.BlacklistService
	access    *service.AccessService
}

func NewAuthHandler(users *service.UserService, blacklist *service.BlacklistService, access *service.AccessService) *AuthHandler {
	return &AuthHandler{users: users, blacklist: blacklist, access: access}
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.SignupRequest true "Username, email, password and optional profile image"
// @Success 201 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.users.Signup(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

// Signin godoc
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.SigninRequest true "Email and password"
// @Success 200 {object} model.AuthResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var req model.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.users.Signin(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Signout godoc
// @Summary Sign out
// @Description Blacklists the presented bearer token until it expires.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param userid path string true "User ID"
// @Success 200 {object} model.StatusResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /{userid}/signout [post]
func (h *AuthHandler) Signout(c *gin.Context) {
	if _, ok := authorizeUser(c, h.access); !ok {
		return
	}

	identity := GetAuthUser(c)
	if err := h.blacklist.Revoke(c.Request.Context(), identity.Token, identity.ID, identity.ExpiresAt); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: "signed_out"})
}
