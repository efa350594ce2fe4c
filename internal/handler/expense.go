package handler

import (
	"errors"
	"net/http"

	"github.com/expense-report/backend/internal/model"
	"github.com/expense-report/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenses *service.ExpenseService
	access   *service.AccessService
}

func NewExpenseHandler(expenses *service.ExpenseService, access *service.AccessService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, access: access}
}

// CreateExpense godoc
// @Summary Create expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userid path string true "User ID"
// @Param request body model.CreateExpenseRequest true "Expense payload"
// @Success 201 {object} model.Expense
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /{userid}/createexpense [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	user, ok := authorizeUser(c, h.access)
	if !ok {
		return
	}

	var req model.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	expense, err := h.expenses.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// ReadExpenses godoc
// @Summary List expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param userid path string true "User ID"
// @Success 200 {array} model.Expense
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /{userid}/readexpense [get]
func (h *ExpenseHandler) ReadExpenses(c *gin.Context) {
	user, ok := authorizeUser(c, h.access)
	if !ok {
		return
	}

	list, err := h.expenses.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateExpense godoc
// @Summary Update expense
// @Description Only provided, non-empty fields are applied; the total is recomputed.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userid path string true "User ID"
// @Param expenseid path string true "Expense ID"
// @Param request body model.UpdateExpenseRequest true "Expense fields"
// @Success 200 {object} model.Expense
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /{userid}/{expenseid}/updateexpense [patch]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	user, ok := authorizeUser(c, h.access)
	if !ok {
		return
	}

	var req model.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	expense, err := h.expenses.FindOwned(c.Request.Context(), c.Param("expenseid"), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
			return
		}
		writeError(c, err)
		return
	}

	updated, err := h.expenses.Update(c.Request.Context(), expense, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
