package handler

import (
	"net/http"

	"github.com/expense-report/backend/internal/model"
	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// Ping godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} model.PingResponse
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, model.PingResponse{Message: "pong"})
}

// 루트 엔드포인트
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, model.RootResponse{
		Status:  "ok",
		Message: "Expense report backend API is running",
		Version: Version,
	})
}
