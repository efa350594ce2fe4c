package handler

import (
	"github.com/expense-report/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Tokens    *service.TokenService
	Blacklist *service.BlacklistService
	Users     *service.UserService
	Expenses  *service.ExpenseService
	Access    *service.AccessService
}

// NewRouter registers the public routes at the root and the expense API
// under apiPrefix.
func NewRouter(apiPrefix string, allowedOrigins []string, svcs Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), CORSMiddleware(allowedOrigins, true))

	router.GET("/", Root)
	router.GET("/ping", Ping)
	router.GET("/openapi.json", OpenAPIDoc)

	authHandler := NewAuthHandler(svcs.Users, svcs.Blacklist, svcs.Access)
	profileHandler := NewProfileHandler(svcs.Users, svcs.Access)
	expenseHandler := NewExpenseHandler(svcs.Expenses, svcs.Access)

	api := router.Group(apiPrefix)
	api.Use(AuthMiddleware(svcs.Tokens, svcs.Blacklist))
	{
		api.POST("/signup", authHandler.Signup)
		api.POST("/signin", authHandler.Signin)
		api.POST("/:userid/signout", authHandler.Signout)

		api.POST("/:userid/createexpense", expenseHandler.CreateExpense)
		api.GET("/:userid/readexpense", expenseHandler.ReadExpenses)
		api.PATCH("/:userid/:expenseid/updateexpense", expenseHandler.UpdateExpense)

		api.GET("/:userid/getprofile", profileHandler.GetProfile)
		api.PATCH("/:userid/updateprofile", profileHandler.UpdateProfile)
	}

	return router
}
