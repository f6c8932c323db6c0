package routes

import (
	"hirepro_backend/internal/handlers"
	"hirepro_backend/internal/middleware"
	"hirepro_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// AppHandlers groups every HTTP handler the router mounts.
type AppHandlers struct {
	AuthHandler    *handlers.AuthHandler
	UserHandler    *handlers.UserHandler
	CompanyHandler *handlers.CompanyHandler
	JobHandler     *handlers.JobHandler
}

// RegisterRoutes mounts the API under /api/v1. Signup, login, and the
// setup and reset endpoints are public; everything else sits behind the
// bearer token middleware.
func RegisterRoutes(router *gin.Engine, appHandlers *AppHandlers, tokenSvc services.TokenService) {
	api := router.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(tokenSvc))
		{
			appHandlers.UserHandler.RegisterRoutes(authed)
			appHandlers.CompanyHandler.RegisterRoutes(authed)
			appHandlers.JobHandler.RegisterRoutes(authed)
		}
	}
}
