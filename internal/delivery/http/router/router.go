// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tally/internal/delivery/http/middleware"
	"tally/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler        *handler.UserHandler
	ProfileHandler     *handler.ProfileHandler
	CalculationHandler *handler.CalculationHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler        *handler.UserHandler
	profileHandler     *handler.ProfileHandler
	calculationHandler *handler.CalculationHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:        params.UserHandler,
		profileHandler:     params.ProfileHandler,
		calculationHandler: params.CalculationHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.RefreshToken)
	}

	// Logout needs a verified access token to know what to revoke.
	e.POST("/auth/logout", r.userHandler.Logout, r.authMiddleware.Authenticate)

	// Account routes that require authentication
	apiGroup := e.Group("/api")
	apiGroup.Use(r.authMiddleware.Authenticate)
	{
		apiGroup.GET("/profile", r.profileHandler.GetProfile)
		apiGroup.PUT("/profile", r.profileHandler.UpdateProfile)
		apiGroup.POST("/change-password", r.profileHandler.ChangePassword)
	}

	// Calculation routes, always scoped to the authenticated owner
	calcGroup := e.Group("/calculations")
	calcGroup.Use(r.authMiddleware.Authenticate)
	{
		calcGroup.POST("", r.calculationHandler.Create)
		calcGroup.GET("", r.calculationHandler.List)
		calcGroup.GET("/:id", r.calculationHandler.Get)
		calcGroup.PUT("/:id", r.calculationHandler.Update)
		calcGroup.DELETE("/:id", r.calculationHandler.Delete)
	}
}
