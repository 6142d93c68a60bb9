// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	SessionKeyMW   *middleware.SessionKeyMiddleware
	AuthMW         *middleware.AuthMiddleware
	RequestIDMW    *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	sessionKeyMW   *middleware.SessionKeyMiddleware
	authMW         *middleware.AuthMiddleware
	requestIDMW    *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		sessionKeyMW:   params.SessionKeyMW,
		authMW:         params.AuthMW,
		requestIDMW:    params.RequestIDMW,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	e.Use(r.requestIDMW.Process)
	e.Use(r.sessionKeyMW.Process)

	users := e.Group("/api/users")
	{
		users.POST("/register", r.accountHandler.Register)
		users.POST("/isExist", r.accountHandler.IsExist)
		users.POST("/login", r.accountHandler.Login)
	}

	// Routes that require an authenticated caller
	authed := users.Group("")
	authed.Use(r.authMW.Authenticate)
	{
		authed.PATCH("/changeInfo", r.accountHandler.ChangeInfo)
		authed.PATCH("/changePassword", r.accountHandler.ChangePassword)
		authed.POST("/delete", r.accountHandler.Delete)
		authed.POST("/logout", r.accountHandler.Logout)
	}
}
