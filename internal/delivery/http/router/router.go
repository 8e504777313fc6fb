// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"authgate/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	PageHandler    *handler.PageHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	pageHandler    *handler.PageHandler
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		pageHandler:    params.PageHandler,
	}
}

// RegisterRoutes sets up all routes. Access control is global: the session gate
// runs before every route that is not bypassed.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", handler.HealthCheck)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.accountHandler.Signup)
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.POST("/logout", r.accountHandler.Logout)
	}

	e.GET("/login", r.pageHandler.Public)
	e.GET("/signup", r.pageHandler.Public)
	e.GET("/password-reset", r.pageHandler.Public)
	e.GET("/", r.pageHandler.Home)
}
