package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"vn.io.arda/taskmail/internal/transport/mw"
)

// NewRouter sets up all Echo routes and middleware.
func NewRouter(h *Handler, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())

	// Health (no auth required)
	e.GET("/health", h.Health)

	// API — requires authentication
	v1 := e.Group("")
	v1.Use(mw.JWTAuth(jwtSecret))

	// Notification preference endpoints (settings form backend)
	v1.GET("/settings", h.ReadSettings)
	v1.PUT("/settings", h.SaveSettings)

	// Test email
	v1.POST("/notifications/test", h.SendTest)

	return e
}
