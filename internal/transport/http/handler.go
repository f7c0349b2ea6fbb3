package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"vn.io.arda/taskmail/internal/application"
)

// Handler holds all HTTP handler methods.
type Handler struct {
	svc *application.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *application.Service) *Handler {
	return &Handler{svc: svc}
}

// ReadSettings GET /settings
func (h *Handler) ReadSettings(c echo.Context) error {
	userID := mustUserID(c)

	settings, err := h.svc.ReadSettings(c.Request().Context(), userID)
	if err != nil {
		return echo.ErrInternalServerError
	}
	return c.JSON(http.StatusOK, settings)
}

// SaveSettings PUT /settings
func (h *Handler) SaveSettings(c echo.Context) error {
	userID := mustUserID(c)

	var values map[string]any
	if err := c.Bind(&values); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid settings payload")
	}

	if err := h.svc.SaveSettings(c.Request().Context(), userID, values); err != nil {
		return echo.ErrInternalServerError
	}
	return c.NoContent(http.StatusNoContent)
}

// SendTest POST /notifications/test — sends a test email to the caller.
func (h *Handler) SendTest(c echo.Context) error {
	userID := mustUserID(c)

	if err := h.svc.SendTestEmail(c.Request().Context(), userID); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.NoContent(http.StatusAccepted)
}

// Health GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func mustUserID(c echo.Context) int64 {
	id, _ := c.Get("userID").(int64)
	return id
}
