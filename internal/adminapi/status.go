package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// status reports environment, database connectivity and the storage mode.
func (h *Handler) status(c echo.Context) error {
	cfg := h.app.Config()

	dbStatus := "ok"
	sqlDB, err := h.app.DB().DB()
	if err != nil {
		dbStatus = "error"
	} else if err := sqlDB.PingContext(c.Request().Context()); err != nil {
		dbStatus = "error"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"app":         cfg.System.Appid,
		"environment": cfg.Logger.Mode,
		"database":    dbStatus,
		"storage":     cfg.Storage.Provider,
	})
}
