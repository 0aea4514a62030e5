package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ClearRecordsHandler empties the database and removes the backing file.
func ClearRecordsHandler(c echo.Context) error {
	if err := getApp(c).Store.Clear(c.Request().Context()); err != nil {
		logger.Error("Failed to clear database", "err", err)
		return c.JSON(http.StatusInternalServerError, messageResponse{
			Message: "Database was emptied but the backing file could not be removed",
		})
	}
	return c.JSON(http.StatusOK, messageResponse{
		Message: "Database cleared",
	})
}
