package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"
	"github.com/OFFIS-RIT/flavor/backend/pkg/store"

	"github.com/labstack/echo/v4"
)

// SeedDemoHandler loads the demonstration dataset into an empty database.
func SeedDemoHandler(c echo.Context) error {
	type seedResponse struct {
		Message string `json:"message"`
		Warning string `json:"warning,omitempty"`
		Count   int    `json:"count"`
	}

	n, err := getApp(c).Store.Seed(c.Request().Context(), flavor.DemoRecords())
	if errors.Is(err, store.ErrNotEmpty) {
		return c.JSON(http.StatusConflict, seedResponse{
			Message: err.Error(),
		})
	}
	warning, err := saveWarning(err)
	if err != nil {
		logger.Error("Failed to seed demo data", "err", err)
		return internalError(c)
	}

	return c.JSON(http.StatusOK, seedResponse{
		Message: "Demo data loaded",
		Warning: warning,
		Count:   n,
	})
}
