package routes

import (
	"net/http"

	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"

	"github.com/labstack/echo/v4"
)

// GetRecordsHandler returns the full table.
func GetRecordsHandler(c echo.Context) error {
	type getRecordsResponse struct {
		Count   int             `json:"count"`
		Records []flavor.Record `json:"records"`
	}

	records := getApp(c).Store.Records()
	return c.JSON(http.StatusOK, getRecordsResponse{
		Count:   len(records),
		Records: records,
	})
}

// GetOptionsHandler returns the distinct values offered by the pickers.
func GetOptionsHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, flavor.PickerOptions(getApp(c).Store.Snapshot()))
}
