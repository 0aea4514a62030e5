package routes

import (
	"bytes"
	"net/http"

	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ExportFileName is offered to the browser for downloads.
const ExportFileName = "flavor_database_backup.csv"

// ExportRecordsHandler downloads the full table in the backing file format.
func ExportRecordsHandler(c echo.Context) error {
	app := getApp(c)

	var buf bytes.Buffer
	if err := app.Store.Export(&buf, app.Header); err != nil {
		logger.Error("Failed to export database", "err", err)
		return internalError(c)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+ExportFileName+`"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
