package routes

import (
	"io"
	"net/http"

	"github.com/OFFIS-RIT/flavor/backend/pkg/loader"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"
	"github.com/OFFIS-RIT/flavor/backend/pkg/store"

	"github.com/labstack/echo/v4"
)

// ImportRecordsHandler merges an uploaded spreadsheet into the table. The
// upload is rejected as a whole when it cannot be read or has fewer than
// three columns.
func ImportRecordsHandler(c echo.Context) error {
	type importResponse struct {
		Message string              `json:"message"`
		Warning string              `json:"warning,omitempty"`
		Result  *store.ImportResult `json:"result,omitempty"`
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, importResponse{
			Message: "Missing file",
		})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, importResponse{
			Message: "Failed to open file",
		})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.JSON(http.StatusBadRequest, importResponse{
			Message: "Failed to read file",
		})
	}

	ctx := c.Request().Context()
	records, err := loader.Load(ctx, loader.ImportFile{Name: fileHeader.Filename, Content: content})
	if err != nil {
		logger.Warn("Rejected import", "file", fileHeader.Filename, "err", err)
		return c.JSON(http.StatusBadRequest, importResponse{
			Message: "Import failed: " + err.Error(),
		})
	}

	res, err := getApp(c).Store.Import(ctx, records)
	warning, err := saveWarning(err)
	if err != nil {
		logger.Error("Failed to import records", "err", err)
		return internalError(c)
	}

	return c.JSON(http.StatusOK, importResponse{
		Message: "Import successful",
		Warning: warning,
		Result:  &res,
	})
}
