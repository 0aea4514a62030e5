package routes

import (
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/OFFIS-RIT/flavor/backend/internal/storage"
	"github.com/OFFIS-RIT/flavor/backend/pkg/loader"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"
	"github.com/OFFIS-RIT/flavor/backend/pkg/store"

	"github.com/labstack/echo/v4"
)

// GetBackupsHandler lists the remote backups with temporary download links.
func GetBackupsHandler(c echo.Context) error {
	type getBackupsResponse struct {
		Message string           `json:"message,omitempty"`
		Backups []storage.Backup `json:"backups"`
	}

	backups := getApp(c).Backups
	if !backups.Enabled() {
		return c.JSON(http.StatusNotFound, getBackupsResponse{
			Message: storage.ErrDisabled.Error(),
			Backups: []storage.Backup{},
		})
	}

	ctx := c.Request().Context()
	list, err := backups.List(ctx)
	if err != nil {
		logger.Error("Failed to list backups", "err", err)
		return internalError(c)
	}
	for i := range list {
		link, err := backups.Link(ctx, list[i].Key)
		if err != nil {
			logger.Warn("Failed to presign backup link", "key", list[i].Key, "err", err)
			continue
		}
		list[i].URL = link
	}

	return c.JSON(http.StatusOK, getBackupsResponse{Backups: list})
}

// CreateBackupHandler uploads the current table to the backup bucket.
func CreateBackupHandler(c echo.Context) error {
	type createBackupResponse struct {
		Message string `json:"message"`
		Key     string `json:"key,omitempty"`
	}

	app := getApp(c)
	key, err := app.Backups.Put(c.Request().Context(), func(w io.Writer) error {
		return app.Store.Export(w, app.Header)
	})
	if errors.Is(err, storage.ErrDisabled) {
		return c.JSON(http.StatusNotFound, createBackupResponse{Message: err.Error()})
	}
	if err != nil {
		logger.Error("Failed to create backup", "err", err)
		return internalError(c)
	}

	return c.JSON(http.StatusOK, createBackupResponse{
		Message: "Backup created",
		Key:     key,
	})
}

// RestoreBackupHandler merges a remote backup into the table.
func RestoreBackupHandler(c echo.Context) error {
	type restoreBackupBody struct {
		Key string `json:"key" validate:"required"`
	}

	type restoreBackupResponse struct {
		Message string              `json:"message"`
		Warning string              `json:"warning,omitempty"`
		Result  *store.ImportResult `json:"result,omitempty"`
	}

	data := new(restoreBackupBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, restoreBackupResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, restoreBackupResponse{
			Message: "Invalid request body",
		})
	}

	app := getApp(c)
	ctx := c.Request().Context()
	content, err := app.Backups.Get(ctx, data.Key)
	if errors.Is(err, storage.ErrDisabled) {
		return c.JSON(http.StatusNotFound, restoreBackupResponse{Message: err.Error()})
	}
	if err != nil {
		logger.Error("Failed to fetch backup", "key", data.Key, "err", err)
		return c.JSON(http.StatusBadGateway, restoreBackupResponse{
			Message: "Failed to fetch backup",
		})
	}

	records, err := loader.Load(ctx, loader.ImportFile{Name: path.Base(data.Key), Content: content})
	if err != nil {
		return c.JSON(http.StatusBadRequest, restoreBackupResponse{
			Message: "Restore failed: " + err.Error(),
		})
	}

	res, err := app.Store.Import(ctx, records)
	warning, err := saveWarning(err)
	if err != nil {
		logger.Error("Failed to restore backup", "err", err)
		return internalError(c)
	}

	return c.JSON(http.StatusOK, restoreBackupResponse{
		Message: "Backup restored",
		Warning: warning,
		Result:  &res,
	})
}
