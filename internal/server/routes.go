package server

import (
	_ "embed"
	"net/http"

	"github.com/OFFIS-RIT/flavor/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/flavor/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

//go:embed static/index.html
var indexPage []byte

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/", func(c echo.Context) error {
		return c.HTMLBlob(http.StatusOK, indexPage)
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Record routes
	apiRoutes.GET("/records", routes.GetRecordsHandler)
	apiRoutes.POST("/records", routes.AddRecordHandler, middleware.RequirePermission(middleware.PermissionRecordCreate))
	apiRoutes.DELETE("/records", routes.ClearRecordsHandler, middleware.RequirePermission(middleware.PermissionRecordDelete))
	apiRoutes.POST("/records/import", routes.ImportRecordsHandler, middleware.RequirePermission(middleware.PermissionRecordImport))
	apiRoutes.POST("/records/demo", routes.SeedDemoHandler, middleware.RequirePermission(middleware.PermissionRecordImport))
	apiRoutes.GET("/records/export", routes.ExportRecordsHandler)

	// Search routes
	apiRoutes.GET("/options", routes.GetOptionsHandler)
	apiRoutes.GET("/search", routes.SearchHandler)

	// Graph routes
	apiRoutes.POST("/selection", routes.SelectionHandler)
	apiRoutes.POST("/graph", routes.GraphHandler)
	apiRoutes.POST("/graph/render", routes.RenderGraphHandler)

	// Backup routes
	apiRoutes.GET("/backups", routes.GetBackupsHandler, middleware.RequirePermission(middleware.PermissionBackupView))
	apiRoutes.POST("/backups", routes.CreateBackupHandler, middleware.RequirePermission(middleware.PermissionBackupCreate))
	apiRoutes.POST("/backups/restore", routes.RestoreBackupHandler, middleware.RequirePermission(middleware.PermissionRecordImport))
}
