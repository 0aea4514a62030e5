package routes

import (
	"errors"
	"net/http"

	"github.com/OFFIS-RIT/flavor/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/flavor/backend/pkg/store"

	"github.com/labstack/echo/v4"
)

func getApp(c echo.Context) *middleware.App {
	return c.(*middleware.AppContext).App
}

// saveWarning turns a persistence failure into a message for the user. The
// mutation itself stays applied in memory.
func saveWarning(err error) (string, error) {
	var saveErr *store.SaveError
	if errors.As(err, &saveErr) {
		return "Changes are kept in memory but could not be saved: " + saveErr.Err.Error(), nil
	}
	return "", err
}

type messageResponse struct {
	Message string `json:"message"`
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, messageResponse{
		Message: "Internal server error",
	})
}
