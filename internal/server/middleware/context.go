package middleware

import (
	"github.com/OFFIS-RIT/flavor/backend/internal/storage"
	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"
	"github.com/OFFIS-RIT/flavor/backend/pkg/store"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/labstack/echo/v4"
)

type AppUser struct {
	UserID      string
	Role        string
	Permissions []string
}

type App struct {
	Store   *store.Store
	Backups *storage.Backups
	// Key verifies bearer tokens. Nil when no AUTH_URL is configured.
	Key    keyfunc.Keyfunc
	Policy graph.Policy
	// Header is written as the first row of exports.
	Header []string

	MasterAPIKey string
}

// AuthEnabled reports whether requests have to carry credentials.
func (a *App) AuthEnabled() bool {
	return a.Key != nil || a.MasterAPIKey != ""
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
