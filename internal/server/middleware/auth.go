package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	PermissionRecordCreate = "record.create"
	PermissionRecordImport = "record.import"
	PermissionRecordDelete = "record.delete"
	PermissionBackupView   = "backup.view"
	PermissionBackupCreate = "backup.create"
)

var allPermissions = []string{
	PermissionRecordCreate,
	PermissionRecordImport,
	PermissionRecordDelete,
	PermissionBackupView,
	PermissionBackupCreate,
}

func anonymousUser() *AppUser {
	return &AppUser{
		UserID:      "anonymous",
		Role:        "admin",
		Permissions: allPermissions,
	}
}

// AuthMiddleware resolves the user of a request. Without any configured
// credentials every request runs as an anonymous admin, matching a single
// user deployment.
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cc := c.(*AppContext)
		app := cc.App

		if !app.AuthEnabled() {
			cc.User = anonymousUser()
			return next(c)
		}

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		// Master API Key bypass
		if app.MasterAPIKey != "" && token == app.MasterAPIKey {
			cc.User = &AppUser{
				UserID:      "master",
				Role:        "admin",
				Permissions: allPermissions,
			}
			return next(c)
		}

		if app.Key == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		parsed, err := jwt.Parse(token, app.Key.Keyfunc)
		if err != nil || !parsed.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}

		var userID string
		switch id := claims["id"].(type) {
		case string:
			userID = id
		case float64:
			userID = fmt.Sprintf("%.0f", id)
		default:
			if sub, err := claims.GetSubject(); err == nil && sub != "" {
				userID = sub
			} else {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid user ID"})
			}
		}

		role := "user"
		if roleClaim, ok := claims["role"].(string); ok {
			role = roleClaim
		}

		var permissions []string
		if permsClaim, ok := claims["permissions"].([]any); ok {
			for _, p := range permsClaim {
				if pStr, ok := p.(string); ok {
					permissions = append(permissions, pStr)
				}
			}
		}

		if role == "admin" && len(permissions) == 0 {
			permissions = allPermissions
		}

		cc.User = &AppUser{
			UserID:      userID,
			Role:        role,
			Permissions: permissions,
		}

		return next(c)
	}
}
