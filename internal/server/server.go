package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OFFIS-RIT/flavor/backend/internal/config"
	mid "github.com/OFFIS-RIT/flavor/backend/internal/server/middleware"
	"github.com/OFFIS-RIT/flavor/backend/internal/storage"
	"github.com/OFFIS-RIT/flavor/backend/pkg/flavor"
	"github.com/OFFIS-RIT/flavor/backend/pkg/graph"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"
	"github.com/OFFIS-RIT/flavor/backend/pkg/store"
	storecsv "github.com/OFFIS-RIT/flavor/backend/pkg/store/csv"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

// NewApp opens the flavor database and the optional collaborators described
// by cfg. A database that cannot be read is reset to empty and reported, it
// does not stop the server.
func NewApp(ctx context.Context, cfg config.Config) (*mid.App, error) {
	policy, err := graph.PolicyByName(cfg.TierPolicy)
	if err != nil {
		return nil, err
	}

	header := flavor.Header(cfg.HeaderLang)
	db := store.New(storecsv.NewFileStorage(storecsv.NewFileStorageParams{
		Path:   cfg.DBFile,
		Header: header,
	}))
	if err := db.Load(ctx); err != nil {
		var loadErr *store.LoadError
		if !errors.As(err, &loadErr) {
			return nil, err
		}
		logger.Error("Database could not be read, starting empty", "file", cfg.DBFile, "err", err)
	}
	logger.Info("Opened flavor database", "file", cfg.DBFile, "records", db.Len())

	app := &mid.App{
		Store:        db,
		Policy:       policy,
		Header:       header,
		MasterAPIKey: cfg.MasterAPIKey,
	}

	if cfg.AuthURL != "" {
		k, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.AuthURL + "/jwks"})
		if err != nil {
			return nil, err
		}
		app.Key = k
	}

	if cfg.S3.Enabled() {
		client, err := storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		app.Backups = storage.NewBackups(client, cfg.S3)
		logger.Info("Remote backups enabled", "bucket", cfg.S3.Bucket, "prefix", cfg.S3.Prefix)
	}

	return app, nil
}

// NewEcho builds the HTTP server around app.
func NewEcho(app *mid.App, bodyLimit string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("Request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(bodyLimit))

	RegisterRoutes(e)
	return e
}

func Init(cfg config.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize application", "err", err)
	}

	e := NewEcho(app, cfg.BodyLimit)

	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}
