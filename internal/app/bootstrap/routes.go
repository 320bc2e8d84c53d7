// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	attendancefeature "github.com/openngo/fieldpunch/internal/app/features/attendance"
	errorsfeature "github.com/openngo/fieldpunch/internal/app/features/errors"
	healthfeature "github.com/openngo/fieldpunch/internal/app/features/health"
	organizationsfeature "github.com/openngo/fieldpunch/internal/app/features/organizations"
	photosfeature "github.com/openngo/fieldpunch/internal/app/features/photos"
	usersfeature "github.com/openngo/fieldpunch/internal/app/features/users"
	"github.com/openngo/fieldpunch/internal/app/system/attendance"
	"github.com/openngo/fieldpunch/internal/app/system/auth"
	"github.com/openngo/fieldpunch/internal/app/system/storage"
	"github.com/openngo/fieldpunch/internal/app/system/sweeper"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. FieldPunch mounts a JSON API under
// /api/v1 plus a health endpoint and a file server for uploaded photos.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewManager(appCfg.TokenSecret, appCfg.TokenExpiry, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	blobs, err := storage.NewLocal(appCfg.StorageLocalPath, appCfg.StorageLocalURL)
	if err != nil {
		logger.Error("photo storage init failed", zap.Error(err))
		return nil, err
	}

	_, _, loc, err := sweepSchedule(appCfg)
	if err != nil {
		return nil, err
	}

	db := deps.FieldPunchMongoDatabase
	deriver := attendance.NewDeriver(db, loc, logger)
	sw := sweeper.New(db, loc, logger)

	// Error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads TokenUser into context when a valid
	// bearer token is present. Handlers read it via auth.CurrentUser(r).
	r.Use(tokens.LoadTokenUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.FieldPunchMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded photos, served from local blob storage
	r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, blobs.BasePath()))

	// Accounts and login
	usersHandler := usersfeature.NewHandler(db, tokens, errLog, logger)
	r.Mount("/api/v1/users", usersfeature.Routes(usersHandler))

	// Organization management
	orgHandler := organizationsfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/v1/organizations", organizationsfeature.Routes(orgHandler))

	// Photo capture intake
	photosHandler := photosfeature.NewHandler(db, blobs, deriver, errLog, logger)
	r.Mount("/api/v1/photos", photosfeature.Routes(photosHandler))

	// Attendance ledger queries and the manual sweep trigger
	attHandler := attendancefeature.NewHandler(db, sw, loc, errLog, logger)
	r.Mount("/api/v1/attendance", attendancefeature.Routes(attHandler))

	return r, nil
}
