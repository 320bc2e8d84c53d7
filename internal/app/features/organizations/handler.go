// Package organizations serves the admin CRUD endpoints for NGO
// organizations and their membership.
package organizations

import (
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/openngo/fieldpunch/internal/app/features/errors"
	organizationstore "github.com/openngo/fieldpunch/internal/app/store/organizations"
	userstore "github.com/openngo/fieldpunch/internal/app/store/users"
)

type Handler struct {
	Orgs     *organizationstore.Store
	Users    *userstore.Store
	Sanitize *bluemonday.Policy
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Orgs:  organizationstore.New(db),
		Users: userstore.New(db),
		// Descriptions are rendered by the dashboard; strip any markup on
		// the way in.
		Sanitize: bluemonday.StrictPolicy(),
		ErrLog:   errLog,
		Log:      logger,
	}
}
