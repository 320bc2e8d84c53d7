// Package users serves registration, login, and account endpoints for the
// mobile app and the admin dashboard.
package users

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/openngo/fieldpunch/internal/app/features/errors"
	organizationstore "github.com/openngo/fieldpunch/internal/app/store/organizations"
	userstore "github.com/openngo/fieldpunch/internal/app/store/users"
	"github.com/openngo/fieldpunch/internal/app/system/auth"
)

type Handler struct {
	Users  *userstore.Store
	Orgs   *organizationstore.Store
	Tokens *auth.Manager
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.Manager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Orgs:   organizationstore.New(db),
		Tokens: tokens,
		ErrLog: errLog,
		Log:    logger,
	}
}
