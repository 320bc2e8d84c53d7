// Package photos receives geotagged captures from the mobile app: the image
// goes to blob storage, the metadata to Mongo, and punch photos feed the
// attendance deriver.
package photos

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/openngo/fieldpunch/internal/app/features/errors"
	photostore "github.com/openngo/fieldpunch/internal/app/store/photos"
	"github.com/openngo/fieldpunch/internal/app/system/attendance"
	"github.com/openngo/fieldpunch/internal/app/system/storage"
)

type Handler struct {
	Photos  *photostore.Store
	Blobs   storage.Store
	Deriver *attendance.Deriver
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, blobs storage.Store, deriver *attendance.Deriver, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Photos:  photostore.New(db),
		Blobs:   blobs,
		Deriver: deriver,
		ErrLog:  errLog,
		Log:     logger,
	}
}
