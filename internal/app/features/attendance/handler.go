// Package attendance serves the ledger query endpoints and the manual
// absentee-sweep trigger.
package attendance

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	uierrors "github.com/openngo/fieldpunch/internal/app/features/errors"
	attendancestore "github.com/openngo/fieldpunch/internal/app/store/attendance"
	"github.com/openngo/fieldpunch/internal/app/system/sweeper"
)

type Handler struct {
	Ledger  *attendancestore.Store
	Sweeper *sweeper.Sweeper
	Loc     *time.Location // reference zone day keys are stored in
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, sw *sweeper.Sweeper, loc *time.Location, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Ledger:  attendancestore.New(db),
		Sweeper: sw,
		Loc:     loc,
		ErrLog:  errLog,
		Log:     logger,
	}
}
