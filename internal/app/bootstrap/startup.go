// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/openngo/fieldpunch/internal/app/system/sweeper"
	"github.com/openngo/fieldpunch/internal/app/system/workers"
)

// sweepWorker is started here and stopped in Shutdown.
var sweepWorker *workers.AbsenteeSweep

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. FieldPunch
// uses it to launch the daily absentee sweep worker.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	hour, minute, loc, err := sweepSchedule(appCfg)
	if err != nil {
		return err
	}

	sw := sweeper.New(deps.FieldPunchMongoDatabase, loc, logger)
	sweepWorker = workers.NewAbsenteeSweep(sw, logger, hour, minute, loc)
	sweepWorker.Start()

	return nil
}
