// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"

	"github.com/openngo/fieldpunch/internal/app/system/attendance"
)

// appConfigKeys defines the configuration keys for FieldPunch.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_secret, etc.
//   - Environment variables: FIELDPUNCH_MONGO_URI, FIELDPUNCH_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "fieldpunch", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "token_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer token signing key (must be strong in production)"},
	{Name: "token_expiry", Default: "24h", Desc: "Access token lifetime (e.g., 24h, 8h)"},

	{Name: "storage_local_path", Default: "./uploads/photos", Desc: "Local storage path for uploaded photos"},
	{Name: "storage_local_url", Default: "/files/photos", Desc: "URL prefix for serving uploaded photos"},

	{Name: "sweep_time", Default: "09:50", Desc: "Local HH:MM the daily absentee sweep fires at"},
	{Name: "sweep_timezone", Default: "UTC", Desc: "IANA time zone for day boundaries and the sweep clock"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have access
// to configuration before any backends or handlers are built. CoreConfig
// comes from the shared WAFFLE layer; AppConfig is specific to this app.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FIELDPUNCH", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret: appValues.String("token_secret"),
		TokenExpiry: appValues.Duration("token_expiry", 24*time.Hour),

		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),

		SweepTime:     appValues.String("sweep_time"),
		SweepTimeZone: appValues.String("sweep_timezone"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// It checks the MongoDB URI format, the token secret length, and parses the
// sweep schedule so bad configuration aborts startup instead of surfacing as
// a runtime failure at 09:50 the next morning.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" && len(appCfg.TokenSecret) < 32 {
		return fmt.Errorf("token_secret must be at least 32 bytes in production")
	}

	if !attendance.ValidHHMM(appCfg.SweepTime) {
		return fmt.Errorf("sweep_time %q: want HH:MM", appCfg.SweepTime)
	}
	if _, _, _, err := sweepSchedule(appCfg); err != nil {
		return err
	}
	if appCfg.TokenExpiry <= 0 {
		return fmt.Errorf("token_expiry must be positive")
	}

	return nil
}

// sweepSchedule resolves SweepTime/SweepTimeZone into the values the
// absentee worker and the attendance handlers consume. ValidateConfig runs
// it once at startup, so later callers can't see a parse failure the
// operator wasn't already told about.
func sweepSchedule(appCfg AppConfig) (hour, minute int, loc *time.Location, err error) {
	loc, err = time.LoadLocation(appCfg.SweepTimeZone)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("sweep_timezone %q: %w", appCfg.SweepTimeZone, err)
	}
	if _, err := fmt.Sscanf(appCfg.SweepTime, "%02d:%02d", &hour, &minute); err != nil {
		return 0, 0, nil, fmt.Errorf("sweep_time %q: %w", appCfg.SweepTime, err)
	}
	return hour, minute, loc, nil
}
