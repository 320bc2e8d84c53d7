// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, CORS); AppConfig is everything specific to FieldPunch.
// Values come from config files, FIELDPUNCH_* environment variables, or
// command-line flags, loaded in LoadConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token auth
	TokenSecret string        // HMAC signing key, at least 32 bytes
	TokenExpiry time.Duration // access token lifetime

	// Photo blob storage
	StorageLocalPath string // directory uploaded photos are written to
	StorageLocalURL  string // URL prefix photos are served from

	// Daily absentee sweep
	SweepTime     string // local "HH:MM" the sweep fires at
	SweepTimeZone string // IANA zone for day boundaries and the sweep clock
}
