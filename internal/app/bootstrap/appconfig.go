// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds JHF-specific configuration.
//
// Values come from JHF_* environment variables, config files, .env, or
// command-line flags (see LoadConfig). WAFFLE's CoreConfig covers the
// framework side: ports, TLS, log level, request limits.
type AppConfig struct {
	// MongoDB
	MongoURI                    string
	MongoDatabase               string
	MongoMaxPoolSize            uint64
	MongoMinPoolSize            uint64
	MongoServerSelectionTimeout time.Duration

	// Bearer tokens
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	// Comma-separated list; "*" allows any origin.
	CORSAllowedOrigins []string

	// Image uploads
	UploadBackend  string // "local" or "cloudinary"
	UploadDir      string // local backend only; served under /uploads
	UploadMaxBytes int64

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	// Startup admin seeding. Skipped when AdminPhone is empty.
	AdminPhone    string
	AdminPassword string
	AdminName     string

	// Read notifications older than NotificationRetention are pruned every
	// NotificationPruneInterval. A zero interval disables the worker.
	NotificationRetention     time.Duration
	NotificationPruneInterval time.Duration

	LoginRateLimit    int // attempts per minute per client IP
	RegisterRateLimit int // registrations per hour per client IP

	// Audit destinations: "all", "db", "log" or "off".
	AuditLogAuth  string
	AuditLogAdmin string

	// Store call deadlines. Zero keeps the package default.
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
