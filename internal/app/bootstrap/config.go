// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/mejbaurrahman/JHF/internal/app/system/auditlog"
	"github.com/mejbaurrahman/JHF/internal/app/system/uploads"
	"go.uber.org/zap"
)

// devJWTSecret is only acceptable outside prod.
const devJWTSecret = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for JHF.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: JHF_MONGO_URI, JHF_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "jhfya", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size"},
	{Name: "mongo_server_selection_timeout", Default: "5s", Desc: "How long a MongoDB operation waits for a reachable server"},

	{Name: "jwt_secret", Default: devJWTSecret, Desc: "HMAC secret for bearer tokens (must be strong in production)"},
	{Name: "jwt_issuer", Default: "jhf", Desc: "Issuer claim for bearer tokens"},
	{Name: "jwt_ttl", Default: "168h", Desc: "Bearer token lifetime"},

	{Name: "cors_allowed_origins", Default: "*", Desc: "Comma-separated CORS origins ('*' for any)"},

	// Uploads
	{Name: "upload_backend", Default: "local", Desc: "Image storage: 'local' or 'cloudinary'"},
	{Name: "upload_dir", Default: "./uploads", Desc: "Directory for the local upload backend"},
	{Name: "upload_max_bytes", Default: int(uploads.DefaultMaxBytes), Desc: "Largest accepted image in bytes"},
	{Name: "cloudinary_cloud_name", Default: "", Desc: "Cloudinary cloud name"},
	{Name: "cloudinary_api_key", Default: "", Desc: "Cloudinary API key"},
	{Name: "cloudinary_api_secret", Default: "", Desc: "Cloudinary API secret"},
	{Name: "cloudinary_folder", Default: "jhf", Desc: "Cloudinary folder for uploads"},

	// Admin bootstrap
	{Name: "admin_phone", Default: "", Desc: "Phone of the admin user (created or promoted on startup)"},
	{Name: "admin_password", Default: "", Desc: "Initial password when the admin user is created"},
	{Name: "admin_name", Default: "Administrator", Desc: "Name when the admin user is created"},

	// Notifications
	{Name: "notification_retention", Default: "2160h", Desc: "How long read notifications are kept"},
	{Name: "notification_prune_interval", Default: "1h", Desc: "How often read notifications are pruned (0 disables)"},

	{Name: "login_rate_limit", Default: 10, Desc: "Login attempts per minute per client IP"},
	{Name: "register_rate_limit", Default: 5, Desc: "Registrations per hour per client IP"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// Store deadlines
	{Name: "timeout_short", Default: "", Desc: "Deadline for single-document operations (e.g. 5s)"},
	{Name: "timeout_medium", Default: "", Desc: "Deadline for list operations (e.g. 10s)"},
	{Name: "timeout_long", Default: "", Desc: "Deadline for aggregations (e.g. 30s)"},
}

// LoadConfig loads WAFFLE core config and JHF config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files, JHF_*
// environment variables and flags, with flags taking precedence.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "JHF", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:                    appValues.String("mongo_uri"),
		MongoDatabase:               appValues.String("mongo_database"),
		MongoMaxPoolSize:            uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize:            uint64(appValues.Int("mongo_min_pool_size")),
		MongoServerSelectionTimeout: appValues.Duration("mongo_server_selection_timeout", 5*time.Second),

		JWTSecret: appValues.String("jwt_secret"),
		JWTIssuer: appValues.String("jwt_issuer"),
		JWTTTL:    appValues.Duration("jwt_ttl", 7*24*time.Hour),

		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),

		UploadBackend:  strings.ToLower(strings.TrimSpace(appValues.String("upload_backend"))),
		UploadDir:      appValues.String("upload_dir"),
		UploadMaxBytes: int64(appValues.Int("upload_max_bytes")),

		CloudinaryCloudName: appValues.String("cloudinary_cloud_name"),
		CloudinaryAPIKey:    appValues.String("cloudinary_api_key"),
		CloudinaryAPISecret: appValues.String("cloudinary_api_secret"),
		CloudinaryFolder:    appValues.String("cloudinary_folder"),

		AdminPhone:    appValues.String("admin_phone"),
		AdminPassword: appValues.String("admin_password"),
		AdminName:     appValues.String("admin_name"),

		NotificationRetention:     appValues.Duration("notification_retention", 90*24*time.Hour),
		NotificationPruneInterval: appValues.Duration("notification_prune_interval", time.Hour),

		LoginRateLimit:    appValues.Int("login_rate_limit"),
		RegisterRateLimit: appValues.Int("register_rate_limit"),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),
	}

	if appCfg.JWTSecret == devJWTSecret {
		logger.Warn("using the development JWT secret; set JHF_JWT_SECRET")
	}

	return coreCfg, appCfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var auditDestinations = []string{auditlog.All, auditlog.DB, auditlog.Log, auditlog.Off}

// ValidateConfig rejects configurations that cannot start safely: a
// malformed Mongo URI, a weak or default JWT secret in prod, an unknown
// upload backend or missing Cloudinary credentials.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if strings.TrimSpace(appCfg.MongoDatabase) == "" {
		return fmt.Errorf("mongo_database is required")
	}

	if len(appCfg.JWTSecret) < 32 {
		if coreCfg != nil && coreCfg.Env == "prod" {
			return fmt.Errorf("jwt_secret must be at least 32 characters")
		}
		logger.Warn("jwt_secret is shorter than 32 characters")
	}
	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.JWTSecret == devJWTSecret {
		return fmt.Errorf("jwt_secret must be set in production")
	}
	if appCfg.JWTTTL <= 0 {
		return fmt.Errorf("jwt_ttl must be positive")
	}

	switch appCfg.UploadBackend {
	case "local":
		if strings.TrimSpace(appCfg.UploadDir) == "" {
			return fmt.Errorf("upload_dir is required for the local upload backend")
		}
	case "cloudinary":
		if appCfg.CloudinaryCloudName == "" || appCfg.CloudinaryAPIKey == "" || appCfg.CloudinaryAPISecret == "" {
			return fmt.Errorf("cloudinary upload backend requires cloudinary_cloud_name, cloudinary_api_key and cloudinary_api_secret")
		}
	default:
		return fmt.Errorf("upload_backend must be 'local' or 'cloudinary', got %q", appCfg.UploadBackend)
	}
	if appCfg.UploadMaxBytes <= 0 {
		return fmt.Errorf("upload_max_bytes must be positive")
	}

	for key, v := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		if !contains(auditDestinations, v) {
			return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(auditDestinations, ", "), v)
		}
	}

	if appCfg.AdminPhone != "" && appCfg.AdminPassword == "" {
		logger.Warn("admin_phone is set without admin_password; an existing user can be promoted but none will be created")
	}
	return nil
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
