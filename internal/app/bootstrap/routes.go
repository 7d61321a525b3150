// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	auditlogfeature "github.com/mejbaurrahman/JHF/internal/app/features/auditlog"
	authfeature "github.com/mejbaurrahman/JHF/internal/app/features/auth"
	contentfeature "github.com/mejbaurrahman/JHF/internal/app/features/content"
	donationsfeature "github.com/mejbaurrahman/JHF/internal/app/features/donations"
	errorsfeature "github.com/mejbaurrahman/JHF/internal/app/features/errors"
	eventsfeature "github.com/mejbaurrahman/JHF/internal/app/features/events"
	expensesfeature "github.com/mejbaurrahman/JHF/internal/app/features/expenses"
	feesfeature "github.com/mejbaurrahman/JHF/internal/app/features/fees"
	financefeature "github.com/mejbaurrahman/JHF/internal/app/features/finance"
	healthfeature "github.com/mejbaurrahman/JHF/internal/app/features/health"
	notificationsfeature "github.com/mejbaurrahman/JHF/internal/app/features/notifications"
	uploadfeature "github.com/mejbaurrahman/JHF/internal/app/features/upload"
	auditstore "github.com/mejbaurrahman/JHF/internal/app/store/audit"
	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/auditlog"
	"github.com/mejbaurrahman/JHF/internal/app/system/auth"
	"github.com/mejbaurrahman/JHF/internal/app/system/notify"
	"github.com/mejbaurrahman/JHF/internal/app/system/ratelimit"
	"github.com/mejbaurrahman/JHF/internal/app/system/uploads"
	"go.uber.org/zap"
)

// Banner is the plain-text body of GET /.
const Banner = "Jesobantapur Hilful Fuzul API is running..."

// uploadsPrefix is where the local upload backend is served.
const uploadsPrefix = "/uploads"

func newUploadStore(appCfg AppConfig) (uploads.Store, error) {
	switch appCfg.UploadBackend {
	case "cloudinary":
		return uploads.NewCloudinary(appCfg.CloudinaryCloudName, appCfg.CloudinaryAPIKey,
			appCfg.CloudinaryAPISecret, appCfg.CloudinaryFolder)
	case "local", "":
		return uploads.NewLocal(appCfg.UploadDir, uploadsPrefix)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", appCfg.UploadBackend)
	}
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	}
}

// BuildHandler constructs the root router. Every JSON route lives under
// /api; locally stored images are served under /uploads.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	tokens := auth.NewTokenManager(appCfg.JWTSecret, appCfg.JWTIssuer, appCfg.JWTTTL)
	// The fetcher reloads the user on every request so role changes and
	// deactivation take effect immediately.
	mw := auth.NewMiddleware(tokens, userstore.NewFetcher(db), logger)

	images, err := newUploadStore(appCfg)
	if err != nil {
		logger.Error("upload store init failed", zap.Error(err))
		return nil, err
	}

	limiter := ratelimit.NewLoginLimiter(appCfg.LoginRateLimit)
	deps.bg.add(limiter.Stop)
	signupLimit := appCfg.RegisterRateLimit
	if signupLimit <= 0 {
		signupLimit = 5
	}
	signups := ratelimit.New(signupLimit, time.Hour)
	deps.bg.add(signups.Stop)

	audit := auditlog.New(auditstore.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})
	notifier := notify.New(db, logger)
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(corsOptions(appCfg.CORSAllowedOrigins)))

	r.NotFound(errorsfeature.NotFound)
	r.MethodNotAllowed(errorsfeature.MethodNotAllowed)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(Banner))
	})

	if local, ok := images.(*uploads.Local); ok {
		r.Handle(uploadsPrefix+"/*", fileserver.Handler(uploadsPrefix, local.Dir))
	}

	r.Route("/api", func(api chi.Router) {
		api.NotFound(errorsfeature.NotFound)
		api.MethodNotAllowed(errorsfeature.MethodNotAllowed)

		healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
		api.Mount("/health", healthfeature.Routes(healthHandler))

		authHandler := authfeature.NewHandler(db, tokens, limiter, audit, errLog, logger)
		authHandler.Signups = signups
		api.Mount("/auth", authfeature.Routes(authHandler, mw))

		eventsHandler := eventsfeature.NewHandler(db, audit, errLog, logger)
		api.Mount("/events", eventsfeature.Routes(eventsHandler, mw))

		donationsHandler := donationsfeature.NewHandler(db, notifier, audit, errLog, logger)
		api.Mount("/donations", donationsfeature.Routes(donationsHandler, mw))

		feesHandler := feesfeature.NewHandler(db, notifier, audit, errLog, logger)
		api.Mount("/fees", feesfeature.Routes(feesHandler, mw))

		expensesHandler := expensesfeature.NewHandler(db, audit, errLog, logger)
		api.Mount("/expenses", expensesfeature.Routes(expensesHandler, mw))

		financeHandler := financefeature.NewHandler(db, errLog, logger)
		api.Mount("/finance", financefeature.Routes(financeHandler, mw))

		contentHandler := contentfeature.NewHandler(db, images, audit, errLog, logger)
		api.Mount("/content", contentfeature.Routes(contentHandler, mw))

		notificationsHandler := notificationsfeature.NewHandler(db, audit, errLog, logger)
		api.Mount("/notifications", notificationsfeature.Routes(notificationsHandler, mw))

		uploadHandler := uploadfeature.NewHandler(images, appCfg.UploadMaxBytes, errLog, logger)
		api.Mount("/upload", uploadfeature.Routes(uploadHandler, mw))

		auditHandler := auditlogfeature.NewHandler(db, errLog, logger)
		api.Mount("/audit", auditlogfeature.Routes(auditHandler, mw))
	})

	logger.Info("routes ready",
		zap.String("upload_backend", images.Backend()),
		zap.Bool("mongo_reachable", deps.Reachable))
	return r, nil
}
