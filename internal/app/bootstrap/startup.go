// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	notificationstore "github.com/mejbaurrahman/JHF/internal/app/store/notifications"
	userstore "github.com/mejbaurrahman/JHF/internal/app/store/users"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/workers"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup seeds the configured admin account and starts background
// workers. It runs after ConnectDB and EnsureSchema, before BuildHandler.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := seedAdmin(ctx, appCfg, deps, logger); err != nil {
		return err
	}

	if appCfg.NotificationPruneInterval > 0 {
		w := workers.NewNotificationPrune(notificationstore.New(deps.MongoDatabase), logger,
			appCfg.NotificationPruneInterval, appCfg.NotificationRetention)
		w.Start()
		deps.bg.add(w.Stop)
	}
	return nil
}

// seedAdmin makes sure admin_phone belongs to an active admin. A new user is
// only inserted when admin_password is set.
func seedAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminPhone == "" {
		return nil
	}
	if !deps.Reachable {
		logger.Warn("admin seeding skipped; MongoDB unreachable")
		return nil
	}

	users := userstore.New(deps.MongoDatabase)
	sctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	if appCfg.AdminPassword == "" {
		promoted, err := users.PromoteToAdmin(sctx, appCfg.AdminPhone)
		if err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		if !promoted {
			logger.Warn("admin_phone matches no user and admin_password is empty; no admin created",
				zap.String("phone", appCfg.AdminPhone))
		}
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	created, err := users.EnsureAdmin(sctx, appCfg.AdminPhone, appCfg.AdminName, string(hash))
	if err != nil {
		logger.Error("admin seeding failed", zap.Error(err))
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		logger.Info("admin user created", zap.String("phone", appCfg.AdminPhone))
	} else {
		logger.Info("admin user ensured", zap.String("phone", appCfg.AdminPhone))
	}
	return nil
}
