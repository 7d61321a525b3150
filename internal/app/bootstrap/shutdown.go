package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown ends the prune worker, the login limiter sweep and any pending
// schema retry before the Mongo client is closed.
func Shutdown(ctx context.Context, _ *config.CoreConfig, _ AppConfig, deps DBDeps, logger *zap.Logger) error {
	deps.bg.stopAll()
	if deps.MongoClient == nil {
		return nil
	}
	if err := deps.MongoClient.Disconnect(ctx); err != nil {
		logger.Error("mongo disconnect", zap.Error(err))
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	logger.Info("mongo disconnected", zap.Bool("was_reachable", deps.Reachable))
	return nil
}
