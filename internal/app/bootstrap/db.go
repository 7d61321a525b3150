// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/mejbaurrahman/JHF/internal/app/system/indexes"
	"github.com/mejbaurrahman/JHF/internal/app/system/timeouts"
	"github.com/mejbaurrahman/JHF/internal/app/system/validators"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// schemaRetryInterval is how often EnsureSchema retries after a degraded start.
var schemaRetryInterval = 30 * time.Second

func configureTimeouts(appCfg AppConfig) {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})
}

// ConnectDB creates the MongoDB client. An unreachable server is not fatal:
// the client keeps trying in the background and DBDeps.Reachable is false.
// Only a client that cannot be constructed at all aborts startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	configureTimeouts(appCfg)

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetServerSelectionTimeout(appCfg.MongoServerSelectionTimeout)
	if appCfg.MongoMaxPoolSize > 0 {
		opts.SetMaxPoolSize(appCfg.MongoMaxPoolSize)
	}
	if appCfg.MongoMinPoolSize > 0 {
		opts.SetMinPoolSize(appCfg.MongoMinPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("mongo client init failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	deps := DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		bg:            &background{},
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Warn("MongoDB unreachable; starting degraded",
			zap.String("database", appCfg.MongoDatabase), zap.Error(err))
		return deps, nil
	}

	deps.Reachable = true
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return deps, nil
}

func ensureSchema(ctx context.Context, db *mongo.Database) error {
	if err := indexes.EnsureAll(ctx, db); err != nil {
		return fmt.Errorf("indexes: %w", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		return fmt.Errorf("validators: %w", err)
	}
	return nil
}

// EnsureSchema creates indexes and JSON-schema validators. After a degraded
// start it retries in the background until the server answers.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Reachable {
		sctx, cancel := context.WithTimeout(ctx, timeouts.Long())
		defer cancel()
		if err := ensureSchema(sctx, deps.MongoDatabase); err != nil {
			logger.Error("schema setup failed", zap.Error(err))
			return err
		}
		return nil
	}

	retryCtx, stop := context.WithCancel(context.Background())
	deps.bg.add(stop)
	go retrySchema(retryCtx, deps, logger)
	return nil
}

func retrySchema(ctx context.Context, deps DBDeps, logger *zap.Logger) {
	ticker := time.NewTicker(schemaRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
		err := deps.MongoClient.Ping(pingCtx, readpref.Primary())
		cancel()
		if err != nil {
			continue
		}

		sctx, cancel := context.WithTimeout(ctx, timeouts.Long())
		err = ensureSchema(sctx, deps.MongoDatabase)
		cancel()
		if err != nil {
			logger.Warn("deferred schema setup failed; will retry", zap.Error(err))
			continue
		}
		logger.Info("MongoDB reachable; schema ensured")
		return
	}
}
