// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	userstore "github.com/dalemusser/stratahr/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the user directory client for the configured backend.
//
// WAFFLE calls this after configuration is loaded but before Startup.
// None of the backends make a round trip here; reachability is probed in
// Startup and by the readiness endpoint. When the directory is not
// configured an empty DBDeps is returned so the server still starts.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	if !appCfg.DirectoryConfigured() {
		logger.Warn("skipping directory connection: configuration missing",
			zap.String("backend", appCfg.DirectoryBackend))
		return DBDeps{}, nil
	}

	switch appCfg.DirectoryBackend {
	case userstore.BackendSupabase, "":
		dir := userstore.NewSupabase(appCfg.DirectoryURL, appCfg.DirectoryKey, nil)
		logger.Info("using supabase user directory", zap.String("url", appCfg.DirectoryURL))
		return DBDeps{Directory: dir}, nil

	case userstore.BackendPostgres:
		db, err := userstore.OpenPostgres(appCfg.DirectoryURL, appCfg.DirectoryKey)
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to open postgres directory: %w", err)
		}
		logger.Info("using postgres user directory")
		return DBDeps{Directory: userstore.NewPostgres(db), SQLDB: db}, nil

	case userstore.BackendMongo:
		client, err := userstore.ConnectMongo(ctx, appCfg.DirectoryURL, appCfg.DirectoryUser, appCfg.DirectoryKey)
		if err != nil {
			return DBDeps{}, err
		}
		logger.Info("using MongoDB user directory",
			zap.String("database", appCfg.DirectoryDatabase),
			zap.Bool("explicit_credentials", appCfg.DirectoryUser != ""),
		)
		db := client.Database(appCfg.DirectoryDatabase)
		return DBDeps{Directory: userstore.NewMongo(db), MongoClient: client}, nil

	default:
		return DBDeps{}, fmt.Errorf("unknown directory backend: %s", appCfg.DirectoryBackend)
	}
}
