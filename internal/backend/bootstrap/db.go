// internal/backend/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/raizes/internal/backend/store"
	"github.com/dalemusser/raizes/internal/backend/store/filestore"
	"github.com/dalemusser/raizes/internal/backend/store/mongostore"
	"github.com/dalemusser/raizes/internal/backend/store/sqlitestore"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB opens the configured record store.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	switch appCfg.Store {
	case StoreSQLite:
		st, err := sqlitestore.Open(appCfg.SQLitePath, logger.Named("sqlite"))
		if err != nil {
			return DBDeps{}, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("using sqlite store", zap.String("path", appCfg.SQLitePath))
		return DBDeps{Store: st}, nil

	case StoreMongo:
		st, err := mongostore.Connect(ctx, appCfg.MongoURI, appCfg.MongoDatabase, logger.Named("mongo"))
		if err != nil {
			return DBDeps{}, fmt.Errorf("open mongo store: %w", err)
		}
		return DBDeps{Store: st, Mongo: st}, nil

	default:
		if appCfg.DBFile == "" {
			logger.Info("using in-memory store")
			return DBDeps{Store: filestore.NewMemory(logger.Named("file"))}, nil
		}
		st, err := filestore.Open(appCfg.DBFile, appCfg.Collections, logger.Named("file"))
		if err != nil {
			return DBDeps{}, fmt.Errorf("open file store: %w", err)
		}
		logger.Info("using file store", zap.String("path", appCfg.DBFile))
		return DBDeps{Store: st}, nil
	}
}

// EnsureSchema builds the mongo ordering indexes and loads the seed file
// into stores that do not read db.json themselves.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Mongo != nil {
		if err := deps.Mongo.EnsureIndexes(ctx, appCfg.Collections); err != nil {
			logger.Error("mongo index setup failed", zap.Error(err))
			return err
		}
	}
	if appCfg.SeedFile == "" || appCfg.Store == StoreFile {
		return nil
	}
	return seedFrom(ctx, deps.Store, appCfg.SeedFile, appCfg.Collections, logger)
}

// seedFrom copies every configured collection of a db.json file into dst.
func seedFrom(ctx context.Context, dst store.Store, path string, collections []string, logger *zap.Logger) error {
	raw, err := filestore.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	data := make(map[string][]store.Record, len(collections))
	total := 0
	for _, c := range collections {
		data[c] = raw[c]
		total += len(raw[c])
	}
	if err := store.Seed(ctx, dst, data); err != nil {
		return err
	}
	logger.Info("seed file loaded", zap.String("path", path), zap.Int("records", total))
	return nil
}
