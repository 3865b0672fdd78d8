// internal/backend/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/raizes/internal/backend/rest"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys of the mock backend
// (environment variables RAIZESAPI_STORE, RAIZESAPI_DB_FILE, ...).
var appConfigKeys = []config.AppKey{
	{Name: "store", Default: StoreFile, Desc: "Record store: 'file', 'sqlite' or 'mongo'"},
	{Name: "db_file", Default: "db.json", Desc: "json-server style data file for the file store (blank keeps data in memory)"},
	{Name: "sqlite_path", Default: "raizes.db", Desc: "SQLite database path for the sqlite store"},
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "raizes", Desc: "MongoDB database name"},
	{Name: "seed_file", Default: "", Desc: "db.json loaded into a sqlite or mongo store at startup"},
	{Name: "collections", Default: strings.Join(rest.DefaultCollections, ","), Desc: "Comma-separated list of served collections"},
	{Name: "cors_origins", Default: "", Desc: "Comma-separated allowed origins (blank allows any)"},
	{Name: "status_message", Default: rest.DefaultStatusMessage, Desc: "Message returned by GET /api/status"},
}

// LoadConfig loads WAFFLE core config and the backend's own keys.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "RAIZESAPI", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		Store:         strings.ToLower(strings.TrimSpace(appValues.String("store"))),
		DBFile:        strings.TrimSpace(appValues.String("db_file")),
		SQLitePath:    strings.TrimSpace(appValues.String("sqlite_path")),
		MongoURI:      strings.TrimSpace(appValues.String("mongo_uri")),
		MongoDatabase: strings.TrimSpace(appValues.String("mongo_database")),
		SeedFile:      strings.TrimSpace(appValues.String("seed_file")),
		Collections:   splitList(appValues.String("collections")),
		CORSOrigins:   splitList(appValues.String("cors_origins")),
		StatusMessage: appValues.String("status_message"),
	}
	if len(appCfg.Collections) == 0 {
		appCfg.Collections = rest.DefaultCollections
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig rejects an unknown store and incomplete store settings
// before any connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.Store {
	case StoreFile:
	case StoreSQLite:
		if appCfg.SQLitePath == "" {
			return fmt.Errorf("store %q requires sqlite_path", StoreSQLite)
		}
	case StoreMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if appCfg.MongoDatabase == "" {
			return fmt.Errorf("store %q requires mongo_database", StoreMongo)
		}
	default:
		return fmt.Errorf("unknown store %q (want file, sqlite or mongo)", appCfg.Store)
	}

	for _, c := range appCfg.Collections {
		if strings.ContainsAny(c, "/ ") || c == "api" {
			return fmt.Errorf("invalid collection name %q", c)
		}
	}
	return nil
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
