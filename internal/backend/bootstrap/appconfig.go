// internal/backend/bootstrap/appconfig.go
package bootstrap

// Store kinds accepted by the "store" key.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
)

// AppConfig holds the configuration of the mock REST backend.
type AppConfig struct {
	// Store selects the persistence: file (json-server style db.json),
	// sqlite, or mongo.
	Store string

	DBFile     string // db.json path for the file store ("" keeps it in memory)
	SQLitePath string // database file for the sqlite store

	// MongoDB connection configuration
	MongoURI      string
	MongoDatabase string

	// SeedFile is a db.json whose records are inserted into a sqlite or
	// mongo store at startup. Ids already present are left alone.
	SeedFile string

	Collections   []string // Served resources
	CORSOrigins   []string // Allowed browser origins (empty allows any)
	StatusMessage string   // Body message of GET /api/status
}
