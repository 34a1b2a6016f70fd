package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./locallibrary.db"

	// DefaultDemoDatabasePath is the default path for the bundled demo database
	DefaultDemoDatabasePath = "./demo/demo.db"
)
