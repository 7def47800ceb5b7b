package config

// DefaultDatabasePath is the default path for the daemon's storage
// database. The task queue derives its own "-tasks" sibling from it.
const DefaultDatabasePath = "./lexhover.db"
