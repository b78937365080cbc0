// Package config loads the database connection descriptor and logging
// settings of sitereg.
//
// # Configuration Sources
//
// Values are layered, later sources winning:
//
//   - Built-in defaults
//   - $SITEREG_CONFIG_PATH/sitereg.yml (default /etc/sitereg/sitereg.yml)
//   - Environment variables
//
// # Environment Variables
//
//   - SITEREG_DB_HOST, SITEREG_DB_PORT, SITEREG_DB_USER, SITEREG_DB_PASSWORD
//   - SITEREG_DB_NAME, SITEREG_DB_SSLMODE
//   - DATABASE_URL: full connection string, overrides the fields above
//   - SITEREG_LOG_LEVEL: debug, info, warn or error
//
// The loaded Config records the source of every attribute, which
// `sitectl configuration show` prints.
package config
