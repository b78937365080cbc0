// Command sitectl is the operator CLI of the site registry.
//
//	# Create or upgrade the schema
//	sitectl db migrate
//
//	# Load a fixture
//	sitectl seed load fixtures/site.yml
//
//	# Inspect and delete records
//	sitectl record show object 7
//	sitectl record delete complex 1
//
//	# Manage memberships
//	sitectl link add object_employee 7 3
//
// # Environment Variables
//
//   - DATABASE_URL or SITEREG_DB_*: database connection
//   - SITEREG_LOG_LEVEL: logging verbosity
//   - SITEREG_CONFIG_PATH: directory holding sitereg.yml
package main
