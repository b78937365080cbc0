// Package db embeds the versioned SQL migrations of the registry schema.
package db

import "embed"

// Migrations holds migrations/*.sql in golang-migrate naming
// ({version}_{title}.up.sql / .down.sql).
//
//go:embed migrations/*.sql
var Migrations embed.FS
