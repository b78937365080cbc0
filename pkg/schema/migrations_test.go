package schema

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/sitereg/db"
	"github.com/doodlesbykumbi/sitereg/pkg/model"
)

var createTable = regexp.MustCompile(`CREATE TABLE IF NOT EXISTS (\w+)`)

func TestMigrationsCreateEveryTable(t *testing.T) {
	files, err := fs.Glob(db.Migrations, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	created := map[string]bool{}
	for _, name := range files {
		body, err := fs.ReadFile(db.Migrations, name)
		require.NoError(t, err)
		for _, m := range createTable.FindAllStringSubmatch(string(body), -1) {
			created[m[1]] = true
		}

		down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
		_, err = fs.Stat(db.Migrations, down)
		assert.NoError(t, err, "missing %s", down)
	}

	for _, k := range model.KindValues() {
		assert.True(t, created[k.Table().Name], "table %s", k.Table().Name)
	}
	for _, a := range model.Associations() {
		assert.True(t, created[a.Table.Name], "table %s", a.Table.Name)
	}
}

func TestMigrationsHaveNoCascadingForeignKeys(t *testing.T) {
	files, err := fs.Glob(db.Migrations, "migrations/*.up.sql")
	require.NoError(t, err)

	for _, name := range files {
		body, err := fs.ReadFile(db.Migrations, name)
		require.NoError(t, err)
		assert.NotContains(t, strings.ToUpper(string(body)), "ON DELETE CASCADE", name)
	}
}

func TestMigrationsHaveNoUniqueConstraints(t *testing.T) {
	files, err := fs.Glob(db.Migrations, "migrations/*.up.sql")
	require.NoError(t, err)

	for _, name := range files {
		body, err := fs.ReadFile(db.Migrations, name)
		require.NoError(t, err)
		assert.NotContains(t, strings.ToUpper(string(body)), "UNIQUE", name)
	}
}

func TestSpecificationSignatureIsNullable(t *testing.T) {
	body, err := fs.ReadFile(db.Migrations, "migrations/20240301000001_create_reference_tables.up.sql")
	require.NoError(t, err)

	column := regexp.MustCompile(`(?m)^\s*signature boolean(.*)$`).FindStringSubmatch(string(body))
	require.NotNil(t, column)
	assert.NotContains(t, strings.ToUpper(column[1]), "NOT NULL")
}
