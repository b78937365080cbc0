package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/sitereg/pkg/db"
	"github.com/doodlesbykumbi/sitereg/pkg/schema"
	gormstore "github.com/doodlesbykumbi/sitereg/pkg/store/gorm"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	Schema      *schema.Schema
	Store       *gormstore.Store
	RawDB       *sql.DB // lib/pq connection for assertions outside GORM
	Container   testcontainers.Container
	DatabaseURL string
	ProjectRoot string
}

// NewTestContext starts a PostgreSQL testcontainer and bootstraps the schema.
// When SITECTL_BINARY points at a built sitectl, the schema is created by
// running "sitectl db migrate" against the container first.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("sitereg_test"),
		tcpostgres.WithUsername("sitereg"),
		tcpostgres.WithPassword("sitereg"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://sitereg:sitereg@%s:%s/sitereg_test?sslmode=disable", host, port.Port())

	if binaryPath := os.Getenv("SITECTL_BINARY"); binaryPath != "" {
		log.Printf("Using binary: %s", binaryPath)
		if err := runBinary(ctx, binaryPath, connStr, "db", "migrate"); err != nil {
			_ = pgContainer.Terminate(ctx)
			return nil, err
		}
	}

	database, err := db.Connect(db.Config{URL: connStr})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	logger := zap.NewNop()
	sch := schema.New(database, logger)
	if err := sch.Bootstrap(ctx); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
	}

	rawDB, err := sql.Open("postgres", connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to open raw connection: %w", err)
	}

	return &TestContext{
		Schema:      sch,
		Store:       gormstore.NewStore(database, logger),
		RawDB:       rawDB,
		Container:   pgContainer,
		DatabaseURL: connStr,
		ProjectRoot: projectRoot,
	}, nil
}

// runBinary runs a sitectl command against the test database.
func runBinary(ctx context.Context, binaryPath, dbURL string, args ...string) error {
	if _, err := os.Stat(binaryPath); err != nil {
		return fmt.Errorf("SITECTL_BINARY path does not exist: %s", binaryPath)
	}

	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Env = append(os.Environ(), "DATABASE_URL="+dbURL)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sitectl %v failed: %w", args, err)
	}
	return nil
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Schema != nil {
		_ = tc.Schema.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}
