package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/sitereg/pkg/config"
	"github.com/doodlesbykumbi/sitereg/pkg/db"
	"github.com/doodlesbykumbi/sitereg/pkg/logging"
	"github.com/doodlesbykumbi/sitereg/pkg/schema"
	gormstore "github.com/doodlesbykumbi/sitereg/pkg/store/gorm"
)

// app holds what a command needs to talk to the database.
type app struct {
	config *config.Config
	logger *zap.Logger
	schema *schema.Schema
	store  *gormstore.Store
}

// openApp loads configuration and connects to the database.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	database, err := db.Connect(db.Config{URL: cfg.DSN(), LogLevel: cfg.LogLevel})
	if err != nil {
		return nil, err
	}

	return &app{
		config: cfg,
		logger: logger,
		schema: schema.New(database, logger),
		store:  gormstore.NewStore(database, logger),
	}, nil
}

func (a *app) Close() {
	_ = a.logger.Sync()
	_ = a.schema.Close()
}
