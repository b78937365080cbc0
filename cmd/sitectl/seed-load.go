package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/sitereg/pkg/seed"
	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

// seedLoadCmd represents the seed load command
var seedLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a fixture file",
	Long: `Load a fixture file in a single transaction. If any record is rejected,
nothing is stored.

Example:
  sitectl seed load fixtures/site.yml
  sitectl seed load --dry-run fixtures/site.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		if err := runSeedLoad(cmd, args[0], dryRun); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load fixture: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	seedCmd.AddCommand(seedLoadCmd)
	seedLoadCmd.Flags().Bool("dry-run", false, "Validate the fixture without storing it")
}

func runSeedLoad(cmd *cobra.Command, path string, dryRun bool) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := loadFixture(cmd.Context(), a.store, a.logger, path, dryRun)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println("Dry run: fixture is valid, nothing was stored")
	}
	printCreated(result)
	return nil
}

func loadFixture(ctx context.Context, registry store.Registry, logger *zap.Logger, path string, dryRun bool) (*seed.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return seed.NewLoader(registry, logger).WithDryRun(dryRun).LoadFromReader(ctx, file)
}

func printCreated(result *seed.Result) {
	tables := make([]string, 0, len(result.Created))
	for table := range result.Created {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	fmt.Printf("%-20s %s\n", "TABLE", "CREATED")
	for _, table := range tables {
		fmt.Printf("%-20s %d\n", table, result.Created[table])
	}
}
