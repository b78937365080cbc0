package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// dbMigrateCmd represents the db migrate command
var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema.

This command runs all pending database migrations to bring the schema
up to date. Running it again on an up to date database does nothing.

Example:
  sitectl db migrate`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrations(cmd); err != nil {
			fmt.Fprintln(os.Stderr, "Migration failed:", err)
			os.Exit(1)
		}
	},
}

var dbMigrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Rollback database migrations",
	Long: `Rollback database migrations.

This command rolls back the specified number of migrations (default: 1).

Example:
  sitectl db down      # Rollback 1 migration
  sitectl db down 3    # Rollback 3 migrations`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		steps := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid number of steps: %s\n", args[0])
				os.Exit(1)
			}
			steps = n
		}

		if err := runMigrationsDown(cmd, steps); err != nil {
			fmt.Fprintln(os.Stderr, "Rollback failed:", err)
			os.Exit(1)
		}
	},
}

var dbMigrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current migration version",
	Long:  `Show the current database migration version.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := showMigrationStatus(cmd); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to get status:", err)
			os.Exit(1)
		}
	},
}

var dbCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check database connectivity",
	Run: func(cmd *cobra.Command, args []string) {
		if err := checkDatabase(cmd); err != nil {
			fmt.Fprintln(os.Stderr, "Database is not reachable:", err)
			os.Exit(1)
		}
		fmt.Println("Database is reachable")
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbMigrateDownCmd)
	dbCmd.AddCommand(dbMigrateStatusCmd)
	dbCmd.AddCommand(dbCheckCmd)
}

func runMigrations(cmd *cobra.Command) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.schema.Bootstrap(cmd.Context()); err != nil {
		return err
	}

	version, _, err := a.schema.Version(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Schema version: %d\n", version)
	return nil
}

func runMigrationsDown(cmd *cobra.Command, steps int) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Printf("Rolling back %d migration(s)...\n", steps)
	if err := a.schema.Rollback(cmd.Context(), steps); err != nil {
		return err
	}

	version, _, err := a.schema.Version(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("Rolled back to version: %d\n", version)
	return nil
}

func showMigrationStatus(cmd *cobra.Command) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	version, dirty, err := a.schema.Version(cmd.Context())
	if err != nil {
		return err
	}
	if version == 0 {
		fmt.Println("No migrations have been applied yet")
		return nil
	}

	fmt.Printf("Current version: %d\n", version)
	if dirty {
		fmt.Println("Warning: Database is in a dirty state")
	}
	return nil
}

func checkDatabase(cmd *cobra.Command) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.store.Health().CheckConnectivity(cmd.Context())
}
