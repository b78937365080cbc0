package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// recordDeleteCmd represents the record delete command
var recordDeleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete a record and everything depending on it",
	Long: `Delete a record and, in the same transaction, every record that depends
on it. The number of removed rows per table is printed.

Deleting a complex removes its objects together with their comments,
permits and memberships. Employees and trips are kept.

Example:
  sitectl record delete complex 1`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := deleteRecord(cmd, args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete record: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	recordCmd.AddCommand(recordDeleteCmd)
}

func deleteRecord(cmd *cobra.Command, kindArg, idArg string) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}
	id, err := parseID(idArg)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.store.Delete(cmd.Context(), kind, id)
	if err != nil {
		return err
	}
	a.logger.Info("record deleted", zap.Stringer("kind", kind), zap.Int64("id", id), zap.Int64("rows", report.Total()))

	tables := make([]string, 0, len(report))
	for table := range report {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	fmt.Printf("%-20s %s\n", "TABLE", "REMOVED")
	for _, table := range tables {
		fmt.Printf("%-20s %d\n", table, report[table])
	}
	return nil
}
