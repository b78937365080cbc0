package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// recordShowCmd represents the record show command
var recordShowCmd = &cobra.Command{
	Use:   "show <kind> <id>",
	Short: "Print a record as JSON",
	Long: `Print a record as JSON.

Example:
  sitectl record show object 7`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := showRecord(cmd, args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show record: %v\n", err)
			os.Exit(1)
		}
	},
}

var recordListCmd = &cobra.Command{
	Use:   "list <kind>",
	Short: "Print all records of a kind as JSON",
	Long: `Print all records of a kind as JSON, ordered by id.

Example:
  sitectl record list employee`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := listRecordsOfKind(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list records: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	recordCmd.AddCommand(recordShowCmd)
	recordCmd.AddCommand(recordListCmd)
}

func showRecord(cmd *cobra.Command, kindArg, idArg string) error {
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

	record, err := readRecord(cmd.Context(), a.store, kind, id)
	if err != nil {
		return err
	}
	return printJSON(record)
}

func listRecordsOfKind(cmd *cobra.Command, kindArg string) error {
	kind, err := parseKind(kindArg)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	records, err := listRecords(cmd.Context(), a.store, kind)
	if err != nil {
		return err
	}
	return printJSON(records)
}
