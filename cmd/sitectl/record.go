package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
	"github.com/doodlesbykumbi/sitereg/pkg/store"
)

// recordCmd represents the record command
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Inspect and delete records",
	Long: `Inspect and delete records of the registry.

Kinds: ` + strings.Join(model.KindStrings(), ", "),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'record' requires a subcommand (show, list, delete)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(recordCmd)
}

func parseKind(s string) (model.Kind, error) {
	kind, err := model.KindString(s)
	if err != nil {
		return 0, fmt.Errorf("unknown kind %q (expected one of %s)", s, strings.Join(model.KindStrings(), ", "))
	}
	return kind, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// readRecord reads a row of a kind only known at run time.
func readRecord(ctx context.Context, r store.Registry, kind model.Kind, id int64) (interface{}, error) {
	switch kind {
	case model.KindComplex:
		return r.Complexes().Read(ctx, id)
	case model.KindStep:
		return r.Steps().Read(ctx, id)
	case model.KindSpecification:
		return r.Specifications().Read(ctx, id)
	case model.KindObject:
		return r.Objects().Read(ctx, id)
	case model.KindComment:
		return r.Comments().Read(ctx, id)
	case model.KindEmployee:
		return r.Employees().Read(ctx, id)
	case model.KindTrip:
		return r.Trips().Read(ctx, id)
	case model.KindPermitType:
		return r.PermitTypes().Read(ctx, id)
	case model.KindPermit:
		return r.Permits().Read(ctx, id)
	}
	return nil, fmt.Errorf("unsupported kind %s", kind)
}

// listRecords lists the rows of a kind only known at run time.
func listRecords(ctx context.Context, r store.Registry, kind model.Kind) (interface{}, error) {
	switch kind {
	case model.KindComplex:
		return r.Complexes().List(ctx)
	case model.KindStep:
		return r.Steps().List(ctx)
	case model.KindSpecification:
		return r.Specifications().List(ctx)
	case model.KindObject:
		return r.Objects().List(ctx)
	case model.KindComment:
		return r.Comments().List(ctx)
	case model.KindEmployee:
		return r.Employees().List(ctx)
	case model.KindTrip:
		return r.Trips().List(ctx)
	case model.KindPermitType:
		return r.PermitTypes().List(ctx)
	case model.KindPermit:
		return r.Permits().List(ctx)
	}
	return nil, fmt.Errorf("unsupported kind %s", kind)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
