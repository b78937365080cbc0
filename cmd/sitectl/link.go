package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doodlesbykumbi/sitereg/pkg/model"
)

// linkCmd represents the link command
var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Manage membership links",
	Long: `Manage rows of the membership tables.

Associations (left, right):
  object_employee  (object, employee)
  trip_object      (trip, object)
  trip_employee    (trip, employee)`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'link' requires a subcommand (add, remove, list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var linkAddCmd = &cobra.Command{
	Use:   "add <association> <left-id> <right-id>",
	Short: "Add a pair to a membership table",
	Long: `Add a pair to a membership table. Adding a pair that is already present
fails.

Example:
  sitectl link add object_employee 7 3`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := changeLink(cmd, args, true); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add link: %v\n", err)
			os.Exit(1)
		}
	},
}

var linkRemoveCmd = &cobra.Command{
	Use:   "remove <association> <left-id> <right-id>",
	Short: "Remove a pair from a membership table",
	Long: `Remove a pair from a membership table. Removing an absent pair succeeds.

Example:
  sitectl link remove trip_employee 2 3`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := changeLink(cmd, args, false); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to remove link: %v\n", err)
			os.Exit(1)
		}
	},
}

var linkListCmd = &cobra.Command{
	Use:   "list <association> <left-id>",
	Short: "List the right-hand ids linked to a left-hand id",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := listLinks(cmd, args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list links: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
	linkCmd.AddCommand(linkAddCmd)
	linkCmd.AddCommand(linkRemoveCmd)
	linkCmd.AddCommand(linkListCmd)
}

func changeLink(cmd *cobra.Command, args []string, add bool) error {
	assoc, err := model.AssociationByName(args[0])
	if err != nil {
		return err
	}
	left, err := parseID(args[1])
	if err != nil {
		return err
	}
	right, err := parseID(args[2])
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	links := a.store.Links()
	if add {
		err = links.Link(cmd.Context(), assoc, left, right)
	} else {
		err = links.Unlink(cmd.Context(), assoc, left, right)
	}
	if err != nil {
		return err
	}

	a.logger.Info("link updated",
		zap.Stringer("association", assoc),
		zap.Int64(assoc.LeftColumn, left),
		zap.Int64(assoc.RightColumn, right),
		zap.Bool("added", add),
	)
	return nil
}

func listLinks(cmd *cobra.Command, name, leftArg string) error {
	assoc, err := model.AssociationByName(name)
	if err != nil {
		return err
	}
	left, err := parseID(leftArg)
	if err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ids, err := a.store.Links().Rights(cmd.Context(), assoc, left)
	if err != nil {
		return err
	}

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprint(id))
	}
	fmt.Println(strings.Join(parts, "\n"))
	return nil
}
