package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// seedWatchCmd represents the seed watch command
var seedWatchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Watch a file and load the fixture it points to when it changes",
	Long: `Watch a file and load a fixture when it changes.

To trigger a load, replace the contents of the watched file with the path
to the fixture. The path must be visible to the process running
"sitectl seed watch".

Example:
  sitectl seed watch /run/sitereg/seed/load`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := watchSeed(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch fixtures: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	seedCmd.AddCommand(seedWatchCmd)
}

func watchSeed(cmd *cobra.Command, filename string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for fixture loads\n", filename)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			content, err := os.ReadFile(filename)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
				continue
			}
			fixturePath := strings.TrimSpace(string(content))
			if fixturePath == "" {
				continue
			}

			fmt.Printf("[%s] Loading fixture %s...\n", time.Now().Format(time.RFC3339), fixturePath)
			result, err := loadFixture(cmd.Context(), a.store, a.logger, fixturePath, false)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading fixture: %v\n", err)
				continue
			}
			printCreated(result)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}
