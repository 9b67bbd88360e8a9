package main

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <scene.json>",
	Short: "Re-runs validate every time the scene file changes on disk.",
	Long: `Watches a single scene file with fsnotify and re-validates it on every
write, a lightweight stand-in for an editor's hot-reload loop when
iterating on a scene file outside a host application.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}

	validateOnce := func() {
		if err := runValidate(cmd, args); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s (ctrl-c to stop)\n", path)
	validateOnce()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			validateOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "watch error:", err)
		}
	}
}
