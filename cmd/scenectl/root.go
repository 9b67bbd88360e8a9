package main

import "github.com/spf13/cobra"

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scenectl",
	Short: "scenectl inspects and drives scenecore graphics scenes from the command line.",
	Long: `scenectl loads the JSON scene documents the core persists (spec §6) and
exercises them without a host editor: render a frame's draw-call log,
validate a scene file's structural invariants, or watch a scene file on
disk and re-validate it on every edit.`,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(watchCmd)
}
