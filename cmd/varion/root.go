package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "varion",
	Short: "Varion is an authoring toolchain for branching narrative scripts",
	Long: `Varion parses, validates and plays .va branching narrative scripts.

A script is a sequence of named nodes with display text, tags and either an
explicit @next continuation or a list of player-facing choices.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "Path to the .va script file")
}

// scriptPath resolves the script location from the --file flag or the first
// positional argument.
func scriptPath(cmd *cobra.Command, args []string) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return "", fmt.Errorf("no script given (use --file or pass a path)")
	}
	return path, nil
}
