package main

import (
	"fmt"
	"os"

	"github.com/aretw0/varion"
	"github.com/aretw0/varion/pkg/script"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [script.va]",
	Short: "Check a script for errors",
	Long: `Parses the script and reports every problem found in one pass:
lexical errors, duplicate node ids, @next/choice conflicts and dangling
targets. Exits non-zero when the script is invalid.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := scriptPath(cmd, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		graph, err := varion.ParseFile(path)
		if err != nil {
			if list, ok := script.AsErrorList(err); ok {
				fmt.Printf("%s: %d error(s)\n", path, len(list.Errors))
				for _, e := range list.Errors {
					fmt.Printf("  - %s\n", e)
				}
			} else {
				fmt.Printf("Validation failed: %v\n", err)
			}
			os.Exit(1)
		}

		fmt.Printf("Script is valid! %d node(s), entry %q ✅\n", graph.Len(), graph.Entry())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
