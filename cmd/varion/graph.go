package main

import (
	"fmt"
	"os"

	"github.com/aretw0/varion"
	"github.com/aretw0/varion/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [script.va]",
	Short: "Export the script graph visualization",
	Long:  `Parses the script and outputs a Mermaid diagram (graph TD) of its nodes, continuations and choices.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := scriptPath(cmd, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		g, err := varion.ParseFile(path)
		if err != nil {
			fmt.Printf("Error parsing script: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(g))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
