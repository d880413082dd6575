package main

import (
	"fmt"
	"os"

	"github.com/aretw0/varion"
	mcpAdapter "github.com/aretw0/varion/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [script.va]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Varion as an MCP server over stdio, exposing parse and graph
tools to agent hosts. When a script is given its node list is published as
a resource.`,
	Run: func(cmd *cobra.Command, args []string) {
		var server *mcpAdapter.Server

		path, _ := cmd.Flags().GetString("file")
		if path == "" && len(args) > 0 {
			path = args[0]
		}
		if path != "" {
			engine, err := varion.New(path)
			if err != nil {
				fmt.Printf("Error loading script: %v\n", err)
				os.Exit(1)
			}
			server = mcpAdapter.NewServer(engine.Engine)
		} else {
			server = mcpAdapter.NewServer(nil)
		}

		if err := server.ServeStdio(); err != nil {
			fmt.Printf("MCP server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
