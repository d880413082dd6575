package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/varion"
	"github.com/aretw0/varion/pkg/script"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export [script.va]",
	Short: "Export the parsed graph as JSON or YAML",
	Long:  `Parses the script and writes the validated node graph to stdout, for downstream runtimes that do not embed the parser.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := scriptPath(cmd, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		format, _ := cmd.Flags().GetString("format")

		g, err := varion.ParseFile(path)
		if err != nil {
			fmt.Printf("Error parsing script: %v\n", err)
			os.Exit(1)
		}

		doc := struct {
			Entry string         `json:"entry" yaml:"entry"`
			Nodes []*script.Node `json:"nodes" yaml:"nodes"`
		}{Entry: g.Entry(), Nodes: g.Nodes()}

		switch format {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(doc); err != nil {
				fmt.Printf("Error encoding graph: %v\n", err)
				os.Exit(1)
			}
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			if err := enc.Encode(doc); err != nil {
				fmt.Printf("Error encoding graph: %v\n", err)
				os.Exit(1)
			}
		default:
			fmt.Printf("Unknown format %q (want json or yaml)\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("format", "json", "Output format: json or yaml")
}
