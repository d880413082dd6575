package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/varion"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of varion",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("varion version %s\n", strings.TrimSpace(varion.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
