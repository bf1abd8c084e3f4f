package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/docrender"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of docrender",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docrender version %s\n", strings.TrimSpace(docrender.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
