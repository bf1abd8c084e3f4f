package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/docrender/internal/cli"
	"github.com/aretw0/docrender/internal/presentation/graph"
	"github.com/aretw0/docrender/pkg/components"
	"github.com/aretw0/docrender/pkg/output/tree"
)

var outlineCmd = &cobra.Command{
	Use:   "outline [file]",
	Short: "Export the document structure as a Mermaid diagram",
	Long: `Reads a document and outputs a Mermaid diagram (graph TD) of its elements.
Component blocks without a built-in implementation are highlighted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := "-"
		if len(args) > 0 {
			input = args[0]
		}
		doc, err := cli.ReadDocument(input, os.Stdin)
		if err != nil {
			return err
		}

		available := make(map[string]bool)
		for _, name := range components.NewDefaultRegistry[*tree.Node]().Names() {
			available[name] = true
		}
		fmt.Print(graph.GenerateMermaid(doc, &graph.Overlay{Available: available}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}
