package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/docrender/internal/cli"
	"github.com/aretw0/docrender/internal/validator"
	"github.com/aretw0/docrender/pkg/components"
	"github.com/aretw0/docrender/pkg/output/tree"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a document for nodes that would not render as written",
	Long: `Reads a document and reports headings out of range, malformed code blocks,
links without href, bad prop paths, and component blocks that are unknown or whose
props do not match their schema.
Pass --components=false to skip the component check.`,
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

		var opts validator.Options
		if check, _ := cmd.Flags().GetBool("components"); check {
			registry := components.NewDefaultRegistry[*tree.Node]()
			opts.Components = make(map[string]bool)
			for _, name := range registry.Names() {
				opts.Components[name] = true
			}
			opts.Schemas = registry.Schemas()
		}
		if err := validator.ValidateDocument(doc, opts); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Document is valid! ✅")
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("components", true, "Check component blocks against the built-in components and their prop schemas")
	rootCmd.AddCommand(validateCmd)
}
