package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/docrender/internal/cli"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Render a document file",
	Long: `Renders a JSON or YAML document. Without a file, or with "-", the document is read
as JSON from standard input.

Formats: html (default), markdown, tree (JSON output nodes), terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		logger, err := cfg.Logger()
		if err != nil {
			return err
		}

		opts := cli.RenderOptions{Input: "-"}
		if len(args) > 0 {
			opts.Input = args[0]
		}
		opts.Format, _ = cmd.Flags().GetString("format")
		opts.Components, _ = cmd.Flags().GetBool("components")
		opts.Stats, _ = cmd.Flags().GetBool("stats")
		opts.Width, _ = cmd.Flags().GetInt("width")

		if watch, _ := cmd.Flags().GetBool("watch"); watch {
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()
			return cli.Watch(ctx, os.Stdout, opts, logger)
		}
		return cli.RenderFile(os.Stdout, os.Stdin, opts, logger)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("format", "f", "html", "Output format: html, markdown, tree, terminal")
	renderCmd.Flags().Bool("components", true, "Enable the built-in component blocks")
	renderCmd.Flags().Bool("stats", false, "Print a summary of the document after the output")
	renderCmd.Flags().Int("width", 80, "Word wrap of the terminal format")
	renderCmd.Flags().BoolP("watch", "w", false, "Render again whenever the file changes")
}
