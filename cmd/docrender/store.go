package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/docrender/internal/cli"
	"github.com/aretw0/docrender/pkg/domain"
)

var pushCmd = &cobra.Command{
	Use:   "push <id> <file>",
	Short: "Save a document file in the store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		logger, err := cfg.Logger()
		if err != nil {
			return err
		}
		doc, err := cli.ReadDocument(args[1], os.Stdin)
		if err != nil {
			return err
		}

		store, closeStore, err := cli.OpenStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		title, _ := cmd.Flags().GetString("title")
		rec := &domain.Record{ID: args[0], Title: title, Document: doc}
		if err := store.Save(cmd.Context(), rec); err != nil {
			return err
		}
		fmt.Printf("Saved %q (%s)\n", rec.ID, rec.Title)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		logger, err := cfg.Logger()
		if err != nil {
			return err
		}
		store, closeStore, err := cli.OpenStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		ids, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a document from the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		logger, err := cfg.Logger()
		if err != nil {
			return err
		}
		store, closeStore, err := cli.OpenStore(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()
		return store.Delete(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(pushCmd, listCmd, deleteCmd)
	pushCmd.Flags().String("title", "", "Document title (default: first heading)")
}
