package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/docrender/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "docrender",
	Short: "docrender renders rich-text document trees",
	Long: `docrender turns serialized rich-text documents (JSON or YAML node trees) into
HTML, Markdown or terminal output, and stores them in memory, Redis or a directory.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory of the document store (env "+cli.EnvStoreDir+")")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address of the document store (env "+cli.EnvRedisAddr+")")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database (env "+cli.EnvRedisDB+")")
	rootCmd.PersistentFlags().String("redis-prefix", "", "Key prefix in Redis")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (env "+cli.EnvLogLevel+")")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// loadConfig returns the environment configuration overridden by explicitly set flags.
func loadConfig(cmd *cobra.Command) cli.Config {
	cfg := cli.ConfigFromEnv()
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir, _ = flags.GetString("dir")
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("redis-db") {
		cfg.RedisDB, _ = flags.GetInt("redis-db")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	cfg.RedisPrefix, _ = flags.GetString("redis-prefix")
	cfg.Debug, _ = flags.GetBool("debug")
	return cfg
}
