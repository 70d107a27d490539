package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sift"
	"github.com/aretw0/sift/internal/logging"
	"github.com/aretw0/sift/internal/playground"
	"github.com/aretw0/sift/pkg/adapters/redis"
)

var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Sift is a schema validation engine for loosely-typed records",
	Long: `Sift validates raw records (form answers, decoded JSON, tool arguments)
against declared schemas and serves the catalog over HTTP, MCP, and the terminal.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("schemas", "", "Definition file or directory to serve (default: built-in demo catalog)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for durable session history (default: in-memory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// newEngine builds the engine every catalog-backed command shares.
// Without --schemas the built-in demo catalog is served; with --redis the
// attempt history survives the process.
func newEngine(cmd *cobra.Command) (*sift.Engine, error) {
	defs, _ := cmd.Flags().GetString("schemas")
	redisAddr, _ := cmd.Flags().GetString("redis")
	debug, _ := cmd.Flags().GetBool("debug")

	opts := []sift.Option{}
	if debug {
		opts = append(opts, sift.WithLogger(logging.New(slog.LevelDebug)))
	}
	if defs == "" {
		opts = append(opts, sift.WithCatalog(playground.Registry()))
	}
	if redisAddr != "" {
		opts = append(opts, sift.WithHistory(redis.New(redisAddr, "", 0)))
	}

	return sift.New(defs, opts...)
}
