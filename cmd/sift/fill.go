package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/sift/internal/cli"
)

// fillCmd represents the fill command
var fillCmd = &cobra.Command{
	Use:   "fill <schema>",
	Short: "Fill a schema interactively",
	Long:  `Prompts for every field of the named schema, validates the answers and prints the outcome.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		session, _ := cmd.Flags().GetString("session")
		jsonMode, _ := cmd.Flags().GetBool("json")

		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing sift: %v\n", err)
			os.Exit(1)
		}

		opts := cli.FillOptions{
			Schema:  args[0],
			Session: session,
			JSON:    jsonMode,
			Banner:  term.IsTerminal(int(os.Stdout.Fd())),
		}
		if err := cli.RunFill(engine, opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fillCmd)

	fillCmd.Flags().String("session", "", "Session ID to record the attempt under")
	fillCmd.Flags().Bool("json", false, "Emit a single JSON verdict (suppresses prompts)")
}
