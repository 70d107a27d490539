package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sift/internal/presentation/doc"
	"github.com/aretw0/sift/internal/presentation/tui"
)

// describeCmd represents the describe command
var describeCmd = &cobra.Command{
	Use:   "describe [schema]",
	Short: "Show schema documentation",
	Long:  `Renders the schema description as Markdown in the terminal. With no argument, lists every schema in the catalog.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jsonMode, _ := cmd.Flags().GetBool("json")

		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing sift: %v\n", err)
			os.Exit(1)
		}

		if len(args) == 0 {
			for _, name := range engine.Schemas() {
				fmt.Println("- " + name)
			}
			return
		}

		desc, err := engine.Describe(args[0])
		if err != nil {
			fmt.Printf("Error describing schema: %v\n", err)
			os.Exit(1)
		}

		if jsonMode {
			data, err := json.MarshalIndent(desc, "", "  ")
			if err != nil {
				fmt.Printf("Error marshaling description: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(data))
			return
		}

		markdown := doc.Markdown(desc)
		render := tui.NewRenderer()
		out, err := render(markdown)
		if err != nil {
			// Plain markdown still reads fine without a terminal renderer.
			out = markdown
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().Bool("json", false, "Print the raw description as JSON")
}
