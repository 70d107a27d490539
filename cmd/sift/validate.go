package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sift"
	"github.com/aretw0/sift/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema> [file]",
	Short: "Validate a JSON record against a schema",
	Long: `Reads a JSON record from a file (or stdin) and validates it against the
named schema, printing the verdict as JSON. Exits 1 when the record is rejected.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		session, _ := cmd.Flags().GetString("session")

		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Error initializing sift: %v\n", err)
			os.Exit(1)
		}

		ok, err := runValidate(cmd.Context(), engine, args, session)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("session", "", "Session ID to record the attempt under")
}

func runValidate(ctx context.Context, engine *sift.Engine, args []string, session string) (bool, error) {
	var data []byte
	var err error

	if len(args) > 1 {
		data, err = os.ReadFile(args[1])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return false, err
	}

	// Numbers stay json.Number so integer input survives strict fields.
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return false, fmt.Errorf("invalid record JSON: %w", err)
	}

	res, verr := engine.Validate(ctx, session, args[0], raw)
	issues := schema.AsIssues(verr)
	if verr != nil && issues == nil {
		return false, verr
	}

	verdict := map[string]any{"ok": len(issues) == 0}
	if len(issues) > 0 {
		verdict["errors"] = issues
	} else {
		verdict["record"] = res.Values
		verdict["wire"] = res.DumpWire()
		verdict["computed"] = res.Computed
	}

	out, err := json.MarshalIndent(verdict, "", "  ")
	if err != nil {
		return false, err
	}
	fmt.Println(string(out))

	return len(issues) == 0, nil
}
