package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sift/internal/compiler"
	"github.com/aretw0/sift/pkg/registry"
	"github.com/aretw0/sift/pkg/schema"
)

var checkCmd = &cobra.Command{
	Use:   "check [file-or-dir]",
	Short: "Check schema definitions for consistency",
	Long:  `Parses and compiles every schema in a YAML/JSON definition file (or a directory of them) and reports definition errors.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		count, err := runCheck(args)
		if err != nil {
			fmt.Printf("Check failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d schema(s) are valid! ✅\n", count)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(args []string) (int, error) {
	var path string
	var err error

	if len(args) > 0 {
		path = args[0]
	} else {
		path, err = os.Getwd()
		if err != nil {
			return 0, err
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	// 1. Parse the definitions
	parser := compiler.NewParser()
	var specs []schema.Spec
	if info.IsDir() {
		specs, err = parser.ParseDir(path)
	} else {
		specs, err = parser.ParseFile(path)
	}
	if err != nil {
		return 0, err
	}

	// 2. Compile through a registry so duplicate names surface too
	reg, err := registry.NewFromSpecs(specs...)
	if err != nil {
		return 0, err
	}

	return len(reg.Names()), nil
}
