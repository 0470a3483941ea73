package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"formos/internal/ide"
	"formos/internal/kernel"
	"formos/internal/logic"
)

var compileCmd = &cobra.Command{
	Use:   "compile <form-file>",
	Short: "Design and compile a form source file, printing the manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read form: %w", err)
		}
		app := ide.New(cfg, logger)
		logic.InstallExample(app.KB())

		expr, err := app.Designer(string(src))
		if err != nil {
			return err
		}
		kernels, err := app.Compiler(expr)
		if err != nil {
			return err
		}
		for _, k := range kernels {
			status := "unchanged"
			if k.Changed {
				status = "changed"
			}
			fmt.Printf("%-20s %s %s\n", k.Symbol, k.Hash, status)
		}
		if manifest, ok := app.Namespace().Read(kernel.ManifestPath); ok {
			fmt.Println(manifest)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
}
