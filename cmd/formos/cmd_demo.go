package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"formos/internal/glyph"
	"formos/internal/ide"
	"formos/internal/kernel"
	"formos/internal/logic"
)

const demoForm = `(widget (button ok) (textbox name))`

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the end-to-end designer/compiler/runtime demonstration",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := ide.New(cfg, logger)
		logic.InstallExample(app.KB())

		expr, err := app.Designer(demoForm)
		if err != nil {
			return err
		}
		if _, err := app.Compiler(expr); err != nil {
			return err
		}
		app.Runtime()
		defer func() {
			if err := app.Stop(); err != nil {
				logger.Warn("stop", zap.Error(err))
			}
		}()

		ns := app.Namespace()
		ns.Send("(button ok click)")
		ns.Send("(textbox name focus)")
		time.Sleep(250 * time.Millisecond)

		for _, ev := range ns.Events() {
			fmt.Printf("EVENT %s: %s\n", ev.Kind, ev.Detail)
		}
		if last, ok := ns.Read(kernel.LastMessagePath); ok {
			fmt.Println("Last path:", last)
		}
		if manifest, ok := ns.Read(kernel.ManifestPath); ok {
			fmt.Println("Manifest:")
			fmt.Println(manifest)
		}
		if raw, ok := ns.Read(kernel.DrawPath); ok {
			if bitmap, ok := raw.([][]int); ok {
				conv := glyph.Convolve(bitmap, nil)
				if len(conv) > 3 {
					conv = conv[:3]
				}
				fmt.Println("Convolution sample:", conv)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
