// Command formos is the CLI front end for the form pipeline: design a
// form, compile it into kernels, and exercise the background runtime.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"formos/internal/config"
	"formos/internal/logging"
)

var (
	cfgPath   string
	debugMode bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "formos",
	Short: "Symbolic form pipeline: designer, compiler, runtime",
	Long: `formos parses S-expression forms, compiles their symbols into
content-addressed kernel artifacts with a dependency proof tree, and runs
a background loop routing messages through a virtual namespace.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.DefaultConfig()
		if cfgPath != "" {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if debugMode {
			cfg.Logging.Level = "debug"
			cfg.Logging.Debug = true
		}
		var err error
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config YAML")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
