package main

import (
	"fmt"
	"os"

	"emberbuild/internal/config"
	"emberbuild/internal/target"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose   bool
	targetDir string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ember",
	Short: "ember - build and debug tool for embedded components",
	Long: `ember drives the configure+build toolchain for an embedded component and
its dependencies, and launches interactive debug sessions against built
programs.

The active target is described by a target.json file (toolchain, debug
commands, optional debug server); ember supervises the external tools the
target names and reports their failures as diagnostics.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = buildLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&targetDir, "target-dir", ".", "directory containing the target description (target.json)")

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(debugCmd())
	rootCmd.AddCommand(targetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadTarget loads the active target description from --target-dir.
func loadTarget() (*target.Target, error) {
	return target.Load(targetDir)
}

// buildLogger constructs the process logger. Debug logging is enabled by
// the --verbose flag, or by logging.verbose in .ember.yaml when the flag
// is not passed.
func buildLogger(verbose bool) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	logCfg.Encoding = "console"
	logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if !verbose {
		if cfg, err := config.Load("."); err == nil && cfg.Logging.Verbose {
			verbose = true
		}
	}
	if verbose {
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return logCfg.Build()
}
