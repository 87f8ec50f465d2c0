package main

import (
	"fmt"
	"os"
	"path/filepath"

	"emberbuild/internal/debugger"

	"github.com/spf13/cobra"
)

func debugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug <program>",
		Short: "Launch a debugger for a built program",
		Long: `Debug starts the target's debugger against a program under
build/<target>/, after starting the target's debug server (if it has one)
in the background. Ctrl-C is delivered to the debugger, not to ember;
both processes are shut down when the session ends.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTarget()
			if err != nil {
				return err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			buildDir := filepath.Join(cwd, "build", t.Name())

			m := debugger.NewManager(t, logger)
			diags, err := m.Debug(buildDir, args[0])
			if err != nil {
				return err
			}
			for _, d := range diags {
				logger.Error(d)
			}
			if len(diags) > 0 {
				return fmt.Errorf("debug session failed")
			}
			return nil
		},
	}
}
