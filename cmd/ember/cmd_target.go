package main

import (
	"fmt"
	"os"
	"strings"

	"emberbuild/internal/config"
	"emberbuild/internal/folders"

	"github.com/spf13/cobra"
)

func targetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "target",
		Short: "Show the active target description",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTarget()
			if err != nil {
				return err
			}
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			// The config-file prefix behaves exactly like EMBER_PREFIX.
			if cfg.Prefix != "" && os.Getenv(folders.PrefixEnv) == "" {
				os.Setenv(folders.PrefixEnv, cfg.Prefix)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name:             %s\n", t.Name())
			if t.Description.Version != "" {
				fmt.Fprintf(out, "version:          %s\n", t.Description.Version)
			}
			fmt.Fprintf(out, "toolchain:        %s\n", t.ToolchainFile())
			fmt.Fprintf(out, "resolution order: %s\n", strings.Join(t.DependencyResolutionOrder(), ", "))
			fmt.Fprintf(out, "debug support:    %v\n", t.SupportsDebug())
			fmt.Fprintf(out, "install prefix:   %s\n", folders.Prefix())
			fmt.Fprintf(out, "global modules:   %s\n", folders.GlobalInstallDirectory())
			fmt.Fprintf(out, "global targets:   %s\n", folders.GlobalTargetInstallDirectory())
			return nil
		},
	}
}
