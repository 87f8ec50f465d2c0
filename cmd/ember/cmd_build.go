package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"emberbuild/internal/builder"
	"emberbuild/internal/config"
	"emberbuild/internal/fsutil"
	"emberbuild/internal/procutil"
	"emberbuild/internal/watcher"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func buildCmd() *cobra.Command {
	var (
		generatorName string
		releaseBuild  bool
		debugBuild    bool
		generateOnly  bool
		watch         bool
	)

	cmd := &cobra.Command{
		Use:   "build [-- extra build args]",
		Short: "Configure and build the current component for the active target",
		Long: `Build runs the configure tool and the selected generator's build command
in build/<target>/, reporting every failed step. Steps are attempted
independently, so a configure failure does not suppress build-step
diagnostics. Arguments after -- are passed to the build tool verbatim.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTarget()
			if err != nil {
				return err
			}
			cfg, err := config.Load(".")
			if err != nil {
				return err
			}

			if generatorName == "" {
				generatorName = cfg.Build.Generator
			}
			gen := builder.DefaultGenerator()
			if generatorName != "" {
				if gen, err = builder.ParseGenerator(generatorName); err != nil {
					return err
				}
			}
			release := cfg.Build.Release
			if cmd.Flags().Changed("release") {
				release = releaseBuild
			}
			if debugBuild {
				release = false
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			buildDir := filepath.Join(cwd, "build", t.Name())
			if err := fsutil.MkDirP(buildDir); err != nil {
				return fmt.Errorf("create build directory: %w", err)
			}

			if generateOnly {
				logger.Debug("generate-only build, skipping configure and build steps")
				return nil
			}

			b := builder.New(t.Name(), procutil.NewRunner(logger), logger)
			opts := builder.Options{
				Generator:      gen,
				ReleaseBuild:   release,
				ExtraBuildArgs: append(cfg.Build.ExtraArgs, args...),
			}
			component := filepath.Base(cwd)

			runOnce := func() int {
				diags, err := b.Build(buildDir, component, opts)
				if err != nil {
					logger.Error("build aborted", zap.Error(err))
					return 1
				}
				for _, d := range diags {
					logger.Error(d)
				}
				return len(diags)
			}

			if watch {
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()
				runOnce()
				root := cwd
				if info, serr := os.Stat(filepath.Join(cwd, "source")); serr == nil && info.IsDir() {
					root = filepath.Join(cwd, "source")
				}
				err := watcher.Run(ctx, root, 0, func() { runOnce() }, logger)
				if err != nil && ctx.Err() == nil {
					return err
				}
				return nil
			}

			if n := runOnce(); n > 0 {
				return fmt.Errorf("build failed with %d error(s)", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&generatorName, "cmake-generator", "G", "", "CMake generator to configure with")
	cmd.Flags().BoolVarP(&releaseBuild, "release", "r", false, "build with optimisation and debug info (RelWithDebInfo); this is the default unless .ember.yaml disables it")
	cmd.Flags().BoolVarP(&debugBuild, "debug-build", "d", false, "build without optimisation (Debug)")
	cmd.Flags().BoolVarP(&generateOnly, "generate-only", "g", false, "prepare the build directory but don't run the configure tool or build")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rebuild whenever component sources change")

	return cmd
}
