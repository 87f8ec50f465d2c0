// Package builder plans and drives the configure+build sequence for a
// component: it decides which commands to run for the chosen generator,
// runs them, and collects one diagnostic per failed step.
package builder

import (
	"fmt"
	"path/filepath"
	"runtime"

	"emberbuild/internal/procutil"

	"go.uber.org/zap"
)

// CommandRunner executes one external command in a working directory and
// returns a diagnostic for reportable failures. Satisfied by
// *procutil.Runner.
type CommandRunner interface {
	Run(cmd []string, dir string) (string, error)
}

// Options configures one build run.
type Options struct {
	// Generator selects the CMake generator; DefaultGenerator() when empty.
	Generator Generator

	// ReleaseBuild selects RelWithDebInfo instead of Debug.
	ReleaseBuild bool

	// ExtraBuildArgs are appended verbatim to the build-step command.
	ExtraBuildArgs []string
}

// Builder runs builds for one target.
type Builder struct {
	targetName string
	runner     CommandRunner
	log        *zap.Logger

	// goos is the host OS the planner assumes. Overridable in tests.
	goos string
}

// New returns a Builder for the named target.
func New(targetName string, runner CommandRunner, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		targetName: targetName,
		runner:     runner,
		log:        log,
		goos:       runtime.GOOS,
	}
}

// Build configures and builds the component in buildDir, returning one
// diagnostic per failed step. The steps are attempted independently: a
// failed configure may still leave a previously-successful build usable,
// so the build step runs regardless of earlier failures and every failure
// is surfaced in a single pass. An empty result means full success.
func (b *Builder) Build(buildDir, component string, opts Options) ([]string, error) {
	var diags []string

	gen := opts.Generator
	if gen == "" {
		gen = defaultGeneratorFor(b.goos)
	}
	buildType := "Debug"
	if opts.ReleaseBuild {
		buildType = "RelWithDebInfo"
	}

	configure := []string{
		procutil.ConfigureTool,
		"-D", "CMAKE_BUILD_TYPE=" + buildType,
		"-G", string(gen),
		".",
	}
	diag, err := b.runner.Run(configure, buildDir)
	if err != nil {
		return diags, err
	}
	if diag != "" {
		diags = append(diags, diag)
	}

	// The Ninja generator emits back-slashed paths that break on Windows
	// when arguments are read from an @file, where '\' is treated as an
	// escape. Rewrite the generated build file before invoking the build.
	if gen == Ninja && b.goos == "windows" {
		b.log.Debug("converting back-slashes in build.ninja to forward-slashes")
		buildFile := filepath.Join(buildDir, "build.ninja")
		if perr := PatchNinjaBuildFile(buildFile); perr != nil {
			diags = append(diags, fmt.Sprintf("unable to update %q: %v", buildFile, perr))
		}
	}

	build := OverrideBuildCommand(gen)
	if build == nil {
		build = []string{procutil.ConfigureTool, "--build", buildDir}
	}
	build = append(build[:len(build):len(build)], opts.ExtraBuildArgs...)
	diag, err = b.runner.Run(build, buildDir)
	if err != nil {
		return diags, err
	}
	if diag != "" {
		diags = append(diags, diag)
	}

	if hint := HintForGenerator(gen, b.targetName, component); hint != "" {
		b.log.Info(hint)
	}
	return diags, nil
}
