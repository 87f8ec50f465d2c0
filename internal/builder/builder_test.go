package builder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeRunner records every command and fails the ones named in fail,
// keyed by the command's first token.
type fakeRunner struct {
	calls [][]string
	dirs  []string
	fail  map[string]string
	err   error
}

func (f *fakeRunner) Run(cmd []string, dir string) (string, error) {
	f.calls = append(f.calls, cmd)
	f.dirs = append(f.dirs, dir)
	if f.err != nil {
		return "", f.err
	}
	if diag, ok := f.fail[cmd[0]]; ok {
		return diag, nil
	}
	return "", nil
}

func newTestBuilder(runner CommandRunner, goos string) *Builder {
	b := New("frdm-k64f-gcc", runner, zap.NewNop())
	b.goos = goos
	return b
}

func TestBuildCommandPlanning(t *testing.T) {
	t.Run("configure then direct ninja invocation", func(t *testing.T) {
		f := &fakeRunner{}
		b := newTestBuilder(f, "linux")
		diags, err := b.Build("/b", "app", Options{Generator: Ninja, ExtraBuildArgs: []string{"-j4"}})
		require.NoError(t, err)
		assert.Empty(t, diags)
		require.Len(t, f.calls, 2)
		assert.Equal(t, []string{"cmake", "-D", "CMAKE_BUILD_TYPE=Debug", "-G", "Ninja", "."}, f.calls[0])
		assert.Equal(t, []string{"ninja", "-j4"}, f.calls[1])
		assert.Equal(t, []string{"/b", "/b"}, f.dirs)
	})

	t.Run("release build selects RelWithDebInfo", func(t *testing.T) {
		f := &fakeRunner{}
		b := newTestBuilder(f, "linux")
		_, err := b.Build("/b", "app", Options{Generator: UnixMakefiles, ReleaseBuild: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"cmake", "-D", "CMAKE_BUILD_TYPE=RelWithDebInfo", "-G", "Unix Makefiles", "."}, f.calls[0])
		assert.Equal(t, []string{"make"}, f.calls[1])
	})

	t.Run("IDE generators fall back to the generic build mode", func(t *testing.T) {
		f := &fakeRunner{}
		b := newTestBuilder(f, "darwin")
		_, err := b.Build("/b", "app", Options{Generator: Xcode, ExtraBuildArgs: []string{"--", "-quiet"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"cmake", "--build", "/b", "--", "-quiet"}, f.calls[1])
	})

	t.Run("empty generator uses the host default", func(t *testing.T) {
		f := &fakeRunner{}
		b := newTestBuilder(f, "windows")
		_, err := b.Build(t.TempDir(), "app", Options{})
		require.NoError(t, err)
		assert.Contains(t, f.calls[0], "Ninja")
	})
}

func TestBuildStepIndependence(t *testing.T) {
	t.Run("configure failure does not suppress the build step", func(t *testing.T) {
		f := &fakeRunner{fail: map[string]string{
			"cmake": "command cmake failed",
			"ninja": "command ninja failed",
		}}
		b := newTestBuilder(f, "linux")
		diags, err := b.Build("/b", "app", Options{Generator: Ninja})
		require.NoError(t, err)
		assert.Equal(t, []string{"command cmake failed", "command ninja failed"}, diags)
		assert.Len(t, f.calls, 2, "both steps must be attempted")
	})

	t.Run("build failure alone still surfaces", func(t *testing.T) {
		f := &fakeRunner{fail: map[string]string{"make": "command make failed"}}
		b := newTestBuilder(f, "linux")
		diags, err := b.Build("/b", "app", Options{Generator: UnixMakefiles})
		require.NoError(t, err)
		assert.Equal(t, []string{"command make failed"}, diags)
	})

	t.Run("fatal runner errors propagate", func(t *testing.T) {
		f := &fakeRunner{err: errors.New("boom")}
		b := newTestBuilder(f, "linux")
		_, err := b.Build("/b", "app", Options{Generator: Ninja})
		assert.Error(t, err)
	})
}

func TestBuildPatchGating(t *testing.T) {
	const original = "flags = -DV=\\\"1\\\" -Ic:\\inc\n"

	writeBuildFile := func(t *testing.T) string {
		t.Helper()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "build.ninja"), []byte(original), 0o644))
		return dir
	}

	t.Run("ninja on windows patches the build file", func(t *testing.T) {
		dir := writeBuildFile(t)
		b := newTestBuilder(&fakeRunner{}, "windows")
		_, err := b.Build(dir, "app", Options{Generator: Ninja})
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "build.ninja"))
		require.NoError(t, err)
		assert.Equal(t, "flags = -DV=\\\"1\\\" -Ic:/inc\n", string(data))
	})

	t.Run("ninja elsewhere leaves the file untouched", func(t *testing.T) {
		dir := writeBuildFile(t)
		b := newTestBuilder(&fakeRunner{}, "linux")
		_, err := b.Build(dir, "app", Options{Generator: Ninja})
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "build.ninja"))
		require.NoError(t, err)
		assert.Equal(t, original, string(data))
	})

	t.Run("other generators on windows leave the file untouched", func(t *testing.T) {
		dir := writeBuildFile(t)
		b := newTestBuilder(&fakeRunner{}, "windows")
		_, err := b.Build(dir, "app", Options{Generator: UnixMakefiles})
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "build.ninja"))
		require.NoError(t, err)
		assert.Equal(t, original, string(data))
	})

	t.Run("patch failure is a diagnostic and the build step still runs", func(t *testing.T) {
		dir := t.TempDir() // no build.ninja
		f := &fakeRunner{}
		b := newTestBuilder(f, "windows")
		diags, err := b.Build(dir, "app", Options{Generator: Ninja})
		require.NoError(t, err)
		require.Len(t, diags, 1)
		assert.Contains(t, diags[0], "unable to update")
		assert.Contains(t, diags[0], "build.ninja")
		assert.Len(t, f.calls, 2, "build step must run despite the failed patch")
	})
}

func TestBuildHint(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	b := New("frdm-k64f-gcc", &fakeRunner{}, zap.New(core))
	b.goos = "darwin"

	_, err := b.Build("/b", "blinky", Options{Generator: Xcode})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "build/frdm-k64f-gcc/blinky.xcodeproj")
}

func TestParseGenerator(t *testing.T) {
	g, err := ParseGenerator("Sublime Text 2 - Ninja")
	require.NoError(t, err)
	assert.Equal(t, SublimeNinja, g)

	_, err = ParseGenerator("MSBuild")
	assert.Error(t, err)
}

func TestDefaultGeneratorPerOS(t *testing.T) {
	assert.Equal(t, Ninja, defaultGeneratorFor("windows"))
	assert.Equal(t, UnixMakefiles, defaultGeneratorFor("linux"))
	assert.Equal(t, UnixMakefiles, defaultGeneratorFor("darwin"))
}
