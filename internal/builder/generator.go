package builder

import (
	"fmt"
	"runtime"
)

// Generator identifies the CMake generator used for the configure step.
type Generator string

// Recognized generators.
const (
	UnixMakefiles    Generator = "Unix Makefiles"
	Ninja            Generator = "Ninja"
	Xcode            Generator = "Xcode"
	SublimeNinja     Generator = "Sublime Text 2 - Ninja"
	SublimeMakefiles Generator = "Sublime Text 2 - Unix Makefiles"
)

// Generators lists every recognized generator choice.
func Generators() []Generator {
	return []Generator{UnixMakefiles, Ninja, Xcode, SublimeNinja, SublimeMakefiles}
}

// DefaultGenerator returns the conventional generator for the host OS:
// Ninja on Windows, native makefiles elsewhere.
func DefaultGenerator() Generator {
	return defaultGeneratorFor(runtime.GOOS)
}

func defaultGeneratorFor(goos string) Generator {
	if goos == "windows" {
		return Ninja
	}
	return UnixMakefiles
}

// ParseGenerator validates a generator name supplied on the command line.
func ParseGenerator(name string) (Generator, error) {
	for _, g := range Generators() {
		if string(g) == name {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown generator %q (choices: %v)", name, Generators())
}

// OverrideBuildCommand returns the direct invocation to use instead of the
// configure tool's generic build mode. Building through `cmake --build`
// loses the tool's colourised output, so the command-line generators where
// people will care are invoked directly. Returns nil for generators with no
// override.
func OverrideBuildCommand(g Generator) []string {
	switch g {
	case UnixMakefiles:
		return []string{"make"}
	case Ninja:
		return []string{"ninja"}
	}
	return nil
}

// HintForGenerator returns a one-line instruction for opening the generated
// project of an IDE-style generator, or "" when the generator needs none.
func HintForGenerator(g Generator, targetName, componentName string) string {
	switch g {
	case Xcode:
		return fmt.Sprintf("to open the built project, run:\nopen ./build/%s/%s.xcodeproj", targetName, componentName)
	case SublimeNinja, SublimeMakefiles:
		return fmt.Sprintf("to open the built project, run:\nopen ./build/%s/%s.sublime-project", targetName, componentName)
	}
	return ""
}
