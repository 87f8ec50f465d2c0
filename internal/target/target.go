// Package target loads and represents installed target descriptions. A
// target names the toolchain and debug workflow for one hardware/OS
// platform; the description lives in a target.json file in the target's
// install directory.
package target

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DescriptionFile is the file name of the target description.
	DescriptionFile = "target.json"

	// RegistryNamespace is the registry namespace targets are published
	// under.
	RegistryNamespace = "targets"
)

// Description is the decoded contents of a target.json file.
type Description struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Toolchain string   `json:"toolchain"`
	SimilarTo []string `json:"similarTo"`

	// Debug holds the debugger command templates. Each token $program is
	// replaced with the resolved program path before environment variable
	// expansion. If absent, the target cannot start debug sessions.
	Debug []string `json:"debug"`

	// DebugServer is the background debug server invocation, as literal
	// argv tokens. DebugServerDeprecated is the old spelling of the same
	// key and is consulted only when the new one is absent.
	DebugServer           []string `json:"debugServer"`
	DebugServerDeprecated []string `json:"debug-server"`
}

// Target is a target description loaded from a directory.
type Target struct {
	// Path is the directory containing the description file.
	Path string

	Description Description
}

// Load reads and validates the target description in dir.
func Load(dir string) (*Target, error) {
	file := filepath.Join(dir, DescriptionFile)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read target description: %w", err)
	}
	var desc Description
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", file, err)
	}
	if desc.Name == "" {
		return nil, fmt.Errorf("%s: missing required property \"name\"", file)
	}
	if desc.Toolchain == "" {
		return nil, fmt.Errorf("%s: missing required property \"toolchain\"", file)
	}
	return &Target{Path: dir, Description: desc}, nil
}

// Name returns the target's name.
func (t *Target) Name() string {
	return t.Description.Name
}

// ToolchainFile returns the absolute-or-relative path of the target's
// toolchain file, resolved against the target directory.
func (t *Target) ToolchainFile() string {
	return filepath.Join(t.Path, t.Description.Toolchain)
}

// DependencyResolutionOrder returns the sequence of target names to consult
// when resolving target-specific dependencies: the target itself first,
// then its similarTo list in order.
func (t *Target) DependencyResolutionOrder() []string {
	order := make([]string, 0, 1+len(t.Description.SimilarTo))
	order = append(order, t.Description.Name)
	order = append(order, t.Description.SimilarTo...)
	return order
}

// SupportsDebug reports whether the target specifies debug commands.
func (t *Target) SupportsDebug() bool {
	return len(t.Description.Debug) > 0
}

// DebugServerCommand returns the configured debug server invocation, or nil
// when the target has none. The debugServer key is preferred; debug-server
// is the deprecated spelling and is used only as a fallback.
func (t *Target) DebugServerCommand() []string {
	if len(t.Description.DebugServer) > 0 {
		return t.Description.DebugServer
	}
	return t.Description.DebugServerDeprecated
}
