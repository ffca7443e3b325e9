package gpu

import (
	"fmt"
	"regexp"

	"github.com/gogpu/naga"
)

var entryPointRe = regexp.MustCompile(`@(vertex|fragment)\s+fn\s+([A-Za-z_][A-Za-z0-9_]*)`)

// ShaderFunction is a resolved entry point of a shader library.
type ShaderFunction struct {
	Library *ShaderLibrary
	Name    string
	Stage   ShaderStage
}

// ShaderLibrary is a WGSL module and the entry points it declares.
type ShaderLibrary struct {
	Name        string
	Source      string
	entryPoints map[string]ShaderStage
	compiled    bool
}

// ParseShaderLibrary indexes the entry points of source without compiling it.
func ParseShaderLibrary(name, source string) *ShaderLibrary {
	lib := &ShaderLibrary{
		Name:        name,
		Source:      source,
		entryPoints: map[string]ShaderStage{},
	}
	for _, m := range entryPointRe.FindAllStringSubmatch(source, -1) {
		stage := ShaderStageVertex
		if m[1] == "fragment" {
			stage = ShaderStageFragment
		}
		lib.entryPoints[m[2]] = stage
	}
	return lib
}

// LoadShaderLibrary parses and compiles source.
func LoadShaderLibrary(name, source string) (*ShaderLibrary, error) {
	lib := ParseShaderLibrary(name, source)
	if err := lib.Compile(); err != nil {
		return nil, err
	}
	return lib, nil
}

// Compile runs the WGSL through naga so broken shaders are caught before a
// device ever sees them.
func (lib *ShaderLibrary) Compile() error {
	if lib.compiled {
		return nil
	}
	if _, err := naga.Compile(lib.Source); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrShaderCompile, lib.Name, err)
	}
	lib.compiled = true
	return nil
}

func (lib *ShaderLibrary) Compiled() bool { return lib.compiled }

// Function resolves the named entry point for stage.
func (lib *ShaderLibrary) Function(name string, stage ShaderStage) (ShaderFunction, error) {
	s, ok := lib.entryPoints[name]
	if !ok || s != stage {
		return ShaderFunction{}, fmt.Errorf("%w: %s %q in %s", ErrEntryPointMissing, stage, name, lib.Name)
	}
	return ShaderFunction{Library: lib, Name: name, Stage: stage}, nil
}
