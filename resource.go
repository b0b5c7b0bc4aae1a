package main

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/hherman1/flowmask/internal/flow"
)

//go:embed shaders
var shadersFS embed.FS

// Default images, addressed as embed:<name>.
//
//go:embed resources
var resources embed.FS

const (
	kageShaderPath = "shaders/flow.go"
	wgslShaderPath = "shaders/flow.wgsl"
)

// Resources returns the embedded image directory.
func Resources() fs.FS {
	sub, err := fs.Sub(resources, "resources")
	if err != nil {
		// the directory is embedded, Sub only fails on a malformed name
		panic(err)
	}
	return sub
}

// ProgramSource returns the flow program in both shading languages.
func ProgramSource() (flow.ProgramSource, error) {
	kage, err := shadersFS.ReadFile(kageShaderPath)
	if err != nil {
		return flow.ProgramSource{}, fmt.Errorf("read file: %w", err)
	}
	wgsl, err := shadersFS.ReadFile(wgslShaderPath)
	if err != nil {
		return flow.ProgramSource{}, fmt.Errorf("read file: %w", err)
	}
	return flow.ProgramSource{
		Name: "flow",
		Kage: kage,
		WGSL: string(wgsl),
	}, nil
}
