package opengl

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed shaders/vertex.glsl
var defaultVertexShader string

//go:embed shaders/fragment.glsl
var defaultFragmentShader string

// NotFound is the location GL reports for a uniform the linked program does
// not declare (or that the compiler optimised away).
const NotFound int32 = -1

// Program is a linked vertex+fragment shader program.
type Program struct {
	ctx Context
	ID  uint32
}

// NewProgram compiles and links the given GLSL sources.
func NewProgram(ctx Context, vertSrc, fragSrc string) (*Program, error) {
	id, err := ctx.LinkProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}
	return &Program{ctx: ctx, ID: id}, nil
}

// LoadProgram reads the named shader files and links them. An empty path
// selects the built-in shader for that stage.
func LoadProgram(ctx Context, vertPath, fragPath string) (*Program, error) {
	vertSrc, err := readShader(vertPath, defaultVertexShader)
	if err != nil {
		return nil, err
	}
	fragSrc, err := readShader(fragPath, defaultFragmentShader)
	if err != nil {
		return nil, err
	}
	return NewProgram(ctx, vertSrc, fragSrc)
}

func readShader(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader %q: %w", path, err)
	}
	return string(src), nil
}

// Activate makes the program current.
func (p *Program) Activate() {
	p.ctx.UseProgram(p.ID)
}

// UniformLocation resolves a uniform by name; NotFound if it is missing.
func (p *Program) UniformLocation(name string) int32 {
	return p.ctx.UniformLocation(p.ID, name)
}

func (p *Program) Delete() {
	if p.ID != 0 {
		p.ctx.DeleteProgram(p.ID)
		p.ID = 0
	}
}
