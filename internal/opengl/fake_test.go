package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v3.3-core/gl"

	"glprimer/core"
	"glprimer/math"
)

type drawCall struct {
	mode    uint32
	count   int32
	vao     uint32
	program uint32
}

// fakeContext records what the renderer does to GL state and flags calls
// made in an order real GL would not accept.
type fakeContext struct {
	nextID uint32

	vao, arrayBuf, program uint32
	vaoElements            map[uint32]uint32
	attribs                map[uint32]uint32
	enabledAttribs         map[uint32]bool

	floats  map[uint32][]float32
	indices map[uint32][]uint32

	locations map[string]int32
	matrices  map[int32]math.Mat4
	scalars   map[int32]float32

	vertSrc, fragSrc string
	linkErr          error

	enabled     map[uint32]bool
	polygonMode uint32
	clears      []core.Color
	viewport    core.Size
	draws       []drawCall
	deleted     []string
	violations  []string
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		vaoElements:    make(map[uint32]uint32),
		attribs:        make(map[uint32]uint32),
		enabledAttribs: make(map[uint32]bool),
		floats:         make(map[uint32][]float32),
		indices:        make(map[uint32][]uint32),
		locations: map[string]int32{
			UniformTime: 0,
			UniformR:    1,
			UniformP:    2,
			UniformMV:   3,
		},
		matrices: make(map[int32]math.Mat4),
		scalars:  make(map[int32]float32),
		enabled:  make(map[uint32]bool),
	}
}

func (f *fakeContext) violate(format string, args ...any) {
	f.violations = append(f.violations, fmt.Sprintf(format, args...))
}

func (f *fakeContext) gen() uint32 {
	f.nextID++
	return f.nextID
}

func (f *fakeContext) GenVertexArray() uint32 { return f.gen() }
func (f *fakeContext) BindVertexArray(vao uint32) { f.vao = vao }
func (f *fakeContext) DeleteVertexArray(vao uint32) { f.deleted = append(f.deleted, fmt.Sprintf("vao:%d", vao)) }
func (f *fakeContext) GenBuffer() uint32 { return f.gen() }
func (f *fakeContext) DeleteBuffer(buffer uint32) { f.deleted = append(f.deleted, fmt.Sprintf("buffer:%d", buffer)) }
func (f *fakeContext) DeleteProgram(program uint32) { f.deleted = append(f.deleted, fmt.Sprintf("program:%d", program)) }
func (f *fakeContext) UseProgram(program uint32) { f.program = program }
func (f *fakeContext) Viewport(width, height int) { f.viewport = core.Size{Width: width, Height: height} }
func (f *fakeContext) Enable(capability uint32) { f.enabled[capability] = true }
func (f *fakeContext) Disable(capability uint32) { f.enabled[capability] = false }
func (f *fakeContext) PolygonMode(mode uint32) { f.polygonMode = mode }
func (f *fakeContext) Clear(color core.Color) { f.clears = append(f.clears, color) }
func (f *fakeContext) EnableVertexAttribArray(s uint32) { f.enabledAttribs[s] = true }

func (f *fakeContext) BindBuffer(target, buffer uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		f.arrayBuf = buffer
	case gl.ELEMENT_ARRAY_BUFFER:
		if f.vao == 0 {
			f.violate("element buffer %d bound with no vertex array", buffer)
		}
		f.vaoElements[f.vao] = buffer
	}
}

func (f *fakeContext) bound(target uint32) uint32 {
	if target == gl.ELEMENT_ARRAY_BUFFER {
		return f.vaoElements[f.vao]
	}
	return f.arrayBuf
}

func (f *fakeContext) BufferFloats(target uint32, data []float32) {
	buf := f.bound(target)
	if buf == 0 {
		f.violate("buffer data with nothing bound")
	}
	f.floats[buf] = append([]float32(nil), data...)
}

func (f *fakeContext) BufferIndices(target uint32, data []uint32) {
	buf := f.bound(target)
	if buf == 0 {
		f.violate("index data with nothing bound")
	}
	f.indices[buf] = append([]uint32(nil), data...)
}

func (f *fakeContext) VertexAttribPointer(slot uint32, components int32) {
	if f.vao == 0 || f.arrayBuf == 0 {
		f.violate("attribute %d configured without vertex array and buffer bound", slot)
	}
	if components != 3 {
		f.violate("attribute %d has %d components", slot, components)
	}
	f.attribs[slot] = f.arrayBuf
}

func (f *fakeContext) LinkProgram(vertSrc, fragSrc string) (uint32, error) {
	f.vertSrc, f.fragSrc = vertSrc, fragSrc
	if f.linkErr != nil {
		return 0, f.linkErr
	}
	return f.gen(), nil
}

func (f *fakeContext) UniformLocation(program uint32, name string) int32 {
	if loc, ok := f.locations[name]; ok {
		return loc
	}
	return NotFound
}

func (f *fakeContext) UniformMatrix4(location int32, m math.Mat4) {
	if f.program == 0 {
		f.violate("matrix uploaded with no program active")
	}
	if location == NotFound {
		f.violate("matrix uploaded to missing uniform")
	}
	f.matrices[location] = m
}

func (f *fakeContext) Uniform1f(location int32, v float32) {
	if f.program == 0 {
		f.violate("scalar uploaded with no program active")
	}
	if location == NotFound {
		f.violate("scalar uploaded to missing uniform")
	}
	f.scalars[location] = v
}

func (f *fakeContext) DrawElements(mode uint32, count int32) {
	if f.vao == 0 {
		f.violate("draw with no vertex array bound")
	}
	if f.vaoElements[f.vao] == 0 {
		f.violate("draw with no index buffer in vertex array %d", f.vao)
	}
	f.draws = append(f.draws, drawCall{mode: mode, count: count, vao: f.vao, program: f.program})
}
