package renderer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glprimer/core"
	"glprimer/scene"
)

type events struct {
	log []string
}

func (e *events) add(format string, args ...any) {
	e.log = append(e.log, fmt.Sprintf(format, args...))
}

type fakeSurface struct {
	ev          *events
	size        core.Size
	now         float64
	dt          float64
	closeAfter  int
	swaps       int
	shouldClose bool
	keyDown     bool
	title       string
	destroyed   int
}

func (s *fakeSurface) DrawableSize() core.Size { return s.size }
func (s *fakeSurface) PollEvents() { s.ev.add("poll") }
func (s *fakeSurface) SetShouldClose(v bool) { s.shouldClose = v }
func (s *fakeSurface) IsKeyPressed(int) bool { return s.keyDown }
func (s *fakeSurface) SetTitle(title string) { s.title = title }

func (s *fakeSurface) SwapBuffers() {
	s.ev.add("swap")
	s.swaps++
	s.now += s.dt
	if s.closeAfter > 0 && s.swaps >= s.closeAfter {
		s.shouldClose = true
	}
}

func (s *fakeSurface) ShouldClose() bool { return s.shouldClose }
func (s *fakeSurface) Time() float64 { return s.now }

func (s *fakeSurface) Destroy() {
	s.ev.add("surface.destroy")
	s.destroyed++
}

type fakeBackend struct {
	ev     *events
	frames []scene.Frame
	sizes  []core.Size
}

func (b *fakeBackend) BeginFrame(size core.Size) {
	b.ev.add("begin")
	b.sizes = append(b.sizes, size)
}

func (b *fakeBackend) Upload(f scene.Frame) {
	b.ev.add("upload")
	b.frames = append(b.frames, f)
}

func (b *fakeBackend) Draw() { b.ev.add("draw") }
func (b *fakeBackend) Destroy() { b.ev.add("backend.destroy") }

type fakeShape struct{ ev *events }

func (s *fakeShape) Draw() { s.ev.add("shape.draw") }
func (s *fakeShape) Destroy() { s.ev.add("shape.destroy") }

func newTestLoop(closeAfter int) (*Loop, *fakeSurface, *fakeBackend, *events) {
	ev := &events{}
	surface := &fakeSurface{ev: ev, size: core.Size{Width: 512, Height: 512}, now: 5, dt: 0.25, closeAfter: closeAfter}
	backend := &fakeBackend{ev: ev}
	return NewLoop(surface, backend, scene.DefaultAnimation()), surface, backend, ev
}

func TestStepOrder(t *testing.T) {
	loop, _, _, ev := newTestLoop(0)

	assert.Equal(t, Running, loop.Step())
	assert.Equal(t, []string{"begin", "upload", "draw", "swap", "poll"}, ev.log)
	assert.Equal(t, 1, loop.Frames())
}

func TestFramesUseElapsedTime(t *testing.T) {
	loop, _, backend, _ := newTestLoop(0)
	anim := scene.DefaultAnimation()

	for i := 0; i < 4; i++ {
		loop.Step()
	}

	require.Len(t, backend.frames, 4)
	for i, f := range backend.frames {
		want := anim.Frame(float32(i)*0.25, 1)
		assert.Equal(t, want.Time, f.Time)
		assert.True(t, want.MV.ApproxEqual(f.MV, 1e-6), "frame %d", i)
		assert.True(t, want.R.ApproxEqual(f.R, 1e-6), "frame %d", i)
	}
}

func TestCloseRequestTerminates(t *testing.T) {
	loop, surface, backend, ev := newTestLoop(3)

	require.NoError(t, loop.Run(context.Background()))

	assert.Equal(t, Terminating, loop.State())
	assert.Equal(t, 3, loop.Frames())
	assert.Len(t, backend.frames, 3)
	assert.Equal(t, 1, surface.destroyed)
	assert.Equal(t, []string{"backend.destroy", "surface.destroy"}, ev.log[len(ev.log)-2:])

	// Nothing runs after termination.
	n := len(ev.log)
	assert.Equal(t, Terminating, loop.Step())
	loop.Shutdown()
	assert.Len(t, ev.log, n)
}

func TestCloseDuringFrameFinishesFrame(t *testing.T) {
	loop, surface, _, ev := newTestLoop(0)
	loop.Step()
	surface.shouldClose = true

	assert.Equal(t, Terminating, loop.Step())
	assert.Equal(t, "poll", ev.log[len(ev.log)-1])
	assert.Equal(t, 2, surface.swaps)
}

func TestExitKey(t *testing.T) {
	loop, surface, _, _ := newTestLoop(0)
	loop.Step()
	surface.keyDown = true

	assert.Equal(t, Terminating, loop.Step())
	assert.True(t, surface.shouldClose)
}

func TestMaxFrames(t *testing.T) {
	loop, _, backend, _ := newTestLoop(0)
	loop.MaxFrames = 5

	require.NoError(t, loop.Run(context.Background()))
	assert.Len(t, backend.frames, 5)
}

func TestContextCancel(t *testing.T) {
	loop, surface, backend, _ := newTestLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, loop.Run(ctx))
	assert.Empty(t, backend.frames)
	assert.Equal(t, 1, surface.destroyed)
}

func TestShapeReplacesBackendDraw(t *testing.T) {
	loop, _, _, ev := newTestLoop(1)
	loop.Shape = &fakeShape{ev: ev}

	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, []string{
		"begin", "upload", "shape.draw", "swap", "poll",
		"shape.destroy", "backend.destroy", "surface.destroy",
	}, ev.log)
}

func TestViewportAspectFollowsSurface(t *testing.T) {
	loop, surface, backend, _ := newTestLoop(0)
	loop.Animation.Aspect = 0
	surface.size = core.Size{Width: 800, Height: 400}

	loop.Step()

	require.Len(t, backend.sizes, 1)
	assert.Equal(t, surface.size, backend.sizes[0])
	want := loop.Animation.Frame(0, 2)
	assert.True(t, want.P.ApproxEqual(backend.frames[0].P, 1e-6))
}

func TestFPSTitle(t *testing.T) {
	loop, surface, _, _ := newTestLoop(0)
	loop.Title = "GLprimer"

	for i := 0; i < 4; i++ {
		loop.Step()
	}
	assert.Empty(t, surface.title)

	// The fifth frame is drawn at t=1.0 after start.
	loop.Step()
	assert.Equal(t, "GLprimer (5.0 FPS)", surface.title)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "terminating", Terminating.String())
	assert.Equal(t, "State(7)", State(7).String())
}
