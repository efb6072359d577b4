package renderer

import (
	"context"
	"fmt"
	"log/slog"

	"glprimer/core"
	"glprimer/scene"
)

// Surface is the window and rendering context the loop draws into.
type Surface interface {
	DrawableSize() core.Size
	SwapBuffers()
	PollEvents()
	ShouldClose() bool
	SetShouldClose(value bool)
	IsKeyPressed(key int) bool
	SetTitle(title string)
	Time() float64
	Destroy()
}

// Backend clears the target, uploads the frame's uniforms and draws its own
// buffers. *opengl.Renderer implements it.
type Backend interface {
	BeginFrame(size core.Size)
	Upload(f scene.Frame)
	Draw()
	Destroy()
}

// Shape is a mesh that draws itself with its own buffers, used in place of
// the backend's buffers when set. *opengl.Shape implements it.
type Shape interface {
	Draw()
	Destroy()
}

type State int

const (
	Running State = iota
	Terminating
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Terminating:
		return "terminating"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Loop drives one iteration per display refresh: clear, recompute the
// transforms from elapsed time, upload, draw, present, poll.
type Loop struct {
	Surface   Surface
	Backend   Backend
	Shape     Shape // optional
	Animation scene.Animation

	// ExitKey requests termination when pressed.
	ExitKey int
	// MaxFrames stops the loop after that many frames; zero runs until closed.
	MaxFrames int
	// Title is the window title the FPS readout is appended to; empty
	// disables the readout.
	Title string

	state    State
	started  bool
	start    float64
	frames   int
	fps      fpsCounter
	released bool
}

func NewLoop(surface Surface, backend Backend, anim scene.Animation) *Loop {
	return &Loop{
		Surface:   surface,
		Backend:   backend,
		Animation: anim,
		ExitKey:   core.KeyEscape,
	}
}

func (l *Loop) State() State {
	return l.state
}

// Frames returns the number of frames rendered so far.
func (l *Loop) Frames() int {
	return l.frames
}

// Step renders one frame and returns the state after it. Once the loop is
// Terminating, Step does nothing.
func (l *Loop) Step() State {
	if l.state != Running {
		return l.state
	}
	if !l.started {
		l.start = l.Surface.Time()
		l.started = true
		l.fps.reset(l.start)
	}

	size := l.Surface.DrawableSize()
	l.Backend.BeginFrame(size)

	now := l.Surface.Time()
	frame := l.Animation.Frame(float32(now-l.start), size.Aspect())

	l.Backend.Upload(frame)
	if l.Shape != nil {
		l.Shape.Draw()
	} else {
		l.Backend.Draw()
	}
	l.frames++

	if rate, ok := l.fps.tick(now); ok && l.Title != "" {
		l.Surface.SetTitle(fmt.Sprintf("%s (%.1f FPS)", l.Title, rate))
	}

	l.Surface.SwapBuffers()
	l.Surface.PollEvents()

	if l.Surface.IsKeyPressed(l.ExitKey) {
		l.Surface.SetShouldClose(true)
	}
	if l.Surface.ShouldClose() || (l.MaxFrames > 0 && l.frames >= l.MaxFrames) {
		l.state = Terminating
	}
	return l.state
}

// Run steps until termination is requested or ctx is done, then releases
// all resources.
func (l *Loop) Run(ctx context.Context) error {
	slog.Debug("render loop started")
	for l.state == Running {
		if ctx.Err() != nil {
			slog.Info("render loop cancelled", "reason", context.Cause(ctx))
			l.state = Terminating
			break
		}
		l.Step()
	}
	l.Shutdown()
	slog.Info("render loop finished", "frames", l.frames)
	return nil
}

// Shutdown moves the loop to Terminating and releases the shape, the
// backend and then the surface, each exactly once.
func (l *Loop) Shutdown() {
	l.state = Terminating
	if l.released {
		return
	}
	l.released = true

	if l.Shape != nil {
		l.Shape.Destroy()
	}
	l.Backend.Destroy()
	l.Surface.Destroy()
}
