package core

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Title  string

	// Desktop is the primary monitor's video mode size at creation time.
	Desktop Size
}

type WindowConfig struct {
	// Width and Height of zero open a square window half the desktop
	// height on a side.
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
	VSync     bool   `yaml:"vsync"`
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:     "GLprimer",
		Resizable: true,
		VSync:     false,
	}
}

// NewWindow initialises GLFW, opens a window with an OpenGL 3.3 core
// forward-compatible context and makes that context current.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	var desktop Size
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			desktop = Size{Width: mode.Width, Height: mode.Height}
		}
	}

	width, height := config.Width, config.Height
	if width <= 0 || height <= 0 {
		width, height = desktop.Height/2, desktop.Height/2
	}
	if width <= 0 || height <= 0 {
		width, height = 512, 512
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	handle, err := glfw.CreateWindow(width, height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()

	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return &Window{
		Handle:  handle,
		Title:   config.Title,
		Desktop: desktop,
	}, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(value bool) {
	w.Handle.SetShouldClose(value)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// DrawableSize returns the framebuffer size, which differs from the window
// size on high-DPI displays.
func (w *Window) DrawableSize() Size {
	width, height := w.Handle.GetFramebufferSize()
	return Size{Width: width, Height: height}
}

// Time returns seconds since GLFW was initialised.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

const KeyEscape = int(glfw.KeyEscape)
