package core

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite    = Color{1, 1, 1, 1}
	ColorBlack    = Color{0, 0, 0, 1}
	ColorRed      = Color{1, 0, 0, 1}
	ColorGreen    = Color{0, 1, 0, 1}
	ColorBlue     = Color{0, 0, 1, 1}
	ColorYellow   = Color{1, 1, 0, 1}
	ColorCyan     = Color{0, 1, 1, 1}
	ColorDarkGray = Color{0.3, 0.3, 0.3, 0}
)

// Size is a drawable size in pixels.
type Size struct {
	Width, Height int
}

// Aspect returns Width/Height, or 1 for a minimised (zero-height) surface.
func (s Size) Aspect() float32 {
	if s.Width <= 0 || s.Height <= 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}
