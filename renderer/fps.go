package renderer

// fpsCounter averages the frame rate over windows of at least one second.
type fpsCounter struct {
	last   float64
	frames int
}

func (c *fpsCounter) reset(now float64) {
	c.last = now
	c.frames = 0
}

// tick counts a frame and reports the rate once a second has elapsed.
func (c *fpsCounter) tick(now float64) (float64, bool) {
	c.frames++
	elapsed := now - c.last
	if elapsed < 1.0 {
		return 0, false
	}
	rate := float64(c.frames) / elapsed
	c.reset(now)
	return rate, true
}
