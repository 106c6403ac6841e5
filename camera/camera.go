// Package camera maps window coordinates onto the particle surface.
package camera

// Camera controls the viewport onto the particle surface.
// At Zoom 1 the whole surface fits the window, letterboxed and centred.
// The surface may be larger than the window in pixels (high-DPI rendering),
// so one window pixel can span several surface pixels.
type Camera struct {
	// Position is the view centre in surface coordinates
	X, Y float32

	// Zoom relative to the fitted scale (1.0 = whole surface visible)
	Zoom float32

	// Viewport dimensions (window size in screen coordinates)
	ViewportW, ViewportH float32

	// Surface dimensions in surface pixels
	SurfaceW, SurfaceH float32

	// Zoom constraints
	MinZoom, MaxZoom float32

	fit float32 // window pixels per surface pixel at Zoom 1
}

// New creates a camera showing the whole surface.
func New(viewportW, viewportH, surfaceW, surfaceH float32) *Camera {
	c := &Camera{
		X:         surfaceW / 2,
		Y:         surfaceH / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		SurfaceW:  surfaceW,
		SurfaceH:  surfaceH,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
	c.refit()
	return c
}

// Scale returns window pixels per surface pixel at the current zoom.
func (c *Camera) Scale() float32 {
	return c.fit * c.Zoom
}

// WorldToScreen converts surface coordinates to window coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	s := c.Scale()
	sx = c.ViewportW/2 + (wx-c.X)*s
	sy = c.ViewportH/2 + (wy-c.Y)*s
	return sx, sy
}

// ScreenToWorld converts window coordinates to surface coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	s := c.Scale()
	wx = c.X + (sx-c.ViewportW/2)/s
	wy = c.Y + (sy-c.ViewportH/2)/s
	return wx, wy
}

// Resize updates viewport dimensions and refits the surface.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.refit()
	c.clampCentre()
}

// Pan moves the view by the given delta in window pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += dx / s
	c.Y += dy / s
	c.clampCentre()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampCentre()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the fitted view.
func (c *Camera) Reset() {
	c.X = c.SurfaceW / 2
	c.Y = c.SurfaceH / 2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the surface-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func (c *Camera) refit() {
	if c.SurfaceW <= 0 || c.SurfaceH <= 0 {
		c.fit = 1
		return
	}
	c.fit = min(c.ViewportW/c.SurfaceW, c.ViewportH/c.SurfaceH)
	if c.fit <= 0 {
		c.fit = 1
	}
}

// clampCentre keeps the view inside the surface once zoomed past the fit.
func (c *Camera) clampCentre() {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	halfW, halfH := (maxX-minX)/2, (maxY-minY)/2

	if halfW*2 >= c.SurfaceW {
		c.X = c.SurfaceW / 2
	} else {
		c.X = clamp(c.X, halfW, c.SurfaceW-halfW)
	}
	if halfH*2 >= c.SurfaceH {
		c.Y = c.SurfaceH / 2
	} else {
		c.Y = clamp(c.Y, halfH, c.SurfaceH-halfH)
	}
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
