package render

// epsilon absorbs float drift from repeated line-height additions.
const epsilon = 1e-9

// Cursor is the vertical write position on a page. It is a value: every
// operation returns a new Cursor and leaves the receiver alone.
type Cursor struct {
	Page int
	Y    float64
}

// Start returns the cursor at the top margin of the first page.
func Start(cfg Config) Cursor {
	return Cursor{Page: 1, Y: cfg.TopMargin}
}

// Advance moves the cursor down by n line heights.
func (c Cursor) Advance(cfg Config, n int) Cursor {
	c.Y += float64(n) * cfg.LineHeight
	return c
}

// Fits reports whether a line drawn at the cursor stays above the bottom margin.
func (c Cursor) Fits(cfg Config) bool {
	return c.Y+cfg.LineHeight <= cfg.Threshold()+epsilon
}

// Reserve returns the cursor a line should be drawn at, moving to the top of
// the next page when the current one is full.
func (c Cursor) Reserve(cfg Config) Cursor {
	if c.Fits(cfg) {
		return c
	}
	return Cursor{Page: c.Page + 1, Y: cfg.TopMargin}
}
