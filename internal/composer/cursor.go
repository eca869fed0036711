package composer

// ClampedCursor indexes a candidate list without wrapping: stepping past
// either end is a no-op. Used for grid-style paging.
type ClampedCursor struct {
	index int
	size  int
}

func NewClampedCursor(size int) *ClampedCursor {
	return &ClampedCursor{size: size}
}

func (c *ClampedCursor) Index() int { return c.index }
func (c *ClampedCursor) Len() int   { return c.size }

func (c *ClampedCursor) Next() int {
	if c.index < c.size-1 {
		c.index++
	}
	return c.index
}

func (c *ClampedCursor) Prev() int {
	if c.index > 0 {
		c.index--
	}
	return c.index
}

// Reset rebinds the cursor to a new candidate list and returns to index 0.
// Called whenever the selected item or target category changes.
func (c *ClampedCursor) Reset(size int) {
	c.index = 0
	c.size = size
}

// WrappingCursor indexes a candidate list modulo its length, the behavior of
// the outfit-generation pager.
type WrappingCursor struct {
	index int
	size  int
}

func NewWrappingCursor(size int) *WrappingCursor {
	return &WrappingCursor{size: size}
}

func (c *WrappingCursor) Index() int { return c.index }
func (c *WrappingCursor) Len() int   { return c.size }

func (c *WrappingCursor) Next() int {
	if c.size > 0 {
		c.index = (c.index + 1) % c.size
	}
	return c.index
}

func (c *WrappingCursor) Prev() int {
	if c.size > 0 {
		c.index = (c.index - 1 + c.size) % c.size
	}
	return c.index
}

func (c *WrappingCursor) Reset(size int) {
	c.index = 0
	c.size = size
}
