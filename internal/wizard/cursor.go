package wizard

import (
	"stepsurvey/internal/catalog"
	"stepsurvey/internal/model"
)

// Cursor navigates a session over the catalog's answerable items.
// The stored index is clamped on every access; it is never wrapped.
type Cursor struct {
	catalog *catalog.Catalog
	session *model.Session
}

// NewCursor binds a cursor to a session
func NewCursor(c *catalog.Catalog, s *model.Session) *Cursor {
	return &Cursor{catalog: c, session: s}
}

// Clamp returns max(0, min(index, count-1)); 0 for an empty catalog
func Clamp(index, count int) int {
	if index > count-1 {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// Index returns the clamped position and writes it back to the session
func (c *Cursor) Index() int {
	idx := Clamp(c.session.CursorIndex, c.catalog.Len())
	c.session.CursorIndex = idx
	return idx
}

// Current returns the active question. ok is false only for an empty catalog.
func (c *Cursor) Current() (model.Question, bool) {
	return c.catalog.At(c.Index())
}

// Advance moves one question forward. It returns false without moving when
// the cursor is already on the last question.
func (c *Cursor) Advance() bool {
	idx := c.Index()
	if idx >= c.catalog.Len()-1 {
		return false
	}
	c.session.CursorIndex = idx + 1
	return true
}

// Retreat moves one question back. It returns false without moving on the
// first question.
func (c *Cursor) Retreat() bool {
	idx := c.Index()
	if idx <= 0 {
		return false
	}
	c.session.CursorIndex = idx - 1
	return true
}

// ProgressFraction is index/count, for display only
func (c *Cursor) ProgressFraction() float64 {
	n := c.catalog.Len()
	if n == 0 {
		return 0
	}
	return float64(c.Index()) / float64(n)
}

// IsLast reports whether the cursor is on the last question
func (c *Cursor) IsLast() bool {
	return c.Index() == c.catalog.Len()-1
}

// IsFirst reports whether the cursor is on the first question
func (c *Cursor) IsFirst() bool {
	return c.Index() == 0
}
