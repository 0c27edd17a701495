package dynarray

import "go.llib.dev/containerkit/port/seq"

// Cursor is a position in an Array.
// Its position ranges from -1 (before the first element) to Len (past the last element).
type Cursor[T any] struct {
	arr   *Array[T]
	index int
	gen   uint64
}

var _ seq.Cursor[int] = &Cursor[int]{}

// Begin returns a Cursor to the first element.
func (a *Array[T]) Begin() *Cursor[T] {
	return &Cursor[T]{arr: a, index: 0, gen: a.gen}
}

// End returns a Cursor positioned past the last element.
func (a *Array[T]) End() *Cursor[T] {
	return &Cursor[T]{arr: a, index: a.size, gen: a.gen}
}

// RBegin returns a Cursor to the last element.
func (a *Array[T]) RBegin() *Cursor[T] {
	return &Cursor[T]{arr: a, index: a.size - 1, gen: a.gen}
}

func (c *Cursor[T]) current() bool {
	return c.arr != nil && c.gen == c.arr.gen
}

func (c *Cursor[T]) Valid() bool {
	return c.current() && 0 <= c.index && c.index < c.arr.size
}

func (c *Cursor[T]) Index() int { return c.index }

func (c *Cursor[T]) Value() (T, error) {
	if !c.Valid() {
		var zero T
		return zero, seq.ErrInvalidCursor.F("position %d", c.index)
	}
	return c.arr.buf[c.index], nil
}

func (c *Cursor[T]) Set(v T) error {
	if !c.Valid() {
		return seq.ErrInvalidCursor.F("position %d", c.index)
	}
	c.arr.buf[c.index] = v
	return nil
}

func (c *Cursor[T]) Next() bool {
	if c.current() && c.index < c.arr.size {
		c.index++
	}
	return c.Valid()
}

func (c *Cursor[T]) Prev() bool {
	if c.current() && -1 < c.index {
		c.index--
	}
	return c.Valid()
}

// Equal reports whether both cursors point to the same position of the same Array.
func (c *Cursor[T]) Equal(oth *Cursor[T]) bool {
	return c.arr == oth.arr && c.index == oth.index
}
