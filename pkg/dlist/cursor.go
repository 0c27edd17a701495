package dlist

import "go.llib.dev/containerkit/port/seq"

// Cursor is a bidirectional position in a List.
type Cursor[T any] struct {
	list  *List[T]
	at    ref
	index int
	gen   uint64
}

var _ seq.Cursor[int] = &Cursor[int]{}

// Begin returns a Cursor to the first element.
func (l *List[T]) Begin() *Cursor[T] {
	return &Cursor[T]{list: l, at: l.head, index: 0, gen: l.gen}
}

// RBegin returns a Cursor to the last element.
func (l *List[T]) RBegin() *Cursor[T] {
	return &Cursor[T]{list: l, at: l.tail, index: l.length - 1, gen: l.gen}
}

// End returns a Cursor positioned past the last element.
func (l *List[T]) End() *Cursor[T] {
	return &Cursor[T]{list: l, at: 0, index: l.length, gen: l.gen}
}

func (c *Cursor[T]) current() bool {
	return c.list != nil && c.gen == c.list.gen
}

func (c *Cursor[T]) Valid() bool {
	return c.current() && c.at != 0
}

func (c *Cursor[T]) Index() int { return c.index }

func (c *Cursor[T]) Value() (T, error) {
	if !c.Valid() {
		var zero T
		return zero, seq.ErrInvalidCursor.F("position %d", c.index)
	}
	return c.list.node(c.at).value, nil
}

func (c *Cursor[T]) Set(v T) error {
	if !c.Valid() {
		return seq.ErrInvalidCursor.F("position %d", c.index)
	}
	c.list.node(c.at).value = v
	return nil
}

func (c *Cursor[T]) Next() bool {
	if !c.current() {
		return false
	}
	switch {
	case c.at != 0:
		c.at = c.list.node(c.at).next
		c.index++
	case c.index < 0:
		c.at, c.index = c.list.head, 0
	}
	return c.Valid()
}

func (c *Cursor[T]) Prev() bool {
	if !c.current() {
		return false
	}
	switch {
	case c.at != 0:
		c.at = c.list.node(c.at).prev
		c.index--
	case c.index == c.list.length:
		c.at, c.index = c.list.tail, c.list.length-1
	}
	return c.Valid()
}

// Equal reports whether both cursors point to the same position of the same List.
func (c *Cursor[T]) Equal(oth *Cursor[T]) bool {
	return c.list == oth.list && c.index == oth.index
}
