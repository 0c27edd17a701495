// Package dlist implements an index addressed doubly linked list.
//
// Nodes live in an arena owned by the List and refer to each other by arena position,
// so the list never holds aliasing pointers between its nodes.
// Erased slots are kept on a free chain and reused by later insertions.
package dlist

import (
	"iter"

	"go.llib.dev/containerkit/port/seq"
)

// compactThreshold is the arena size below which free slots are never compacted away.
const compactThreshold = 32

// ref is an arena position, where zero means no node and k refers to nodes[k-1].
type ref int

type node[T any] struct {
	value T
	prev  ref
	next  ref
}

// List is a doubly linked sequence.
// The zero value is an empty List ready to use.
type List[T any] struct {
	nodes  []node[T]
	free   ref
	head   ref
	tail   ref
	length int
	gen    uint64
}

var _ seq.Sequence[int] = &List[int]{}

// Of makes a List holding vs in order.
func Of[T any](vs ...T) *List[T] {
	l := &List[T]{}
	l.Append(vs...)
	return l
}

func (l *List[T]) node(r ref) *node[T] { return &l.nodes[r-1] }

func (l *List[T]) alloc(v T) ref {
	if l.free != 0 {
		r := l.free
		n := l.node(r)
		l.free = n.next
		*n = node[T]{value: v}
		return r
	}
	l.nodes = append(l.nodes, node[T]{value: v})
	return ref(len(l.nodes))
}

func (l *List[T]) release(r ref) {
	*l.node(r) = node[T]{next: l.free}
	l.free = r
}

// locate walks to the node at index from whichever end is closer.
// index must be within [0, length).
func (l *List[T]) locate(index int) ref {
	if index < l.length/2 {
		r := l.head
		for range index {
			r = l.node(r).next
		}
		return r
	}
	r := l.tail
	for range l.length - 1 - index {
		r = l.node(r).prev
	}
	return r
}

// linkBefore places a new node in front of at.
// When at is zero, the new node becomes the tail.
func (l *List[T]) linkBefore(at ref, v T) {
	r := l.alloc(v)
	n := l.node(r)
	if at == 0 {
		n.prev = l.tail
		if l.tail == 0 {
			l.head = r
		} else {
			l.node(l.tail).next = r
		}
		l.tail = r
	} else {
		next := l.node(at)
		n.prev, n.next = next.prev, at
		if next.prev == 0 {
			l.head = r
		} else {
			l.node(next.prev).next = r
		}
		next.prev = r
	}
	l.length++
	l.gen++
}

func (l *List[T]) unlink(r ref) T {
	n := l.node(r)
	v := n.value
	if n.prev == 0 {
		l.head = n.next
	} else {
		l.node(n.prev).next = n.next
	}
	if n.next == 0 {
		l.tail = n.prev
	} else {
		l.node(n.next).prev = n.prev
	}
	l.release(r)
	l.length--
	l.gen++
	l.compact()
	return v
}

// compact rebuilds the arena in chain order once free slots outnumber the live nodes.
// Every ref changes, so it only runs right after a generation bump.
func (l *List[T]) compact() {
	if len(l.nodes) <= compactThreshold || len(l.nodes)-l.length <= l.length {
		return
	}
	c := l.Clone()
	clear(l.nodes)
	l.nodes, l.free, l.head, l.tail = c.nodes, 0, c.head, c.tail
}

// Len returns the number of elements in the list
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.length
}

func (l *List[T]) PushBack(v T) { l.linkBefore(0, v) }

func (l *List[T]) PushFront(v T) { l.linkBefore(l.head, v) }

func (l *List[T]) Append(vs ...T) {
	for _, v := range vs {
		l.linkBefore(0, v)
	}
}

// Prepend adds the values to the beginning of the list, keeping their order.
func (l *List[T]) Prepend(vs ...T) {
	for i := len(vs) - 1; 0 <= i; i-- {
		l.linkBefore(l.head, vs[i])
	}
}

func (l *List[T]) Insert(index int, v T) error {
	if err := seq.CheckInsertIndex(index, l.length); err != nil {
		return err
	}
	if index == l.length {
		l.linkBefore(0, v)
		return nil
	}
	l.linkBefore(l.locate(index), v)
	return nil
}

func (l *List[T]) Erase(index int) error {
	if err := seq.CheckIndex(index, l.length); err != nil {
		return err
	}
	l.unlink(l.locate(index))
	return nil
}

func (l *List[T]) At(index int) (T, error) {
	if err := seq.CheckIndex(index, l.Len()); err != nil {
		var zero T
		return zero, err
	}
	return l.node(l.locate(index)).value, nil
}

// Get returns the element at index and panics with seq.ErrOutOfRange on an invalid index.
func (l *List[T]) Get(index int) T {
	v, err := l.At(index)
	if err != nil {
		panic(err)
	}
	return v
}

func (l *List[T]) Set(index int, v T) error {
	if err := seq.CheckIndex(index, l.length); err != nil {
		return err
	}
	l.node(l.locate(index)).value = v
	return nil
}

func (l *List[T]) Front() (T, bool) {
	if l.Len() == 0 {
		var zero T
		return zero, false
	}
	return l.node(l.head).value, true
}

func (l *List[T]) Back() (T, bool) {
	if l.Len() == 0 {
		var zero T
		return zero, false
	}
	return l.node(l.tail).value, true
}

// PopFront removes and returns the first element.
func (l *List[T]) PopFront() (T, bool) {
	if l.head == 0 {
		var zero T
		return zero, false
	}
	return l.unlink(l.head), true
}

// PopBack removes and returns the last element.
func (l *List[T]) PopBack() (T, bool) {
	if l.tail == 0 {
		var zero T
		return zero, false
	}
	return l.unlink(l.tail), true
}

// Clone returns a deep copy of the list laid out in a compact arena.
func (l *List[T]) Clone() *List[T] {
	c := &List[T]{}
	if l.Len() == 0 {
		return c
	}
	c.nodes = make([]node[T], 0, l.length)
	for v := range l.Values() {
		r := ref(len(c.nodes) + 1)
		c.nodes = append(c.nodes, node[T]{value: v, prev: r - 1})
		if 1 < r {
			c.node(r - 1).next = r
		}
	}
	c.head, c.tail, c.length = 1, ref(len(c.nodes)), len(c.nodes)
	return c
}

// CopyFrom replaces the content of the List with a deep copy of src.
func (l *List[T]) CopyFrom(src *List[T]) {
	if l == src {
		return
	}
	c := src.Clone()
	l.Reset()
	l.nodes, l.head, l.tail, l.length = c.nodes, c.head, c.tail, c.length
}

// Move transfers every node into a new List and leaves the receiver empty.
// Moving a nil List yields an empty one.
func (l *List[T]) Move() *List[T] {
	if l == nil {
		return &List[T]{}
	}
	m := &List[T]{nodes: l.nodes, free: l.free, head: l.head, tail: l.tail, length: l.length}
	l.nodes, l.free, l.head, l.tail, l.length = nil, 0, 0, 0, 0
	l.gen++
	return m
}

// MoveFrom releases the current nodes and takes over the nodes of src.
// src is left empty. A nil src empties the List.
func (l *List[T]) MoveFrom(src *List[T]) {
	if l == src {
		return
	}
	l.Reset()
	if src == nil {
		return
	}
	l.nodes, l.free, l.head, l.tail, l.length = src.nodes, src.free, src.head, src.tail, src.length
	src.nodes, src.free, src.head, src.tail, src.length = nil, 0, 0, 0, 0
	src.gen++
}

// Reset walks the chain and clears every node before dropping the arena.
func (l *List[T]) Reset() {
	for r := l.head; r != 0; {
		n := l.node(r)
		r = n.next
		*n = node[T]{}
	}
	l.nodes, l.free, l.head, l.tail, l.length = nil, 0, 0, 0, 0
	l.gen++
}

func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.All() {
			if !yield(v) {
				return
			}
		}
	}
}

func (l *List[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if l == nil {
			return
		}
		var index int
		for r := l.head; r != 0; r = l.node(r).next {
			if !yield(index, l.node(r).value) {
				return
			}
			index++
		}
	}
}

func (l *List[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if l == nil {
			return
		}
		index := l.length - 1
		for r := l.tail; r != 0; r = l.node(r).prev {
			if !yield(index, l.node(r).value) {
				return
			}
			index--
		}
	}
}

func (l *List[T]) ToSlice() []T {
	var vs []T
	for v := range l.Values() {
		vs = append(vs, v)
	}
	return vs
}
