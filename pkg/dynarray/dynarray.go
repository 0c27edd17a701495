// Package dynarray implements a growable, contiguous sequence container.
package dynarray

import (
	"iter"
	"unsafe"

	"go.llib.dev/frameless/pkg/mathkit"
	"go.llib.dev/frameless/port/option"

	"go.llib.dev/containerkit/port/seq"
)

// Array is a growable contiguous sequence.
//
// The zero value is an empty Array ready to use.
// Live elements occupy buf[:size], the rest of the buffer holds zero values.
type Array[T any] struct {
	buf  []T
	size int
	gen  uint64
	conf *Config
}

var _ seq.Sequence[int] = &Array[int]{}

// New makes an Array with exactly capacity preallocated slots.
func New[T any](capacity int, opts ...Option) (*Array[T], error) {
	c := option.ToConfig[Config](opts).normalise()
	a := &Array[T]{conf: &c}
	if capacity < 0 {
		return nil, seq.ErrOutOfRange.F("negative capacity: %d", capacity)
	}
	if err := a.checkAlloc(capacity); err != nil {
		return nil, err
	}
	if 0 < capacity {
		a.buf = make([]T, capacity)
	}
	return a, nil
}

// Of makes an Array holding vs in order.
func Of[T any](vs ...T) *Array[T] {
	a := &Array[T]{}
	a.Append(vs...)
	return a
}

func (a *Array[T]) config() Config {
	if a.conf == nil {
		return defaultConfig
	}
	return *a.conf
}

func (a *Array[T]) Len() int {
	if a == nil {
		return 0
	}
	return a.size
}

func (a *Array[T]) Cap() int {
	if a == nil {
		return 0
	}
	return len(a.buf)
}

func (a *Array[T]) checkAlloc(capacity int) error {
	elemSize := int(unsafe.Sizeof(*new(T)))
	if elemSize == 0 {
		elemSize = 1
	}
	if mathkit.CanIntMulOverflow(capacity, elemSize) {
		return seq.ErrAllocationTooLarge.F("%d elements of %d bytes overflow int", capacity, elemSize)
	}
	if limit := a.config().MaxAllocBytes; limit < int64(capacity*elemSize) {
		return seq.ErrAllocationTooLarge.F("%d elements of %d bytes exceed the %d bytes limit", capacity, elemSize, limit)
	}
	return nil
}

// reserve makes room for n more elements.
func (a *Array[T]) reserve(n int) error {
	if mathkit.CanIntSumOverflow(a.size, n) {
		return seq.ErrAllocationTooLarge.F("length %d plus %d overflows int", a.size, n)
	}
	required := a.size + n
	if required <= len(a.buf) {
		return nil
	}
	c := a.config()
	newCap := required
	if !mathkit.CanIntMulOverflow(len(a.buf), c.GrowthFactor) {
		newCap = max(len(a.buf)*c.GrowthFactor, c.MinCapacity, required)
	}
	if err := a.checkAlloc(newCap); err != nil {
		if newCap == required {
			return err
		}
		// the growth step is over the ceiling, but the exact request may still fit
		if err := a.checkAlloc(required); err != nil {
			return err
		}
		newCap = required
	}
	a.realloc(newCap)
	return nil
}

func (a *Array[T]) realloc(capacity int) {
	if capacity == 0 {
		a.buf = nil
		return
	}
	buf := make([]T, capacity)
	copy(buf, a.buf[:a.size])
	a.buf = buf
}

// Grow ensures that n more elements can be added without another allocation.
func (a *Array[T]) Grow(n int) error {
	if n < 0 {
		return seq.ErrOutOfRange.F("negative grow size: %d", n)
	}
	prev := len(a.buf)
	if err := a.reserve(n); err != nil {
		return err
	}
	if prev != len(a.buf) {
		a.gen++
	}
	return nil
}

// ShrinkToFit reallocates the buffer to hold exactly Len elements.
func (a *Array[T]) ShrinkToFit() {
	if a.size == len(a.buf) {
		return
	}
	a.realloc(a.size)
	a.gen++
}

// PushBack appends v at index Len.
// It panics with seq.ErrAllocationTooLarge when the buffer can't grow any further.
func (a *Array[T]) PushBack(v T) {
	if err := a.reserve(1); err != nil {
		panic(err)
	}
	a.buf[a.size] = v
	a.size++
	a.gen++
}

// PushFront inserts v at index 0, shifting every element up by one.
func (a *Array[T]) PushFront(v T) {
	if err := a.Insert(0, v); err != nil {
		panic(err)
	}
}

func (a *Array[T]) Append(vs ...T) {
	if len(vs) == 0 {
		return
	}
	if err := a.reserve(len(vs)); err != nil {
		panic(err)
	}
	copy(a.buf[a.size:], vs)
	a.size += len(vs)
	a.gen++
}

func (a *Array[T]) Insert(index int, v T) error {
	if err := seq.CheckInsertIndex(index, a.size); err != nil {
		return err
	}
	if err := a.reserve(1); err != nil {
		return err
	}
	copy(a.buf[index+1:a.size+1], a.buf[index:a.size])
	a.buf[index] = v
	a.size++
	a.gen++
	return nil
}

func (a *Array[T]) Erase(index int) error {
	if err := seq.CheckIndex(index, a.size); err != nil {
		return err
	}
	copy(a.buf[index:a.size-1], a.buf[index+1:a.size])
	a.size--
	var zero T
	a.buf[a.size] = zero
	a.gen++
	return nil
}

func (a *Array[T]) At(index int) (T, error) {
	if err := seq.CheckIndex(index, a.Len()); err != nil {
		var zero T
		return zero, err
	}
	return a.buf[index], nil
}

// Get returns the element at index and panics with seq.ErrOutOfRange on an invalid index.
func (a *Array[T]) Get(index int) T {
	v, err := a.At(index)
	if err != nil {
		panic(err)
	}
	return v
}

func (a *Array[T]) Set(index int, v T) error {
	if err := seq.CheckIndex(index, a.size); err != nil {
		return err
	}
	a.buf[index] = v
	return nil
}

func (a *Array[T]) Front() (T, bool) {
	if a.Len() == 0 {
		var zero T
		return zero, false
	}
	return a.buf[0], true
}

func (a *Array[T]) Back() (T, bool) {
	if a.Len() == 0 {
		var zero T
		return zero, false
	}
	return a.buf[a.size-1], true
}

func (a *Array[T]) PopBack() (T, bool) {
	v, ok := a.Back()
	if ok {
		_ = a.Erase(a.size - 1)
	}
	return v, ok
}

func (a *Array[T]) PopFront() (T, bool) {
	v, ok := a.Front()
	if ok {
		_ = a.Erase(0)
	}
	return v, ok
}

// Clone returns a deep copy in a buffer sized to the current length.
func (a *Array[T]) Clone() *Array[T] {
	if a == nil {
		return &Array[T]{}
	}
	c := &Array[T]{conf: a.conf, size: a.size}
	if 0 < a.size {
		c.buf = make([]T, a.size)
		copy(c.buf, a.buf[:a.size])
	}
	return c
}

// CopyFrom replaces the content of the Array with a deep copy of src.
func (a *Array[T]) CopyFrom(src *Array[T]) {
	if a == src {
		return
	}
	c := src.Clone()
	a.Reset()
	a.buf, a.size = c.buf, c.size
}

// Move transfers the buffer into a new Array and leaves the receiver empty.
// Moving a nil Array yields an empty one.
func (a *Array[T]) Move() *Array[T] {
	if a == nil {
		return &Array[T]{}
	}
	m := &Array[T]{buf: a.buf, size: a.size, conf: a.conf}
	a.buf, a.size = nil, 0
	a.gen++
	return m
}

// MoveFrom releases the current buffer and takes over the buffer of src.
// src is left empty. A nil src empties the Array.
func (a *Array[T]) MoveFrom(src *Array[T]) {
	if a == src {
		return
	}
	a.Reset()
	if src == nil {
		return
	}
	a.buf, a.size = src.buf, src.size
	src.buf, src.size = nil, 0
	src.gen++
}

func (a *Array[T]) Reset() {
	clear(a.buf[:a.size])
	a.buf = nil
	a.size = 0
	a.gen++
}

func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(a.buf[i]) {
				return
			}
		}
	}
}

func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < a.Len(); i++ {
			if !yield(i, a.buf[i]) {
				return
			}
		}
	}
}

func (a *Array[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := a.Len() - 1; 0 <= i; i-- {
			if i < a.size && !yield(i, a.buf[i]) {
				return
			}
		}
	}
}

func (a *Array[T]) ToSlice() []T {
	if a.Len() == 0 {
		return nil
	}
	out := make([]T, a.size)
	copy(out, a.buf[:a.size])
	return out
}
