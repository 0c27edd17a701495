// Package seq describes the shared behaviour of index addressed sequence containers.
//
// Both dynarray.Array and dlist.List implement Sequence,
// so code and test suites can be written once against this package.
package seq

import (
	"iter"

	"go.llib.dev/frameless/pkg/errorkit"
)

const (
	// ErrOutOfRange is returned when an index falls outside the valid interval of an operation.
	ErrOutOfRange errorkit.Error = "ErrOutOfRange"
	// ErrAllocationTooLarge is returned when a requested capacity exceeds the configured allocation ceiling.
	ErrAllocationTooLarge errorkit.Error = "ErrAllocationTooLarge"
	// ErrInvalidCursor is returned when a Cursor is used after a structural mutation,
	// or after it was stepped off the sequence.
	ErrInvalidCursor errorkit.Error = "ErrInvalidCursor"
)

type Sequence[T any] interface {
	Len() int
	PushBack(v T)
	PushFront(v T)
	// Insert places v at index, shifting every element from index onwards by one.
	// index == Len() behaves like PushBack.
	Insert(index int, v T) error
	Erase(index int) error
	At(index int) (T, error)
	Set(index int, v T) error
	Append(vs ...T)
	Values() iter.Seq[T]
	All() iter.Seq2[int, T]
	Backward() iter.Seq2[int, T]
	ToSlice() []T
	// Reset releases the owned storage and leaves an empty, reusable sequence.
	Reset()
}

// Cursor refers to a position in a Sequence and can step one element at a time.
//
// A Cursor becomes invalid when the sequence is structurally modified after the Cursor was made.
type Cursor[T any] interface {
	Valid() bool
	Index() int
	Value() (T, error)
	Set(v T) error
	Next() bool
	Prev() bool
}

// CheckIndex validates an index for read, write and erase operations: 0 <= index < length.
func CheckIndex(index, length int) error {
	if index < 0 || length <= index {
		return ErrOutOfRange.F("index %d is outside of [0, %d)", index, length)
	}
	return nil
}

// CheckInsertIndex validates an index for insertion: 0 <= index <= length.
func CheckInsertIndex(index, length int) error {
	if index < 0 || length < index {
		return ErrOutOfRange.F("insert index %d is outside of [0, %d]", index, length)
	}
	return nil
}

// Value describes a Sequence type S with explicit copy and move semantics.
//
// Copies are deep and independent from their source.
// Moves transfer the owned storage in constant time and leave the source empty.
type Value[T, S any] interface {
	Sequence[T]
	Clone() S
	CopyFrom(src S)
	Move() S
	MoveFrom(src S)
}
