package dynarray_test

import (
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"

	"go.llib.dev/containerkit/pkg/dynarray"
	"go.llib.dev/containerkit/port/seq"
	"go.llib.dev/containerkit/port/seq/seqcontract"
)

func TestArray_contract(t *testing.T) {
	conf := seqcontract.Config[int]{
		MakeElem: func(tb testing.TB) int { return testcase.ToT(&tb).Random.Int() },
	}
	seqcontract.Sequence[int](func(tb testing.TB) *dynarray.Array[int] {
		return &dynarray.Array[int]{}
	}, conf).Test(t)
	seqcontract.Value[int](func(tb testing.TB) *dynarray.Array[int] {
		return &dynarray.Array[int]{}
	}, conf).Test(t)
	seqcontract.Sequence[string](func(tb testing.TB) *dynarray.Array[string] {
		a, err := dynarray.New[string](1, dynarray.WithGrowthFactor(3))
		assert.NoError(tb, err)
		return a
	}).Test(t)
}

func TestArray(t *testing.T) {
	s := testcase.NewSpec(t)

	// ten elements, 0 to 9, like the fixture the containers were first tested with
	const fixtureLen = 10

	arr := let.Var(s, func(t *testcase.T) *dynarray.Array[int] {
		a := &dynarray.Array[int]{}
		for i := range fixtureLen {
			a.PushBack(i)
		}
		return a
	})

	s.Test("PushFront", func(t *testcase.T) {
		a := arr.Get(t)
		a.PushFront(55)
		assert.Equal(t, 55, a.Get(0))
		assert.Equal(t, fixtureLen+1, a.Len())
		assert.Equal(t, []int{55, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, a.ToSlice())
	})

	s.Test("Insert", func(t *testcase.T) {
		a := arr.Get(t)
		assert.NoError(t, a.Insert(5, 77))
		assert.Equal(t, 77, a.Get(5))
		assert.Equal(t, 5, a.Get(6))
		assert.Equal(t, fixtureLen+1, a.Len())
	})

	s.Test("PushBack", func(t *testcase.T) {
		a := arr.Get(t)
		a.PushBack(33)
		assert.Equal(t, 33, a.Get(a.Len()-1))
		assert.Equal(t, fixtureLen+1, a.Len())
	})

	s.Test("Erase with shifting indexes", func(t *testcase.T) {
		a := arr.Get(t)
		for i, index := range []int{3, 5, 7} {
			assert.NoError(t, a.Erase(index-i))
		}
		assert.Equal(t, 7, a.Len())
		assert.Equal(t, []int{0, 1, 2, 4, 6, 8, 9}, a.ToSlice())
	})

	s.Test("Erase until empty", func(t *testcase.T) {
		a := arr.Get(t)
		for a.Len() != 0 {
			assert.NoError(t, a.Erase(0))
		}
		assert.ErrorIs(t, a.Erase(0), seq.ErrOutOfRange)
	})

	s.Test("Get panics on an invalid index", func(t *testcase.T) {
		out := assert.Panic(t, func() { arr.Get(t).Get(fixtureLen) })
		err, ok := out.(error)
		assert.True(t, ok)
		assert.ErrorIs(t, err, seq.ErrOutOfRange)
	})

	s.Test("Front, Back, PopFront and PopBack", func(t *testcase.T) {
		a := arr.Get(t)
		front, ok := a.Front()
		assert.True(t, ok)
		assert.Equal(t, 0, front)
		back, ok := a.Back()
		assert.True(t, ok)
		assert.Equal(t, 9, back)

		v, ok := a.PopFront()
		assert.True(t, ok)
		assert.Equal(t, 0, v)
		v, ok = a.PopBack()
		assert.True(t, ok)
		assert.Equal(t, 9, v)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, a.ToSlice())

		a.Reset()
		_, ok = a.PopBack()
		assert.False(t, ok)
		_, ok = a.Front()
		assert.False(t, ok)
	})

	s.Test("Reset releases the buffer", func(t *testcase.T) {
		a := arr.Get(t)
		a.Reset()
		assert.Equal(t, 0, a.Len())
		assert.Equal(t, 0, a.Cap())
	})

	s.Test("Of", func(t *testcase.T) {
		assert.Equal(t, []int{1, 2, 3}, dynarray.Of(1, 2, 3).ToSlice())
		assert.Equal(t, 0, dynarray.Of[int]().Len())
	})

	s.Test("nil Array reports zero length", func(t *testcase.T) {
		var a *dynarray.Array[int]
		assert.Equal(t, 0, a.Len())
		assert.Equal(t, 0, a.Cap())
		_, err := a.At(0)
		assert.ErrorIs(t, err, seq.ErrOutOfRange)
	})

	s.Test("nil sources are treated as empty arrays", func(t *testcase.T) {
		var null *dynarray.Array[int]
		assert.Equal(t, 0, null.Move().Len())

		dst := dynarray.Of(1, 2, 3)
		dst.MoveFrom(null)
		assert.Equal(t, 0, dst.Len())
		dst.PushBack(4)
		assert.Equal(t, []int{4}, dst.ToSlice())

		dst.CopyFrom(null)
		assert.Equal(t, 0, dst.Len())
	})
}

func TestNew(t *testing.T) {
	t.Run("capacity is preallocated", func(t *testing.T) {
		a, err := dynarray.New[int](42)
		assert.NoError(t, err)
		assert.Equal(t, 0, a.Len())
		assert.Equal(t, 42, a.Cap())
	})

	t.Run("zero capacity makes an empty Array", func(t *testing.T) {
		a, err := dynarray.New[int](0)
		assert.NoError(t, err)
		assert.Equal(t, 0, a.Cap())
		a.PushBack(1)
		assert.Equal(t, []int{1}, a.ToSlice())
	})

	t.Run("negative capacity is out of range", func(t *testing.T) {
		a, err := dynarray.New[int](-1)
		assert.ErrorIs(t, err, seq.ErrOutOfRange)
		assert.Nil(t, a)
	})

	t.Run("very big capacity is refused", func(t *testing.T) {
		a, err := dynarray.New[uint64](1e15)
		assert.ErrorIs(t, err, seq.ErrAllocationTooLarge)
		assert.Nil(t, a)
	})

	t.Run("capacity overflowing the addressable size is refused", func(t *testing.T) {
		_, err := dynarray.New[[64]byte](int(^uint(0) >> 1))
		assert.ErrorIs(t, err, seq.ErrAllocationTooLarge)
	})

	t.Run("the allocation ceiling is configurable", func(t *testing.T) {
		_, err := dynarray.New[int64](16, dynarray.WithMaxAllocBytes(64))
		assert.ErrorIs(t, err, seq.ErrAllocationTooLarge)

		a, err := dynarray.New[int64](8, dynarray.WithMaxAllocBytes(64))
		assert.NoError(t, err)
		assert.Equal(t, 8, a.Cap())
	})

	t.Run("zero sized elements are still bounded", func(t *testing.T) {
		_, err := dynarray.New[struct{}](1e15)
		assert.ErrorIs(t, err, seq.ErrAllocationTooLarge)
	})
}

func TestArray_growth(t *testing.T) {
	t.Run("capacity grows geometrically", func(t *testing.T) {
		a, err := dynarray.New[int](0, dynarray.WithMinCapacity(4), dynarray.WithGrowthFactor(2))
		assert.NoError(t, err)
		var caps []int
		for i := range 17 {
			a.PushBack(i)
			if len(caps) == 0 || caps[len(caps)-1] != a.Cap() {
				caps = append(caps, a.Cap())
			}
		}
		assert.Equal(t, []int{4, 8, 16, 32}, caps)
	})

	t.Run("size never exceeds capacity", func(t *testing.T) {
		var a dynarray.Array[int]
		for i := range 100 {
			a.PushFront(i)
			assert.True(t, a.Len() <= a.Cap())
		}
	})

	t.Run("Grow reserves room for more elements", func(t *testing.T) {
		var a dynarray.Array[int]
		assert.NoError(t, a.Grow(100))
		c := a.Cap()
		assert.True(t, 100 <= c)
		for i := range 100 {
			a.PushBack(i)
		}
		assert.Equal(t, c, a.Cap())
		assert.ErrorIs(t, a.Grow(-1), seq.ErrOutOfRange)
	})

	t.Run("growth is capped by the allocation ceiling", func(t *testing.T) {
		a, err := dynarray.New[int64](0, dynarray.WithMinCapacity(1), dynarray.WithMaxAllocBytes(8*6))
		assert.NoError(t, err)
		for i := range 6 {
			a.PushBack(int64(i))
		}
		assert.Equal(t, 6, a.Cap())
		assert.ErrorIs(t, a.Insert(0, 42), seq.ErrAllocationTooLarge)
		assert.Equal(t, 6, a.Len())
		out := assert.Panic(t, func() { a.PushBack(42) })
		err, ok := out.(error)
		assert.True(t, ok)
		assert.ErrorIs(t, err, seq.ErrAllocationTooLarge)
		assert.Equal(t, []int64{0, 1, 2, 3, 4, 5}, a.ToSlice())
	})

	t.Run("ShrinkToFit", func(t *testing.T) {
		a := dynarray.Of(1, 2, 3, 4, 5)
		assert.NoError(t, a.Grow(100))
		a.ShrinkToFit()
		assert.Equal(t, 5, a.Cap())
		assert.Equal(t, []int{1, 2, 3, 4, 5}, a.ToSlice())
	})
}

func TestArray_valueSemantics(t *testing.T) {
	a := dynarray.Of(0, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	cp := a.Clone()
	var assigned dynarray.Array[int]
	assigned.CopyFrom(a)
	assert.Equal(t, a.ToSlice(), cp.ToSlice())
	assert.Equal(t, a.ToSlice(), assigned.ToSlice())
	assert.Equal(t, a.Len(), cp.Cap())

	cp2, cp3 := a.Clone(), a.Clone()
	moved := cp2.Move()
	var moveAssigned dynarray.Array[int]
	moveAssigned.MoveFrom(cp3)

	assert.Equal(t, 0, cp2.Len())
	assert.Equal(t, 0, cp2.Cap())
	assert.Equal(t, 0, cp3.Len())
	assert.Equal(t, a.ToSlice(), moved.ToSlice())
	assert.Equal(t, a.ToSlice(), moveAssigned.ToSlice())
}
