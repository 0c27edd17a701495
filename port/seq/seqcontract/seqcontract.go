// Package seqcontract holds the behavioural contracts of the seq port.
// Any seq.Sequence implementation is expected to pass them.
package seqcontract

import (
	"fmt"
	"slices"
	"testing"

	"go.llib.dev/frameless/pkg/iterkit"
	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"

	"go.llib.dev/containerkit/port/seq"
)

func Sequence[T any, Subject seq.Sequence[T]](mk contract.Make[Subject], opts ...Option[T]) contract.Contract {
	s := testcase.NewSpec(nil)
	c := option.ToConfig[Config[T]](opts)

	subject := let.Var(s, func(t *testcase.T) Subject {
		return mk(t)
	})

	// expected is the reference model that mirrors the subject's content
	expected := let.Var(s, func(t *testcase.T) []T {
		return nil
	})

	s.Test("smoke", func(t *testcase.T) {
		list := subject.Get(t)
		assert.Equal(t, 0, list.Len())

		vs := c.makeElems(t, t.Random.IntBetween(3, 7))
		for i, v := range vs {
			assert.Equal(t, i, list.Len())
			list.PushBack(v)
		}
		AssertContent(t, list, vs)

		front := c.makeElem(t)
		list.PushFront(front)
		AssertContent(t, list, slices.Insert(slices.Clone(vs), 0, front))

		assert.NoError(t, list.Erase(0))
		AssertContent(t, list, vs)

		list.Reset()
		assert.Equal(t, 0, list.Len())
	})

	s.Describe("#PushBack", func(s *testcase.Spec) {
		v := let.Var(s, func(t *testcase.T) T { return c.makeElem(t) })
		act := let.Act0(func(t *testcase.T) {
			subject.Get(t).PushBack(v.Get(t))
		})

		thenAppended := func(s *testcase.Spec) {
			s.Then("the value becomes the last element", func(t *testcase.T) {
				act(t)
				list := subject.Get(t)
				got, err := list.At(list.Len() - 1)
				assert.NoError(t, err)
				assert.Equal(t, v.Get(t), got)
			})

			s.Then("length increases by one", func(t *testcase.T) {
				before := subject.Get(t).Len()
				act(t)
				assert.Equal(t, before+1, subject.Get(t).Len())
			})
		}

		s.When("the sequence is empty", thenAppended)

		s.When("the sequence has elements", func(s *testcase.Spec) {
			withElements(s, c, subject, expected)

			thenAppended(s)

			s.Then("existing elements keep their position", func(t *testcase.T) {
				act(t)
				AssertContent(t, subject.Get(t), append(slices.Clone(expected.Get(t)), v.Get(t)))
			})
		})
	})

	s.Describe("#PushFront", func(s *testcase.Spec) {
		v := let.Var(s, func(t *testcase.T) T { return c.makeElem(t) })
		act := let.Act0(func(t *testcase.T) {
			subject.Get(t).PushFront(v.Get(t))
		})

		s.Then("the value becomes the first element", func(t *testcase.T) {
			act(t)
			got, err := subject.Get(t).At(0)
			assert.NoError(t, err)
			assert.Equal(t, v.Get(t), got)
		})

		s.When("the sequence has elements", func(s *testcase.Spec) {
			withElements(s, c, subject, expected)

			s.Then("every existing element shifts up by one", func(t *testcase.T) {
				act(t)
				exp := slices.Insert(slices.Clone(expected.Get(t)), 0, v.Get(t))
				AssertContent(t, subject.Get(t), exp)
			})
		})
	})

	s.Describe("#Insert", func(s *testcase.Spec) {
		var (
			index = let.Var(s, func(t *testcase.T) int { return 0 })
			v     = let.Var(s, func(t *testcase.T) T { return c.makeElem(t) })
		)
		act := let.Act(func(t *testcase.T) error {
			return subject.Get(t).Insert(index.Get(t), v.Get(t))
		})

		s.When("the sequence is empty and index is zero", func(s *testcase.Spec) {
			s.Then("the value becomes the only element", func(t *testcase.T) {
				assert.NoError(t, act(t))
				AssertContent(t, subject.Get(t), []T{v.Get(t)})
			})
		})

		s.When("the sequence has elements", func(s *testcase.Spec) {
			withElements(s, c, subject, expected)

			s.And("index points to an existing element", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return t.Random.IntN(len(expected.Get(t)))
				})

				s.Then("the value is placed at the index and the rest shifts up", func(t *testcase.T) {
					assert.NoError(t, act(t))
					exp := slices.Insert(slices.Clone(expected.Get(t)), index.Get(t), v.Get(t))
					AssertContent(t, subject.Get(t), exp)
				})
			})

			s.And("index equals the length", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return len(expected.Get(t))
				})

				s.Then("it behaves as an append", func(t *testcase.T) {
					assert.NoError(t, act(t))
					AssertContent(t, subject.Get(t), append(slices.Clone(expected.Get(t)), v.Get(t)))
				})
			})

			s.And("index is past the length", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return len(expected.Get(t)) + t.Random.IntBetween(1, 5)
				})

				thenOutOfRange(s, act, subject, expected)
			})

			s.And("index is negative", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return -1 * t.Random.IntBetween(1, 5)
				})

				thenOutOfRange(s, act, subject, expected)
			})
		})
	})

	s.Describe("#Erase", func(s *testcase.Spec) {
		index := let.Var(s, func(t *testcase.T) int { return 0 })
		act := let.Act(func(t *testcase.T) error {
			return subject.Get(t).Erase(index.Get(t))
		})

		s.When("the sequence is empty", func(s *testcase.Spec) {
			thenOutOfRange(s, act, subject, expected)
		})

		s.When("the sequence has elements", func(s *testcase.Spec) {
			withElements(s, c, subject, expected)

			s.And("index points to an existing element", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return t.Random.IntN(len(expected.Get(t)))
				})

				s.Then("the element is removed and the rest shifts down", func(t *testcase.T) {
					assert.NoError(t, act(t))
					exp := slices.Delete(slices.Clone(expected.Get(t)), index.Get(t), index.Get(t)+1)
					AssertContent(t, subject.Get(t), exp)
				})
			})

			s.And("index points to the last element", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return len(expected.Get(t)) - 1
				})

				s.Then("the tail is removed", func(t *testcase.T) {
					assert.NoError(t, act(t))
					exp := expected.Get(t)
					AssertContent(t, subject.Get(t), exp[:len(exp)-1])
				})
			})

			s.And("index equals the length", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return len(expected.Get(t))
				})

				thenOutOfRange(s, act, subject, expected)
			})

			s.And("index is negative", func(s *testcase.Spec) {
				index.Let(s, func(t *testcase.T) int {
					return -1 * t.Random.IntBetween(1, 5)
				})

				thenOutOfRange(s, act, subject, expected)
			})
		})
	})

	s.Describe("#At and #Set", func(s *testcase.Spec) {
		withElements(s, c, subject, expected)

		s.Test("every valid index can be read", func(t *testcase.T) {
			for i, exp := range expected.Get(t) {
				got, err := subject.Get(t).At(i)
				assert.NoError(t, err)
				assert.Equal(t, exp, got)
			}
		})

		s.Test("a valid index can be overwritten", func(t *testcase.T) {
			var (
				list  = subject.Get(t)
				index = t.Random.IntN(list.Len())
				v     = c.makeElem(t)
			)
			assert.NoError(t, list.Set(index, v))
			got, err := list.At(index)
			assert.NoError(t, err)
			assert.Equal(t, v, got)
			assert.Equal(t, len(expected.Get(t)), list.Len())
		})

		s.Test("reading or writing outside of [0, Len) yields out of range", func(t *testcase.T) {
			list := subject.Get(t)
			for _, index := range []int{-1, list.Len(), list.Len() + t.Random.IntBetween(1, 42)} {
				_, err := list.At(index)
				assert.ErrorIs(t, err, seq.ErrOutOfRange)
				assert.ErrorIs(t, list.Set(index, c.makeElem(t)), seq.ErrOutOfRange)
			}
			AssertContent(t, list, expected.Get(t))
		})
	})

	s.Describe("#Append", func(s *testcase.Spec) {
		s.Test("values are appended in order", func(t *testcase.T) {
			var (
				list = subject.Get(t)
				head = c.makeElems(t, t.Random.IntBetween(1, 3))
				tail = c.makeElems(t, t.Random.IntBetween(3, 7))
			)
			list.Append(head...)
			list.Append()
			list.Append(tail...)
			AssertContent(t, list, slices.Concat(head, tail))
		})
	})

	s.Describe("iteration", func(s *testcase.Spec) {
		withElements(s, c, subject, expected)

		s.Test("Values yields the elements in index order", func(t *testcase.T) {
			assert.Equal(t, expected.Get(t), iterkit.Collect(subject.Get(t).Values()))
		})

		s.Test("Values is restartable", func(t *testcase.T) {
			list := subject.Get(t)
			assert.Equal(t, iterkit.Collect(list.Values()), iterkit.Collect(list.Values()))
		})

		s.Test("iteration can be stopped early", func(t *testcase.T) {
			var got []T
			for v := range subject.Get(t).Values() {
				got = append(got, v)
				break
			}
			assert.Equal(t, expected.Get(t)[:1], got)
		})

		s.Test("All pairs each element with its index", func(t *testcase.T) {
			var n int
			for i, v := range subject.Get(t).All() {
				assert.Equal(t, n, i)
				assert.Equal(t, expected.Get(t)[i], v)
				n++
			}
			assert.Equal(t, len(expected.Get(t)), n)
		})

		s.Test("Backward walks from the last element to the first", func(t *testcase.T) {
			exp := expected.Get(t)
			next := len(exp) - 1
			for i, v := range subject.Get(t).Backward() {
				assert.Equal(t, next, i)
				assert.Equal(t, exp[i], v)
				next--
			}
			assert.Equal(t, -1, next)
		})
	})

	s.Describe("#Reset", func(s *testcase.Spec) {
		withElements(s, c, subject, expected)

		s.Then("the sequence becomes empty", func(t *testcase.T) {
			subject.Get(t).Reset()
			assert.Equal(t, 0, subject.Get(t).Len())
			assert.Empty(t, subject.Get(t).ToSlice())
		})

		s.Then("the sequence can be reused", func(t *testcase.T) {
			list := subject.Get(t)
			list.Reset()
			vs := c.makeElems(t, t.Random.IntBetween(1, 5))
			list.Append(vs...)
			AssertContent(t, list, vs)
		})
	})

	s.Test("random operations match a reference slice", func(t *testcase.T) {
		var (
			list = subject.Get(t)
			ref  []T
		)
		t.Random.Repeat(32, 128, func() {
			v := c.makeElem(t)
			switch t.Random.IntN(6) {
			case 0:
				list.PushBack(v)
				ref = append(ref, v)
			case 1:
				list.PushFront(v)
				ref = slices.Insert(ref, 0, v)
			case 2:
				index := t.Random.IntN(len(ref) + 1)
				assert.NoError(t, list.Insert(index, v))
				ref = slices.Insert(ref, index, v)
			case 3, 4:
				if len(ref) == 0 {
					assert.ErrorIs(t, list.Erase(0), seq.ErrOutOfRange)
					return
				}
				index := t.Random.IntN(len(ref))
				assert.NoError(t, list.Erase(index))
				ref = slices.Delete(ref, index, index+1)
			case 5:
				if len(ref) == 0 {
					assert.ErrorIs(t, list.Set(0, v), seq.ErrOutOfRange)
					return
				}
				index := t.Random.IntN(len(ref))
				assert.NoError(t, list.Set(index, v))
				ref[index] = v
			}
			assert.Equal(t, len(ref), list.Len())
		})
		AssertContent(t, list, ref)
	})

	return s.AsSuite(fmt.Sprintf("Sequence[%s]", reflectkit.TypeOf[T]().String()))
}

// Value checks the copy and move laws of a Sequence type.
func Value[T any, Subject seq.Value[T, Subject]](mk contract.Make[Subject], opts ...Option[T]) contract.Contract {
	s := testcase.NewSpec(nil)
	c := option.ToConfig[Config[T]](opts)

	var (
		values = let.Var(s, func(t *testcase.T) []T {
			return c.makeElems(t, t.Random.IntBetween(3, 7))
		})
		original = let.Var(s, func(t *testcase.T) Subject {
			list := mk(t)
			list.Append(values.Get(t)...)
			return list
		})
	)

	s.Describe("#Clone", func(s *testcase.Spec) {
		act := let.Act(func(t *testcase.T) Subject {
			return original.Get(t).Clone()
		})

		s.Then("the copy has the same elements", func(t *testcase.T) {
			AssertContent(t, act(t), values.Get(t))
		})

		s.Then("the source is left untouched", func(t *testcase.T) {
			act(t)
			AssertContent(t, original.Get(t), values.Get(t))
		})

		s.Then("mutating the source does not affect the copy", func(t *testcase.T) {
			cp := act(t)
			src := original.Get(t)
			src.PushBack(c.makeElem(t))
			assert.NoError(t, src.Set(0, c.makeElem(t)))
			assert.NoError(t, src.Erase(src.Len()-1))
			src.Reset()
			AssertContent(t, cp, values.Get(t))
		})

		s.Then("mutating the copy does not affect the source", func(t *testcase.T) {
			cp := act(t)
			cp.PushFront(c.makeElem(t))
			assert.NoError(t, cp.Set(1, c.makeElem(t)))
			AssertContent(t, original.Get(t), values.Get(t))
		})
	})

	s.Describe("#CopyFrom", func(s *testcase.Spec) {
		dst := let.Var(s, func(t *testcase.T) Subject {
			list := mk(t)
			list.Append(c.makeElems(t, t.Random.IntBetween(0, 7))...)
			return list
		})
		act := let.Act0(func(t *testcase.T) {
			dst.Get(t).CopyFrom(original.Get(t))
		})

		s.Then("the destination holds a copy of the source elements", func(t *testcase.T) {
			act(t)
			AssertContent(t, dst.Get(t), values.Get(t))
			AssertContent(t, original.Get(t), values.Get(t))
		})

		s.Then("the two sequences stay independent", func(t *testcase.T) {
			act(t)
			dst.Get(t).PushBack(c.makeElem(t))
			AssertContent(t, original.Get(t), values.Get(t))
		})

		s.Then("copying into itself changes nothing", func(t *testcase.T) {
			src := original.Get(t)
			src.CopyFrom(src)
			AssertContent(t, src, values.Get(t))
		})
	})

	s.Describe("#Move", func(s *testcase.Spec) {
		act := let.Act(func(t *testcase.T) Subject {
			return original.Get(t).Move()
		})

		s.Then("the elements are transferred", func(t *testcase.T) {
			AssertContent(t, act(t), values.Get(t))
		})

		s.Then("the source is left empty and reusable", func(t *testcase.T) {
			act(t)
			src := original.Get(t)
			assert.Equal(t, 0, src.Len())
			v := c.makeElem(t)
			src.PushBack(v)
			AssertContent(t, src, []T{v})
		})

		s.Then("a copy moved away keeps the law: moved == original", func(t *testcase.T) {
			cp := original.Get(t).Clone()
			moved := cp.Move()
			assert.Equal(t, 0, cp.Len())
			AssertContent(t, moved, iterkit.Collect(original.Get(t).Values()))
		})
	})

	s.Describe("#MoveFrom", func(s *testcase.Spec) {
		dst := let.Var(s, func(t *testcase.T) Subject {
			list := mk(t)
			list.Append(c.makeElems(t, t.Random.IntBetween(0, 7))...)
			return list
		})
		act := let.Act0(func(t *testcase.T) {
			dst.Get(t).MoveFrom(original.Get(t))
		})

		s.Then("the destination takes over the elements", func(t *testcase.T) {
			act(t)
			AssertContent(t, dst.Get(t), values.Get(t))
		})

		s.Then("the source is left empty", func(t *testcase.T) {
			act(t)
			assert.Equal(t, 0, original.Get(t).Len())
			assert.Empty(t, original.Get(t).ToSlice())
		})

		s.Then("moving into itself changes nothing", func(t *testcase.T) {
			src := original.Get(t)
			src.MoveFrom(src)
			AssertContent(t, src, values.Get(t))
		})
	})

	return s.AsSuite(fmt.Sprintf("Value[%s]", reflectkit.TypeOf[T]().String()))
}

func withElements[T any, Subject seq.Sequence[T]](s *testcase.Spec, c Config[T], subject testcase.Var[Subject], expected testcase.Var[[]T]) {
	expected.Let(s, func(t *testcase.T) []T {
		return c.makeElems(t, t.Random.IntBetween(3, 7))
	})
	s.Before(func(t *testcase.T) {
		subject.Get(t).Append(expected.Get(t)...)
	})
}

func thenOutOfRange[T any, Subject seq.Sequence[T]](s *testcase.Spec, act func(*testcase.T) error, subject testcase.Var[Subject], expected testcase.Var[[]T]) {
	s.Then("out of range error is returned", func(t *testcase.T) {
		assert.ErrorIs(t, act(t), seq.ErrOutOfRange)
	})

	s.Then("the sequence is left unchanged", func(t *testcase.T) {
		_ = act(t)
		AssertContent(t, subject.Get(t), expected.Get(t))
	})
}

// AssertContent asserts that the sequence holds exactly the expected elements in order.
func AssertContent[T any](tb testing.TB, subject seq.Sequence[T], exp []T) {
	tb.Helper()
	assert.Equal(tb, len(exp), subject.Len())
	for i, v := range exp {
		got, err := subject.At(i)
		assert.NoError(tb, err)
		assert.Equal(tb, v, got, assert.MessageF("index %d", i))
	}
	if 0 < len(exp) {
		assert.Equal(tb, exp, subject.ToSlice())
	}
}
