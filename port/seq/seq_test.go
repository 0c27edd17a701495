package seq_test

import (
	"errors"
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"

	"go.llib.dev/containerkit/port/seq"
)

func TestCheckIndex(t *testing.T) {
	s := testcase.NewSpec(t)

	var (
		index  = let.Var(s, func(t *testcase.T) int { return 0 })
		length = let.Var(s, func(t *testcase.T) int { return t.Random.IntBetween(1, 42) })
	)
	act := let.Act(func(t *testcase.T) error {
		return seq.CheckIndex(index.Get(t), length.Get(t))
	})

	s.When("index is within [0, length)", func(s *testcase.Spec) {
		index.Let(s, func(t *testcase.T) int { return t.Random.IntN(length.Get(t)) })

		s.Then("it is accepted", func(t *testcase.T) {
			assert.NoError(t, act(t))
		})
	})

	s.When("index equals the length", func(s *testcase.Spec) {
		index.Let(s, func(t *testcase.T) int { return length.Get(t) })

		s.Then("out of range is reported", func(t *testcase.T) {
			assert.ErrorIs(t, act(t), seq.ErrOutOfRange)
		})
	})

	s.When("index is negative", func(s *testcase.Spec) {
		index.Let(s, func(t *testcase.T) int { return -1 * t.Random.IntBetween(1, 42) })

		s.Then("out of range is reported", func(t *testcase.T) {
			assert.ErrorIs(t, act(t), seq.ErrOutOfRange)
		})
	})

	s.When("the length is zero", func(s *testcase.Spec) {
		length.LetValue(s, 0)
		index.LetValue(s, 0)

		s.Then("no index is valid", func(t *testcase.T) {
			assert.ErrorIs(t, act(t), seq.ErrOutOfRange)
		})
	})
}

func TestCheckInsertIndex(t *testing.T) {
	t.Run("index equal to length is accepted", func(t *testing.T) {
		assert.NoError(t, seq.CheckInsertIndex(0, 0))
		assert.NoError(t, seq.CheckInsertIndex(10, 10))
	})
	t.Run("index past the length is rejected", func(t *testing.T) {
		assert.ErrorIs(t, seq.CheckInsertIndex(11, 10), seq.ErrOutOfRange)
	})
	t.Run("negative index is rejected", func(t *testing.T) {
		assert.ErrorIs(t, seq.CheckInsertIndex(-1, 10), seq.ErrOutOfRange)
	})
	t.Run("error message names the index and the interval", func(t *testing.T) {
		err := seq.CheckInsertIndex(12, 10)
		assert.Contains(t, err.Error(), "12")
		assert.Contains(t, err.Error(), "[0, 10]")
		assert.True(t, errors.Is(err, seq.ErrOutOfRange))
	})
}
