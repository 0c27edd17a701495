package replay_test

import (
	"testing"

	"go.llib.dev/testcase/assert"

	"go.llib.dev/containerkit/internal/replay"
)

func TestParseOp(t *testing.T) {
	for raw, exp := range map[string]replay.Op{
		"push_back:7":   {Kind: replay.PushBack, Value: 7},
		"push_front:-1": {Kind: replay.PushFront, Value: -1},
		"insert:5:77":   {Kind: replay.Insert, Index: 5, Value: 77},
		"erase:3":       {Kind: replay.Erase, Index: 3},
		" set:0:9 ":     {Kind: replay.Set, Index: 0, Value: 9},
	} {
		got, err := replay.ParseOp(raw)
		assert.NoError(t, err)
		assert.Equal(t, exp, got)
	}
}

func TestParseOp_invalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"pop",
		"push_back",
		"push_back:x",
		"insert:1",
		"erase:1:2",
		"set:a:b",
	} {
		_, err := replay.ParseOp(raw)
		assert.ErrorIs(t, err, replay.ErrInvalidOp, assert.MessageF("%q", raw))
	}
}

func TestOp_String(t *testing.T) {
	for _, raw := range []string{"push_back:7", "push_front:1", "insert:5:77", "erase:3", "set:0:9"} {
		op, err := replay.ParseOp(raw)
		assert.NoError(t, err)
		assert.Equal(t, raw, op.String())
	}
}

func TestParseOps(t *testing.T) {
	ops, err := replay.ParseOps([]string{"push_back:1", "erase:0"})
	assert.NoError(t, err)
	assert.Equal(t, []replay.Op{{Kind: replay.PushBack, Value: 1}, {Kind: replay.Erase}}, ops)

	_, err = replay.ParseOps([]string{"push_back:1", "nope"})
	assert.ErrorIs(t, err, replay.ErrInvalidOp)
}
