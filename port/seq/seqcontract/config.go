package seqcontract

import (
	"testing"

	"go.llib.dev/frameless/pkg/reflectkit"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase"
)

type Option[T any] interface {
	option.Option[Config[T]]
}

type Config[T any] struct {
	// MakeElem creates an element value for the sequence under test.
	// When the random values of T are not good enough for the subject, you can overwrite this function.
	MakeElem func(tb testing.TB) T
}

func (c *Config[T]) Init() {
	c.MakeElem = func(tb testing.TB) T {
		tc := testcase.ToT(&tb)
		return tc.Random.Make(reflectkit.TypeOf[T]()).(T)
	}
}

func (c Config[T]) Configure(t *Config[T]) {
	if c.MakeElem != nil {
		t.MakeElem = c.MakeElem
	}
}

func (c Config[T]) makeElem(tb testing.TB) T { return c.MakeElem(tb) }

func (c Config[T]) makeElems(t *testcase.T, n int) []T {
	vs := make([]T, 0, n)
	for range n {
		vs = append(vs, c.makeElem(t))
	}
	return vs
}
