// Package replay runs operation scripts against sequence containers
// and compares every step with a plain slice reference model.
package replay

import (
	"context"
	"errors"
	"slices"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/containerkit/pkg/dlist"
	"go.llib.dev/containerkit/pkg/dynarray"
	"go.llib.dev/containerkit/port/seq"
)

const (
	ErrDiverged    errorkit.Error = "ErrDiverged"
	ErrUnknownKind errorkit.Error = "ErrUnknownKind"
)

const (
	errLengthMismatch  errorkit.Error = "length mismatch"
	errElementMismatch errorkit.Error = "element mismatch"
)

const (
	KindArray  = "array"
	KindLinked = "linked"
)

// Kinds lists every container kind that Make can create.
var Kinds = []string{KindArray, KindLinked}

// Make creates an empty container of the given kind.
func Make(kind string, opts ...dynarray.Option) (seq.Sequence[int], error) {
	switch kind {
	case KindArray:
		a, err := dynarray.New[int](0, opts...)
		if err != nil {
			return nil, err
		}
		return a, nil
	case KindLinked:
		return &dlist.List[int]{}, nil
	default:
		return nil, ErrUnknownKind.F("%q, expected one of %v", kind, Kinds)
	}
}

type Runner struct {
	// Logger receives a debug entry for every applied operation.
	// Nil disables logging.
	Logger *logging.Logger
}

type Result struct {
	Values []int
	// Rejected counts the operations that failed with seq.ErrOutOfRange on both the subject and the model.
	Rejected int
}

// Run applies ops to subject and to a reference model built from the subject's current content.
// It stops at the first step where the two disagree and returns ErrDiverged.
func (r Runner) Run(ctx context.Context, subject seq.Sequence[int], ops []Op) (Result, error) {
	var (
		model  = subject.ToSlice()
		result Result
	)
	for step, op := range ops {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		var (
			next, expErr = op.applyTo(slices.Clone(model))
			gotErr       = op.Apply(subject)
		)
		if err := compareErrors(expErr, gotErr); err != nil {
			r.log(ctx, step, op, subject, err)
			return result, ErrDiverged.F("step %d (%s): %s", step, op, err.Error())
		}
		if expErr != nil {
			result.Rejected++
		}
		model = next
		if err := compareContent(model, subject); err != nil {
			r.log(ctx, step, op, subject, err)
			return result, ErrDiverged.F("step %d (%s): %s", step, op, err.Error())
		}
		r.log(ctx, step, op, subject, gotErr)
	}
	result.Values = subject.ToSlice()
	return result, nil
}

func (r Runner) log(ctx context.Context, step int, op Op, subject seq.Sequence[int], err error) {
	if r.Logger == nil {
		return
	}
	ds := []logging.Detail{
		logging.Field("step", step),
		logging.Field("op", op.String()),
		logging.Field("len", subject.Len()),
	}
	if err != nil {
		ds = append(ds, logging.ErrField(err))
	}
	r.Logger.Debug(ctx, "replay step", ds...)
}

func compareErrors(exp, got error) error {
	switch {
	case exp == nil && got == nil:
		return nil
	case exp == nil:
		return errorkit.Merge(errors.New("unexpected error"), got)
	case got == nil:
		return errorkit.Merge(errors.New("expected error was not returned"), exp)
	case errors.Is(exp, seq.ErrOutOfRange) && !errors.Is(got, seq.ErrOutOfRange):
		return errorkit.Merge(errors.New("out of range was expected"), got)
	default:
		return nil
	}
}

func compareContent(model []int, subject seq.Sequence[int]) error {
	if len(model) != subject.Len() {
		return errLengthMismatch.F("model has %d elements, subject has %d", len(model), subject.Len())
	}
	for i, exp := range model {
		got, err := subject.At(i)
		if err != nil {
			return err
		}
		if got != exp {
			return errElementMismatch.F("index %d: expected %d, got %d", i, exp, got)
		}
	}
	return nil
}
