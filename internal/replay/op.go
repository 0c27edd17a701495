package replay

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.llib.dev/frameless/pkg/errorkit"

	"go.llib.dev/containerkit/port/seq"
)

const ErrInvalidOp errorkit.Error = "ErrInvalidOp"

type Kind string

const (
	PushBack  Kind = "push_back"
	PushFront Kind = "push_front"
	Insert    Kind = "insert"
	Erase     Kind = "erase"
	Set       Kind = "set"
)

// Op is a single mutation of a sequence.
type Op struct {
	Kind  Kind
	Index int
	Value int
}

func (op Op) String() string {
	switch op.Kind {
	case PushBack, PushFront:
		return fmt.Sprintf("%s:%d", op.Kind, op.Value)
	case Erase:
		return fmt.Sprintf("%s:%d", op.Kind, op.Index)
	default:
		return fmt.Sprintf("%s:%d:%d", op.Kind, op.Index, op.Value)
	}
}

// ParseOp parses the textual form of an operation,
// such as "push_back:7", "insert:5:77", "erase:3" or "set:0:9".
func ParseOp(raw string) (Op, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	ints := func(n int) ([]int, error) {
		if len(parts)-1 != n {
			return nil, ErrInvalidOp.F("%q expects %d argument(s)", raw, n)
		}
		var out []int
		for _, p := range parts[1:] {
			v, err := strconv.Atoi(p)
			if err != nil {
				return nil, ErrInvalidOp.Wrap(err)
			}
			out = append(out, v)
		}
		return out, nil
	}
	kind := Kind(parts[0])
	switch kind {
	case PushBack, PushFront:
		args, err := ints(1)
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: kind, Value: args[0]}, nil
	case Erase:
		args, err := ints(1)
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: kind, Index: args[0]}, nil
	case Insert, Set:
		args, err := ints(2)
		if err != nil {
			return Op{}, err
		}
		return Op{Kind: kind, Index: args[0], Value: args[1]}, nil
	default:
		return Op{}, ErrInvalidOp.F("unknown operation: %q", parts[0])
	}
}

func ParseOps(raws []string) ([]Op, error) {
	ops := make([]Op, 0, len(raws))
	for _, raw := range raws {
		op, err := ParseOp(raw)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Apply executes the operation on a sequence.
func (op Op) Apply(subject seq.Sequence[int]) error {
	switch op.Kind {
	case PushBack:
		subject.PushBack(op.Value)
		return nil
	case PushFront:
		subject.PushFront(op.Value)
		return nil
	case Insert:
		return subject.Insert(op.Index, op.Value)
	case Erase:
		return subject.Erase(op.Index)
	case Set:
		return subject.Set(op.Index, op.Value)
	default:
		return ErrInvalidOp.F("unknown operation: %q", op.Kind)
	}
}

// applyTo executes the operation on the reference model.
func (op Op) applyTo(model []int) ([]int, error) {
	switch op.Kind {
	case PushBack:
		return append(model, op.Value), nil
	case PushFront:
		return slices.Insert(model, 0, op.Value), nil
	case Insert:
		if err := seq.CheckInsertIndex(op.Index, len(model)); err != nil {
			return model, err
		}
		return slices.Insert(model, op.Index, op.Value), nil
	case Erase:
		if err := seq.CheckIndex(op.Index, len(model)); err != nil {
			return model, err
		}
		return slices.Delete(model, op.Index, op.Index+1), nil
	case Set:
		if err := seq.CheckIndex(op.Index, len(model)); err != nil {
			return model, err
		}
		model[op.Index] = op.Value
		return model, nil
	default:
		return model, ErrInvalidOp.F("unknown operation: %q", op.Kind)
	}
}
